package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty text",
			text: "   \n  ",
			want: 0,
		},
		{
			name: "single short resume",
			text: "Jane Doe\njane@example.com\n\nSkills: Go, Python",
			want: 1,
		},
		{
			name: "sections split on blank lines",
			text: strings.Repeat("EXPERIENCE\n"+strings.Repeat("built things ", 40)+"\n\n", 4),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Chunk(tt.text), tt.want)
		})
	}
}

func TestChunk_KeepsShortParagraphsTogether(t *testing.T) {
	text := "Name: Jane\n\nEmail: jane@example.com\n\nSkills: Go"
	chunks := Chunk(text)
	assert.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "Name: Jane")
	assert.Contains(t, chunks[0], "Skills: Go")
}

func TestChunk_CapsChunkCount(t *testing.T) {
	long := strings.Repeat(strings.Repeat("x", 600)+"\n\n", 40)
	chunks := Chunk(long)
	assert.LessOrEqual(t, len(chunks), maxChunks)
}

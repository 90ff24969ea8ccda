package resume

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

const (
	// chunkSize is the target size of one resume chunk in characters.
	chunkSize = 500

	// maxChunks bounds the chunk list; resumes longer than this contribute
	// nothing useful to question generation.
	maxChunks = 20
)

// Service extracts a structured candidate profile from raw resume text and
// chunks the text for prompt context.
type Service struct {
	llm *llm.Router
}

func NewService(router *llm.Router) *Service {
	return &Service{llm: router}
}

// Parse returns the profile and prompt-ready chunks. A parse failure degrades
// to the fallback profile with the raw text still chunked; the interview must
// never be blocked by a bad resume.
func (s *Service) Parse(ctx context.Context, resumeText string) (domain.ResumeProfile, []string, error) {
	chunks := Chunk(resumeText)

	provider, err := s.llm.GetProvider("")
	if err != nil {
		return domain.FallbackProfile(), chunks, err
	}

	profile, err := provider.ParseResume(ctx, resumeText, "")
	if err != nil {
		log.Warn().Err(err).Msg("resume extraction failed")
		return domain.FallbackProfile(), chunks, err
	}

	return *profile, chunks, nil
}

// Chunk splits resume text into sections of roughly chunkSize characters,
// breaking on blank lines so related content stays together.
func Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)

		// A single oversized paragraph becomes its own chunk rather than
		// being split mid-sentence.
		if current.Len() >= chunkSize {
			flush()
		}
		if len(chunks) >= maxChunks {
			return chunks
		}
	}
	flush()

	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}

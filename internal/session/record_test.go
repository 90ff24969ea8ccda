package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

func testProfile(seniority string) domain.ResumeProfile {
	return domain.ResumeProfile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Seniority: seniority,
	}
}

func TestRecord_AttachAnswerAdvancesQuotaForRegularOnly(t *testing.T) {
	rec := newRecord("s1", testProfile("Junior"), nil)

	rec.appendRegular("Tell me about your background.")
	attached, counted := rec.attachAnswer("I build backend services.")
	assert.True(t, attached)
	assert.True(t, counted)
	assert.Equal(t, 1, rec.QuestionsAsked)

	rec.appendClarifying("Could you give a specific example?")
	attached, counted = rec.attachAnswer("Sure, a payments API.")
	assert.True(t, attached)
	assert.False(t, counted, "clarifying answers must not count")
	assert.Equal(t, 1, rec.QuestionsAsked)
}

func TestRecord_AttachAnswerScansFromTail(t *testing.T) {
	rec := newRecord("s1", testProfile("Junior"), nil)

	rec.appendRegular("Q1")
	rec.attachAnswer("A1")
	rec.appendRegular("Q2")
	rec.attachAnswer("A2")

	assert.Equal(t, "A1", *rec.Log[0].Answer)
	assert.Equal(t, "A2", *rec.Log[1].Answer)
	assert.Equal(t, 2, rec.QuestionsAsked)
}

func TestRecord_AttachAnswerNoOpenEntry(t *testing.T) {
	rec := newRecord("s1", testProfile("Junior"), nil)

	// Protocol misuse: no question issued yet. Must be a silent no-op.
	attached, counted := rec.attachAnswer("hello?")
	assert.False(t, attached)
	assert.False(t, counted)
	assert.Equal(t, 0, rec.QuestionsAsked)

	rec.appendRegular("Q1")
	rec.attachAnswer("A1")
	attached, _ = rec.attachAnswer("again")
	assert.False(t, attached, "already answered")
}

func TestRecord_TrailingClarifying(t *testing.T) {
	rec := newRecord("s1", testProfile("Junior"), nil)
	assert.Equal(t, 0, rec.trailingClarifying())

	rec.appendRegular("Q1")
	rec.attachAnswer("A1")
	assert.Equal(t, 0, rec.trailingClarifying())

	rec.appendClarifying("C1")
	rec.attachAnswer("vague")
	rec.appendClarifying("C2")
	assert.Equal(t, 2, rec.trailingClarifying())

	rec.appendRegular("Q2")
	assert.Equal(t, 0, rec.trailingClarifying())
}

func TestRecord_QuotaDerivedFromSeniority(t *testing.T) {
	tests := []struct {
		seniority string
		want      int
	}{
		{"Fresher", 5},
		{"fresher", 5},
		{"Junior", 7},
		{"Mid-Senior", 10},
		{"Senior", 10},
		{"Lead", 10},
		{domain.Unknown, 10},
	}

	for _, tt := range tests {
		t.Run(tt.seniority, func(t *testing.T) {
			rec := newRecord("s", testProfile(tt.seniority), nil)
			assert.Equal(t, tt.want, rec.MaxQuestions)
		})
	}
}

func TestRecord_SnapshotIsIndependent(t *testing.T) {
	rec := newRecord("s1", testProfile("Junior"), []string{"chunk-a"})
	rec.appendRegular("Q1")

	snap := rec.snapshot()
	rec.attachAnswer("A1")
	rec.Chunks[0] = "mutated"

	assert.Nil(t, snap.Log[0].Answer, "snapshot must not observe later mutation")
	assert.Equal(t, "chunk-a", snap.Chunks[0])
}

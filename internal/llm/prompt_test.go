package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

func entry(question, answer string) domain.ConversationEntry {
	e := domain.ConversationEntry{Question: question}
	if answer != "" {
		e.Answer = &answer
	}
	return e
}

func TestBuildQuestionPrompt(t *testing.T) {
	req := Request{
		Seniority:      "Senior",
		MaxQuestions:   10,
		QuestionsAsked: 3,
		FirstName:      "Priya",
		ResumeContext:  "8 years building payment systems in Go.",
		History:        "Q1: Tell me about yourself\nA1: I build payment systems",
	}

	prompt := BuildQuestionPrompt(req)

	assert.Contains(t, prompt, "Seniority Level: Senior")
	assert.Contains(t, prompt, "Questions Asked: 3 / 10")
	assert.Contains(t, prompt, "payment systems in Go")
	assert.Contains(t, prompt, "[CLARIFY]")
	assert.Contains(t, prompt, "No previous memories.")
}

func TestFormatHistory(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.ConversationEntry
		contains []string
		excludes []string
	}{
		{
			name:     "empty log",
			entries:  nil,
			contains: []string{"No previous conversation."},
		},
		{
			name: "short log stays verbatim",
			entries: []domain.ConversationEntry{
				entry("Tell me about yourself", "I am a Go developer"),
				entry("What is a goroutine", ""),
			},
			contains: []string{"Q1: Tell me about yourself", "A1: I am a Go developer", "A2: No answer yet"},
			excludes: []string{"Earlier:"},
		},
		{
			name: "long log collapses older exchanges",
			entries: []domain.ConversationEntry{
				entry("Tell me about your background in distributed systems", "Answer one"),
				entry("How do you handle failure", "Answer two"),
				entry("Describe a hard bug", "Answer three"),
				entry("What would you improve", ""),
			},
			contains: []string{
				"[Earlier: 2 questions covered topics:",
				"RECENT EXCHANGES:",
				"Q3: Describe a hard bug",
				"Q4: What would you improve",
			},
			excludes: []string{"A1: Answer one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatHistory(tt.entries)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestTruncateForVoice(t *testing.T) {
	short := "What is your favorite language?"
	assert.Equal(t, short, TruncateForVoice(short))

	long := strings.Repeat("word ", 60) + "end"
	got := TruncateForVoice(long)
	assert.LessOrEqual(t, len(got), maxQuestionChars+1)
	assert.True(t, strings.HasSuffix(got, "?"))
	assert.NotContains(t, got, "wor?")
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain object",
			content: `{"a": 1}`,
			want:    `{"a": 1}`,
		},
		{
			name:    "fenced with language tag",
			content: "Here you go:\n```json\n{\"a\": 1}\n```",
			want:    `{"a": 1}`,
		},
		{
			name:    "prose around object",
			content: "Sure! {\"a\": 1} Hope that helps.",
			want:    `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.content))
		})
	}
}

func TestParseProfileJSON(t *testing.T) {
	content := "```json\n" + `{
		"candidate_first_name": "  Dhruv ",
		"candidate_last_name": "",
		"candidate_email": "Dhruv@Example.COM",
		"candidate_linkedin": "linkedin.com/in/dhruv",
		"experience": "Built voice agents",
		"skills": ["Go", "Python"],
		"seniority_level": "Mid-Senior"
	}` + "\n```"

	profile, err := ParseProfileJSON(content)
	require.NoError(t, err)

	assert.Equal(t, "Dhruv", profile.FirstName)
	assert.Equal(t, domain.Unknown, profile.LastName)
	assert.Equal(t, "dhruv@example.com", profile.Email)
	assert.Equal(t, "Mid-Senior", profile.Seniority)
	assert.Len(t, profile.Skills, 2)
}

func TestParseProfileJSON_Invalid(t *testing.T) {
	_, err := ParseProfileJSON("the model refused to answer")
	assert.Error(t, err)
}

func TestParseAssessmentJSON(t *testing.T) {
	content := `{
		"candidate_score_percent": 82,
		"hiring_recommendation": "Recommend",
		"strengths": ["clear communication"],
		"improvement_areas": ["system design depth"],
		"next_steps": "Schedule onsite",
		"answer_quality_analysis": "Consistently concrete answers"
	}`

	a, err := ParseAssessmentJSON(content)
	require.NoError(t, err)
	assert.Equal(t, 82, a.ScorePercent)
	assert.Equal(t, "Recommend", a.HiringRecommendation)
}

func TestRelevantChunks(t *testing.T) {
	chunks := []string{"alpha section", "beta section", "gamma section", "delta section"}
	got := RelevantChunks(chunks, 3)
	assert.Contains(t, got, "alpha section")
	assert.Contains(t, got, "gamma section")
	assert.NotContains(t, got, "delta section")

	assert.Equal(t, "", RelevantChunks(nil, 3))
}

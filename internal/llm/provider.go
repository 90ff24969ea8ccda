package llm

import (
	"context"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

// Request contains interview question generation parameters
type Request struct {
	Seniority        string
	MaxQuestions     int
	QuestionsAsked   int
	FirstName        string
	ResumeContext    string
	History          string
	RecalledMemories string
}

// AssessmentRequest contains the material for post-interview scoring
type AssessmentRequest struct {
	Seniority  string
	ProfileDoc string
	Transcript string
}

// Response contains an LLM generation result
type Response struct {
	Question   string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// GenerateQuestion produces the next interview question
	GenerateQuestion(ctx context.Context, req Request, model string) (*Response, error)

	// ParseResume extracts a candidate profile from resume text
	ParseResume(ctx context.Context, resumeText, model string) (*domain.ResumeProfile, error)

	// GenerateAssessment scores a finished interview transcript
	GenerateAssessment(ctx context.Context, req AssessmentRequest, model string) (*domain.Assessment, error)

	// Embed computes an embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)
}

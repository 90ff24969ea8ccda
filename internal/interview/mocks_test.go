package interview

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

// MockProvider implements llm.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) AvailableModels() []string {
	return []string{"mock-model"}
}

func (m *MockProvider) DefaultModel() string {
	return "mock-model"
}

func (m *MockProvider) IsConfigured() bool {
	return true
}

func (m *MockProvider) GenerateQuestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

func (m *MockProvider) ParseResume(ctx context.Context, resumeText, model string) (*domain.ResumeProfile, error) {
	args := m.Called(ctx, resumeText, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeProfile), args.Error(1)
}

func (m *MockProvider) GenerateAssessment(ctx context.Context, req llm.AssessmentRequest, model string) (*domain.Assessment, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func (m *MockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockMemoryService implements domain.MemoryService
type MockMemoryService struct {
	mock.Mock
}

func (m *MockMemoryService) Recall(ctx context.Context, entityID, query string, limit int) ([]string, error) {
	args := m.Called(ctx, entityID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMemoryService) Store(ctx context.Context, entityID, text string) error {
	args := m.Called(ctx, entityID, text)
	return args.Error(0)
}

// MockArchiveRepository implements domain.ArchiveRepository
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Save(ctx context.Context, archive *domain.InterviewArchive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

// MockResumeParser implements ResumeParser
type MockResumeParser struct {
	mock.Mock
}

func (m *MockResumeParser) Parse(ctx context.Context, resumeText string) (domain.ResumeProfile, []string, error) {
	args := m.Called(ctx, resumeText)
	return args.Get(0).(domain.ResumeProfile), args.Get(1).([]string), args.Error(2)
}

package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

// MockJobRepository implements domain.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) List(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListWithEmbeddings(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepository) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

type embedOnlyProvider struct {
	vec []float32
}

func (p *embedOnlyProvider) Name() string              { return "stub" }
func (p *embedOnlyProvider) AvailableModels() []string { return []string{"stub"} }
func (p *embedOnlyProvider) DefaultModel() string      { return "stub" }
func (p *embedOnlyProvider) IsConfigured() bool        { return true }

func (p *embedOnlyProvider) GenerateQuestion(context.Context, llm.Request, string) (*llm.Response, error) {
	return nil, nil
}

func (p *embedOnlyProvider) ParseResume(context.Context, string, string) (*domain.ResumeProfile, error) {
	return nil, nil
}

func (p *embedOnlyProvider) GenerateAssessment(context.Context, llm.AssessmentRequest, string) (*domain.Assessment, error) {
	return nil, nil
}

func (p *embedOnlyProvider) Embed(context.Context, string) ([]float32, error) {
	return p.vec, nil
}

type fakeCache struct {
	store map[string][]domain.JobMatch
	hits  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]domain.JobMatch)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]domain.JobMatch, bool) {
	m, ok := c.store[key]
	if ok {
		c.hits++
	}
	return m, ok
}

func (c *fakeCache) Set(_ context.Context, key string, matches []domain.JobMatch) {
	c.store[key] = matches
}

func newMatchService(repo domain.JobRepository, cache Cache) *Service {
	router := llm.NewRouter("stub")
	router.RegisterProvider(&embedOnlyProvider{vec: []float32{1, 0, 0}})
	return NewService(repo, router, cache)
}

func TestService_Match_RanksBestFirst(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("ListWithEmbeddings", mock.Anything).Return([]domain.Job{
		{ID: "far", Title: "Gardener", Embedding: []float32{0, 1, 0}},
		{ID: "near", Title: "Go Engineer", Embedding: []float32{0.95, 0.05, 0}},
		{ID: "mid", Title: "SRE", Embedding: []float32{0.5, 0.5, 0}},
	}, nil)

	svc := newMatchService(repo, nil)

	matches, err := svc.Match(context.Background(), "go developer resume", 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "near", matches[0].Job.ID)
	assert.Equal(t, "mid", matches[1].Job.ID)
	assert.Equal(t, "far", matches[2].Job.ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestService_Match_LimitsResults(t *testing.T) {
	jobs := make([]domain.Job, 6)
	for i := range jobs {
		jobs[i] = domain.Job{ID: "j", Embedding: []float32{1, 0, 0}}
	}
	repo := new(MockJobRepository)
	repo.On("ListWithEmbeddings", mock.Anything).Return(jobs, nil)

	svc := newMatchService(repo, nil)

	matches, err := svc.Match(context.Background(), "resume", 3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestService_Match_BackfillsMissingEmbeddings(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("ListWithEmbeddings", mock.Anything).Return([]domain.Job{
		{ID: "new-job", Title: "Backend Engineer"},
	}, nil)
	repo.On("SetEmbedding", mock.Anything, "new-job", mock.Anything).Return(nil)

	svc := newMatchService(repo, nil)

	matches, err := svc.Match(context.Background(), "resume", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	repo.AssertCalled(t, "SetEmbedding", mock.Anything, "new-job", mock.Anything)
}

func TestService_Match_UsesCache(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("ListWithEmbeddings", mock.Anything).Return([]domain.Job{
		{ID: "j1", Embedding: []float32{1, 0, 0}},
	}, nil).Once()

	cache := newFakeCache()
	svc := newMatchService(repo, cache)

	_, err := svc.Match(context.Background(), "same resume", 10)
	require.NoError(t, err)

	_, err = svc.Match(context.Background(), "same resume", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	repo.AssertNumberOfCalls(t, "ListWithEmbeddings", 1)
}

package match

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

// Cache holds ranked matches keyed by resume fingerprint. Implemented on
// Redis with a TTL; a miss just means recomputing.
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.JobMatch, bool)
	Set(ctx context.Context, key string, matches []domain.JobMatch)
}

// Service ranks active jobs against a candidate resume by embedding
// similarity.
type Service struct {
	jobs  domain.JobRepository
	llm   *llm.Router
	cache Cache
}

// NewService creates the matcher. cache may be nil.
func NewService(jobs domain.JobRepository, router *llm.Router, cache Cache) *Service {
	return &Service{jobs: jobs, llm: router, cache: cache}
}

// Match returns the top jobs for the resume, best first. Jobs without a
// stored embedding get one computed and persisted on first use.
func (s *Service) Match(ctx context.Context, resumeText string, limit int) ([]domain.JobMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	key := cacheKey(resumeText, limit)
	if s.cache != nil {
		if matches, ok := s.cache.Get(ctx, key); ok {
			return matches, nil
		}
	}

	provider, err := s.llm.GetProvider("")
	if err != nil {
		return nil, err
	}

	resumeVec, err := provider.Embed(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}

	jobs, err := s.jobs.ListWithEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		vec := job.Embedding
		if len(vec) == 0 {
			vec, err = provider.Embed(ctx, jobDocument(job))
			if err != nil {
				log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to embed job, skipping")
				continue
			}
			if err := s.jobs.SetEmbedding(ctx, job.ID, vec); err != nil {
				log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to persist job embedding")
			}
		}

		job.Embedding = nil // keep cached payloads small
		matches = append(matches, domain.JobMatch{
			Job:   job,
			Score: cosine(resumeVec, vec),
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, matches)
	}

	return matches, nil
}

// jobDocument flattens a job into the text that gets embedded.
func jobDocument(job domain.Job) string {
	return strings.Join([]string{
		job.Title,
		job.Company,
		job.ExperienceLevel,
		strings.Join(job.Skills, ", "),
		job.Description,
	}, "\n")
}

func cacheKey(resumeText string, limit int) string {
	sum := sha256.Sum256([]byte(resumeText))
	return fmt.Sprintf("%s:%d", hex.EncodeToString(sum[:16]), limit)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

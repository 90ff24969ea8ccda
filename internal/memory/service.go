package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
)

// Fact is one remembered statement about an entity (an interview session or
// a candidate), with its embedding when one could be computed.
type Fact struct {
	EntityID  string    `bson:"entity_id"`
	Text      string    `bson:"text"`
	Embedding []float32 `bson:"embedding,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// FactRepository persists facts. Implemented on MongoDB.
type FactRepository interface {
	Insert(ctx context.Context, fact *Fact) error
	ListByEntity(ctx context.Context, entityID string, limit int) ([]Fact, error)
}

// Service implements domain.MemoryService: semantic recall over stored facts
// using embedding similarity, degrading to recency when embeddings are
// unavailable.
type Service struct {
	repo     FactRepository
	llm      *llm.Router
	minScore float64
	maxFacts int
}

func NewService(repo FactRepository, router *llm.Router, minScore float64, maxFacts int) *Service {
	if minScore <= 0 {
		minScore = 0.25
	}
	if maxFacts <= 0 {
		maxFacts = 50
	}
	return &Service{repo: repo, llm: router, minScore: minScore, maxFacts: maxFacts}
}

// Recall returns up to limit fact texts relevant to the query, most similar
// first. Facts below the similarity floor are dropped entirely; an off-topic
// memory is worse than none.
func (s *Service) Recall(ctx context.Context, entityID, query string, limit int) ([]string, error) {
	facts, err := s.repo.ListByEntity(ctx, entityID, s.maxFacts)
	if err != nil {
		return nil, err
	}
	if len(facts) == 0 {
		return nil, nil
	}

	queryVec, err := s.embed(ctx, query)
	if err != nil || len(queryVec) == 0 {
		// No embedding available; fall back to the most recent facts.
		return recentTexts(facts, limit), nil
	}

	type scored struct {
		text  string
		score float64
	}
	matches := make([]scored, 0, len(facts))
	for _, f := range facts {
		if len(f.Embedding) == 0 {
			continue
		}
		score := cosine(queryVec, f.Embedding)
		if score > s.minScore {
			matches = append(matches, scored{text: f.Text, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.text
	}
	return texts, nil
}

// Store saves a fact. The embedding is best-effort; a fact without one is
// still recallable by recency.
func (s *Service) Store(ctx context.Context, entityID, text string) error {
	vec, err := s.embed(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("failed to embed memory fact")
		vec = nil
	}

	return s.repo.Insert(ctx, &Fact{
		EntityID:  entityID,
		Text:      text,
		Embedding: vec,
		CreatedAt: time.Now(),
	})
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	provider, err := s.llm.GetProvider("")
	if err != nil {
		return nil, err
	}
	return provider.Embed(ctx, text)
}

func recentTexts(facts []Fact, limit int) []string {
	sort.Slice(facts, func(i, j int) bool { return facts[i].CreatedAt.After(facts[j].CreatedAt) })
	if len(facts) > limit {
		facts = facts[:limit]
	}
	texts := make([]string, len(facts))
	for i, f := range facts {
		texts[i] = f.Text
	}
	return texts
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

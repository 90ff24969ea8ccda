package interview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/session"
)

// GenerateFunc produces the next question for a session from its current
// state. Supplied by the controller so the scheduler stays free of LLM
// plumbing.
type GenerateFunc func(ctx context.Context, sessionID string) (string, error)

// Scheduler speculatively generates the next question in the background
// while the candidate is still speaking their answer. Depositing into an
// evicted session is a no-op; a duplicate schedule for a session already in
// flight is dropped.
type Scheduler struct {
	registry *session.Registry
	generate GenerateFunc
	delay    time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

func NewScheduler(registry *session.Registry, generate GenerateFunc, delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Scheduler{
		registry: registry,
		generate: generate,
		delay:    delay,
		timeout:  60 * time.Second,
		inflight: make(map[string]struct{}),
	}
}

// Schedule queues background generation for the session. Returns immediately.
func (s *Scheduler) Schedule(sessionID string) {
	s.mu.Lock()
	if _, busy := s.inflight[sessionID]; busy {
		s.mu.Unlock()
		return
	}
	s.inflight[sessionID] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(sessionID)
}

func (s *Scheduler) run(sessionID string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, sessionID)
		s.mu.Unlock()
	}()

	// Let the synchronous turn response go out first.
	time.Sleep(s.delay)

	// Skip when the next turn would already be the last; the closing message
	// is not generated here.
	asked, max, err := s.registry.Counts(sessionID)
	if err != nil {
		return
	}
	if asked >= max-1 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	question, err := s.generate(ctx, sessionID)
	if err != nil {
		// Failures here are invisible to the candidate; the next turn falls
		// back to synchronous generation.
		log.Warn().Err(err).Str("session_id", sessionID).Msg("pre-generation failed")
		s.registry.SetError(sessionID, err.Error())
		return
	}

	s.registry.SetPregenerated(sessionID, question)
}

// Wait blocks until all in-flight generation goroutines finish. Used on
// shutdown and in tests.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

package session

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

const shardCount = 32

// Registry is the process-wide store of live interview sessions. It is sharded
// by session ID so concurrent interviews never contend on one lock; every
// read-modify-write against a record runs as a unit under its shard lock.
type Registry struct {
	shards      [shardCount]shard
	idleTimeout time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

type shard struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewRegistry creates a registry whose sessions expire after idleTimeout
// without access. A background janitor sweeps expired sessions every
// sweepInterval; pass sweepInterval <= 0 to disable the janitor (tests call
// CleanupExpired directly).
func NewRegistry(idleTimeout, sweepInterval time.Duration) *Registry {
	r := &Registry{
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
	}
	for i := range r.shards {
		r.shards[i].records = make(map[string]*Record)
	}
	if sweepInterval > 0 {
		go r.janitor(sweepInterval)
	}
	return r
}

// Close stops the janitor. Live sessions remain readable.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := r.CleanupExpired(); n > 0 {
				log.Info().Int("evicted", n).Msg("evicted idle interview sessions")
			}
		case <-r.stop:
			return
		}
	}
}

func (r *Registry) shardFor(id string) *shard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &r.shards[h.Sum32()%shardCount]
}

// Create registers a new session. An existing session with the same ID is
// replaced; interview IDs are minted by the caller and never reused.
func (r *Registry) Create(id string, profile domain.ResumeProfile, chunks []string) {
	s := r.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = newRecord(id, profile, chunks)
}

// Get returns a copy of the session record and refreshes its idle clock.
func (r *Registry) Get(id string) (*Record, error) {
	s := r.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	rec.LastAccessed = time.Now()
	return rec.snapshot(), nil
}

// SetProfile replaces the profile and re-derives the quota. Used when the
// background resume parse completes after the session was created with a
// placeholder profile.
func (r *Registry) SetProfile(id string, profile domain.ResumeProfile) error {
	return r.update(id, func(rec *Record) {
		rec.Profile = profile
		rec.MaxQuestions = profile.MaxQuestions()
	})
}

// SetResume replaces the profile and resume chunks together, re-deriving the
// quota. Same use as SetProfile but for parses that also produced chunks.
func (r *Registry) SetResume(id string, profile domain.ResumeProfile, chunks []string) error {
	return r.update(id, func(rec *Record) {
		rec.Profile = profile
		rec.Chunks = append([]string(nil), chunks...)
		rec.MaxQuestions = profile.MaxQuestions()
	})
}

// AppendRegular appends an open regular question to the log.
func (r *Registry) AppendRegular(id, question string) error {
	return r.update(id, func(rec *Record) { rec.appendRegular(question) })
}

// AppendClarifying appends an open clarifying question to the log.
func (r *Registry) AppendClarifying(id, question string) error {
	return r.update(id, func(rec *Record) { rec.appendClarifying(question) })
}

// AttachAnswer answers the most recent open entry. counted reports whether
// the quota advanced (regular entries only).
func (r *Registry) AttachAnswer(id, answer string) (counted bool, err error) {
	err = r.update(id, func(rec *Record) {
		_, counted = rec.attachAnswer(answer)
	})
	return counted, err
}

// TrailingClarifying counts consecutive clarifying entries at the log tail.
func (r *Registry) TrailingClarifying(id string) (int, error) {
	var n int
	err := r.update(id, func(rec *Record) { n = rec.trailingClarifying() })
	return n, err
}

// Counts returns the quota state.
func (r *Registry) Counts(id string) (asked, max int, err error) {
	err = r.update(id, func(rec *Record) {
		asked, max = rec.QuestionsAsked, rec.MaxQuestions
	})
	return asked, max, err
}

// SetPregenerated deposits a speculative next question, overwriting any
// previous one. A deposit into a session that no longer exists is a silent
// no-op: a late background result for an evicted or finished interview must
// simply be dropped.
func (r *Registry) SetPregenerated(id, question string) {
	_ = r.update(id, func(rec *Record) { rec.Pregenerated = question })
}

// ConsumePregenerated atomically removes and returns the pregenerated
// question. A second concurrent consumer observes ok == false, never the same
// question twice.
func (r *Registry) ConsumePregenerated(id string) (question string, ok bool, err error) {
	err = r.update(id, func(rec *Record) {
		if rec.Pregenerated != "" {
			question, ok = rec.Pregenerated, true
			rec.Pregenerated = ""
		}
	})
	return question, ok, err
}

// SetError records the most recent degraded-path error for diagnostics.
func (r *Registry) SetError(id, msg string) {
	_ = r.update(id, func(rec *Record) { rec.LastError = msg })
}

// Delete removes a session. Deleting an absent session is a no-op.
func (r *Registry) Delete(id string) {
	s := r.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// CleanupExpired evicts sessions idle past the timeout and returns how many
// were removed. Eviction holds the same shard locks as ordinary mutation, so
// it cannot race an in-flight turn.
func (r *Registry) CleanupExpired() int {
	cutoff := time.Now().Add(-r.idleTimeout)
	evicted := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for id, rec := range s.records {
			if rec.LastAccessed.Before(cutoff) {
				delete(s.records, id)
				evicted++
			}
		}
		s.mu.Unlock()
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		n += len(s.records)
		s.mu.Unlock()
	}
	return n
}

// update runs fn on the record under the shard lock and refreshes the idle
// clock. Returns ErrSessionNotFound if the session is absent.
func (r *Registry) update(id string, fn func(*Record)) error {
	s := r.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	fn(rec)
	rec.LastAccessed = time.Now()
	return nil
}

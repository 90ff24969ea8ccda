package session

import (
	"time"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

// Record holds the full in-memory state of one interview session. Records are
// owned by the Registry; callers only ever see copies (see Registry.Get) or
// mutate under the owning shard lock.
type Record struct {
	ID             string
	Profile        domain.ResumeProfile
	Chunks         []string
	Log            []domain.ConversationEntry
	QuestionsAsked int
	MaxQuestions   int

	// Pregenerated is the speculative next question; empty means none.
	Pregenerated string

	LastError    string
	CreatedAt    time.Time
	LastAccessed time.Time
}

func newRecord(id string, profile domain.ResumeProfile, chunks []string) *Record {
	now := time.Now()
	return &Record{
		ID:           id,
		Profile:      profile,
		Chunks:       chunks,
		MaxQuestions: profile.MaxQuestions(),
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// appendRegular adds an open regular question. The quota counter moves only
// when the answer is attached, not here.
func (r *Record) appendRegular(question string) {
	r.Log = append(r.Log, domain.ConversationEntry{
		Question:  question,
		Timestamp: time.Now(),
	})
}

// appendClarifying adds an open clarifying question. Clarifying questions
// never touch the quota counter.
func (r *Record) appendClarifying(question string) {
	r.Log = append(r.Log, domain.ConversationEntry{
		Question:     question,
		Timestamp:    time.Now(),
		IsClarifying: true,
	})
}

// attachAnswer sets the answer on the most recent open entry, scanning from
// the tail. Returns whether an entry was answered and whether that advanced
// the quota. A log with no open entry is a protocol violation by the caller;
// it is treated as a no-op.
func (r *Record) attachAnswer(answer string) (attached, counted bool) {
	for i := len(r.Log) - 1; i >= 0; i-- {
		if r.Log[i].Answer != nil {
			continue
		}
		a := answer
		r.Log[i].Answer = &a
		if !r.Log[i].IsClarifying {
			r.QuestionsAsked++
			return true, true
		}
		return true, false
	}
	return false, false
}

// trailingClarifying counts consecutive clarifying entries from the tail,
// stopping at the first regular one.
func (r *Record) trailingClarifying() int {
	n := 0
	for i := len(r.Log) - 1; i >= 0; i-- {
		if !r.Log[i].IsClarifying {
			break
		}
		n++
	}
	return n
}

// snapshot returns a copy safe to use outside the shard lock.
func (r *Record) snapshot() *Record {
	cp := *r
	cp.Chunks = append([]string(nil), r.Chunks...)
	cp.Log = append([]domain.ConversationEntry(nil), r.Log...)
	return &cp
}

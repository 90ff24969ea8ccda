package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is the only interview error surfaced to API clients.
var ErrSessionNotFound = errors.New("session not found")

// ConversationEntry is one question in the interview log, with its answer once
// the candidate has replied. At most one entry at the tail of a log has a nil
// Answer (the open question awaiting a reply).
type ConversationEntry struct {
	Question     string    `json:"question"`
	Answer       *string   `json:"answer,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	IsClarifying bool      `json:"is_clarifying"`
}

// Answered reports whether the entry has received a reply.
func (e ConversationEntry) Answered() bool {
	return e.Answer != nil
}

// TurnResult is the outcome of advancing an interview by one answer.
type TurnResult struct {
	Question       string `json:"nextQuestion,omitempty"`
	IsComplete     bool   `json:"isComplete"`
	ClosingMessage string `json:"closingMessage,omitempty"`
	IsRepeat       bool   `json:"isRepeat"`
}

// InterviewArchive is the durable record written when an interview finishes.
type InterviewArchive struct {
	SessionID   string
	Profile     ResumeProfile
	Transcript  []ConversationEntry
	Assessment  *Assessment
	StartedAt   time.Time
	CompletedAt time.Time
}

// ArchiveRepository persists finished interviews.
type ArchiveRepository interface {
	Save(ctx context.Context, archive *InterviewArchive) error
}

// MemoryService recalls and stores interview facts. Both operations are
// best-effort: callers must tolerate errors without aborting the turn.
type MemoryService interface {
	Recall(ctx context.Context, entityID, query string, limit int) ([]string, error)
	Store(ctx context.Context, entityID, text string) error
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

// InterviewRepository implements domain.ArchiveRepository
type InterviewRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewRepository creates a new interview archive repository
func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

// Save upserts the finished interview. Re-running an assessment for the same
// session overwrites the previous archive row.
func (r *InterviewRepository) Save(ctx context.Context, archive *domain.InterviewArchive) error {
	transcript, err := json.Marshal(archive.Transcript)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	assessment, err := json.Marshal(archive.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	query := `
		INSERT INTO interviews (
			session_id, candidate_name, candidate_email, seniority,
			transcript, assessment, started_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO UPDATE SET
			transcript = EXCLUDED.transcript,
			assessment = EXCLUDED.assessment,
			completed_at = EXCLUDED.completed_at
	`
	_, err = r.pool.Exec(ctx, query,
		archive.SessionID,
		archive.Profile.FullName(),
		archive.Profile.Email,
		archive.Profile.Seniority,
		transcript,
		assessment,
		archive.StartedAt,
		archive.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save interview: %w", err)
	}
	return nil
}

// Get loads an archived interview by session ID.
func (r *InterviewRepository) Get(ctx context.Context, sessionID string) (*domain.InterviewArchive, error) {
	query := `
		SELECT session_id, transcript, assessment, started_at, completed_at
		FROM interviews
		WHERE session_id = $1
	`
	var (
		archive        domain.InterviewArchive
		transcriptJSON []byte
		assessmentJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&archive.SessionID,
		&transcriptJSON,
		&assessmentJSON,
		&archive.StartedAt,
		&archive.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	if err := json.Unmarshal(transcriptJSON, &archive.Transcript); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	if len(assessmentJSON) > 0 {
		if err := json.Unmarshal(assessmentJSON, &archive.Assessment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
		}
	}

	return &archive, nil
}

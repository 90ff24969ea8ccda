package domain

import (
	"context"
	"time"
)

// Job is a posting candidates can be matched against.
type Job struct {
	ID              string    `json:"jobId" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Company         string    `json:"company" bson:"company"`
	Location        string    `json:"location,omitempty" bson:"location,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty" bson:"experience_level,omitempty"`
	JobType         string    `json:"job_type,omitempty" bson:"job_type,omitempty"`
	Skills          []string  `json:"skills" bson:"skills,omitempty"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Embedding       []float32 `json:"-" bson:"embedding,omitempty"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	PostedAt        time.Time `json:"posted_date,omitempty" bson:"posted_at,omitempty"`
}

// JobMatch pairs a job with its similarity score against a resume.
type JobMatch struct {
	Job   Job     `json:"job"`
	Score float64 `json:"score"`
}

// JobFilter narrows job listings.
type JobFilter struct {
	Location        string
	ExperienceLevel string
	Skills          []string
}

// JobRepository is the job board storage interface.
type JobRepository interface {
	List(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Get(ctx context.Context, id string) (*Job, error)
	ListWithEmbeddings(ctx context.Context) ([]Job, error)
	SetEmbedding(ctx context.Context, id string, embedding []float32) error
}

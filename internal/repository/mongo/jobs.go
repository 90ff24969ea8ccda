package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/domain"
)

const jobsCollection = "jobs"

// JobRepository implements domain.JobRepository on MongoDB.
type JobRepository struct {
	coll *mongo.Collection
}

// NewJobRepository creates a new job repository
func NewJobRepository(client *Client) *JobRepository {
	return &JobRepository{coll: client.Database().Collection(jobsCollection)}
}

// List returns active jobs matching the filter, newest first, plus the total
// matching count for pagination.
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	query := bson.M{"is_active": true}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.ExperienceLevel != "" {
		query["experience_level"] = filter.ExperienceLevel
	}
	if len(filter.Skills) > 0 {
		query["skills"] = bson.M{"$in": filter.Skills}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"embedding": 0})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode jobs: %w", err)
	}

	return jobs, total, nil
}

// Get loads one job by ID.
func (r *JobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListWithEmbeddings returns all active jobs including their embedding
// vectors, for similarity ranking.
func (r *JobRepository) ListWithEmbeddings(ctx context.Context) ([]domain.Job, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}

// SetEmbedding stores the embedding vector for a job.
func (r *JobRepository) SetEmbedding(ctx context.Context, id string, embedding []float32) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"embedding": embedding}},
	)
	if err != nil {
		return fmt.Errorf("failed to set job embedding: %w", err)
	}
	return nil
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/memory"
)

// FactRepository implements memory.FactRepository on MongoDB.
type FactRepository struct {
	coll *mongo.Collection
}

// NewFactRepository creates a new fact repository on the given collection.
func NewFactRepository(client *Client, collection string) *FactRepository {
	if collection == "" {
		collection = "memory_facts"
	}
	return &FactRepository{coll: client.Database().Collection(collection)}
}

// Insert stores one fact.
func (r *FactRepository) Insert(ctx context.Context, fact *memory.Fact) error {
	if _, err := r.coll.InsertOne(ctx, fact); err != nil {
		return fmt.Errorf("failed to insert fact: %w", err)
	}
	return nil
}

// ListByEntity returns the newest facts for an entity, most recent first.
func (r *FactRepository) ListByEntity(ctx context.Context, entityID string, limit int) ([]memory.Fact, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"entity_id": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	defer cursor.Close(ctx)

	var facts []memory.Fact
	if err := cursor.All(ctx, &facts); err != nil {
		return nil, fmt.Errorf("failed to decode facts: %w", err)
	}
	return facts, nil
}

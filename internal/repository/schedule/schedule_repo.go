package schedule

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stripboard/internal/model/schedule"
)

// ScheduleRepository is the scene collection store: one document per
// user, replaced wholesale on every mutation.
type ScheduleRepository interface {
	Load(ctx context.Context, userID string) ([]schedule.Scene, error)
	Replace(ctx context.Context, userID string, scenes []schedule.Scene) error
	Delete(ctx context.Context, userID string) error
}

// ScheduleRepo is the MongoDB implementation.
type ScheduleRepo struct {
	coll *mongo.Collection
}

// NewScheduleRepo creates a schedule repository.
func NewScheduleRepo(db *mongo.Database) *ScheduleRepo {
	var s schedule.Schedule
	return &ScheduleRepo{coll: db.Collection(s.Collection())}
}

// Load returns the user's scenes. A user with no stored schedule gets an
// empty collection, never an error.
func (r *ScheduleRepo) Load(ctx context.Context, userID string) ([]schedule.Scene, error) {
	var doc schedule.Schedule
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []schedule.Scene{}, nil
		}
		return nil, err
	}
	if doc.Scenes == nil {
		return []schedule.Scene{}, nil
	}
	return doc.Scenes, nil
}

// Replace overwrites the user's entire schedule document. There is no
// optimistic-concurrency check: two concurrent sessions resolve
// last-write-wins.
func (r *ScheduleRepo) Replace(ctx context.Context, userID string, scenes []schedule.Scene) error {
	doc := schedule.Schedule{
		UserID:    userID,
		Scenes:    scenes,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": userID}, &doc, opts)
	return err
}

// Delete removes the user's schedule document entirely.
func (r *ScheduleRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}

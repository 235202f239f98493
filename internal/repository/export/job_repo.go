package export

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stripboard/internal/model/export"
)

// JobRepository is the export job store.
type JobRepository interface {
	Create(ctx context.Context, job *export.Job) error
	FindByID(ctx context.Context, id string) (*export.Job, error)
	FindByUserID(ctx context.Context, userID string, limit int64) ([]*export.Job, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
}

// JobRepo is the MongoDB implementation.
type JobRepo struct {
	coll *mongo.Collection
}

// NewJobRepo creates an export job repository.
func NewJobRepo(db *mongo.Database) *JobRepo {
	var j export.Job
	return &JobRepo{coll: db.Collection(j.Collection())}
}

// Create inserts a job.
func (r *JobRepo) Create(ctx context.Context, job *export.Job) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = export.JobStatusPending
	}
	_, err := r.coll.InsertOne(ctx, job)
	return err
}

// FindByID looks up a job by id.
func (r *JobRepo) FindByID(ctx context.Context, id string) (*export.Job, error) {
	var job export.Job
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByUserID returns the user's jobs, most recent first.
func (r *JobRepo) FindByUserID(ctx context.Context, userID string, limit int64) ([]*export.Job, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []*export.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update applies field updates and touches updated_at.
func (r *JobRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": updates},
	)
	return err
}

package export

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stripboard/internal/pkg/mongodb"
)

// JobStatus is the lifecycle state of an export job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobKind selects what an export job renders.
type JobKind string

const (
	// JobKindMaster renders the full master schedule.
	JobKindMaster JobKind = "master"
	// JobKindBreakdown renders one per-location breakdown.
	JobKindBreakdown JobKind = "breakdown"
	// JobKindAllBreakdowns renders every breakdown in lexicographic
	// location order, one page per location.
	JobKindAllBreakdowns JobKind = "all_breakdowns"
)

// IsValid reports whether the kind is known.
func (k JobKind) IsValid() bool {
	return k == JobKindMaster || k == JobKindBreakdown || k == JobKindAllBreakdowns
}

// Job is one export run. A job renders asynchronously; failure or
// cancellation never touches the scene collection, so a job is always
// safe to retry by starting a new one.
type Job struct {
	ID          string     `bson:"id" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Kind        JobKind    `bson:"kind" json:"kind"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"` // breakdown kind only
	Status      JobStatus  `bson:"status" json:"status"`
	Progress    float64    `bson:"progress" json:"progress"` // 0.0-1.0
	DocumentKey string     `bson:"document_key,omitempty" json:"document_key,omitempty"`
	DocumentURL string     `bson:"document_url,omitempty" json:"document_url,omitempty"`
	Error       string     `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Collection returns the collection name.
func (j *Job) Collection() string { return "export_jobs" }

// EnsureIndexes creates user and status lookup indexes.
func (j *Job) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return mongodb.CreateIndexes(ctx, db.Collection(j.Collection()), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	})
}

package schedule

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Schedule is a user's full scene collection, stored as a single
// document keyed by user id. Every mutation replaces the document
// wholesale; there is no partial update, so concurrent writers (two
// open sessions) resolve last-write-wins.
type Schedule struct {
	UserID    string    `bson:"_id" json:"user_id"`
	Scenes    []Scene   `bson:"scenes" json:"scenes"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name.
func (s *Schedule) Collection() string { return "schedules" }

// EnsureIndexes is a no-op: the document is keyed by _id only.
func (s *Schedule) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return nil
}

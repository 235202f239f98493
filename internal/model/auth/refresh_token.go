package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stripboard/internal/pkg/mongodb"
)

// RefreshToken is a long-lived opaque token bound to a user session.
type RefreshToken struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsExpired reports whether the token has expired.
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Collection returns the collection name.
func (rt *RefreshToken) Collection() string { return "refresh_tokens" }

// EnsureIndexes creates token and user lookup indexes.
func (rt *RefreshToken) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return mongodb.CreateIndexes(ctx, db.Collection(rt.Collection()), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_user"),
		},
	})
}

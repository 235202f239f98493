package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stripboard/internal/pkg/mongodb"
)

// User is an account entity. IDs are UUID strings so no ObjectID
// conversion is needed anywhere.
type User struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Username    string     `bson:"username" json:"username"` // unique
	Password    string     `bson:"password" json:"-"`        // bcrypt hash, never returned
	DisplayName string     `bson:"display_name" json:"display_name"`
	AvatarURL   string     `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Collection returns the collection name.
func (u *User) Collection() string { return "users" }

// EnsureIndexes creates the unique username index.
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return mongodb.CreateIndex(ctx, db.Collection(u.Collection()), mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("idx_username").SetUnique(true),
	})
}

// DefaultAvatarURL builds an avatar URL derived from the username.
func DefaultAvatarURL(username string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random",
		url.QueryEscape(username))
}

package ctxutil

import "context"

// userIDKeyType is a private type so the key cannot collide with other
// context keys.
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// WithUserID injects the session user id into the context. Called by the
// auth middleware after the JWT has been validated; every downstream
// operation reads its session identity from the context rather than from
// process-wide state.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID extracts the session user id from the context.
func GetUserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(userIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

package middleware

import (
	"context"
	"errors"
)

var ErrNoUserInContext = errors.New("user id not found in context")

func GetUserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(userContextKey).(int)
	if !ok || userID <= 0 {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}

// WithUserID stores userID the way Authenticate does.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

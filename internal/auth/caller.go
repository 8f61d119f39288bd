package auth

import (
	"context"

	"storefront-be/internal/utils"
)

// Caller identifies who is making a request. The zero value is anonymous.
type Caller struct {
	UserID   uint
	Username string
}

func Anonymous() Caller {
	return Caller{}
}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

// CallerFromContext reads the identity stored by the auth middleware.
// Handlers resolve it once and hand it to services explicitly.
func CallerFromContext(ctx context.Context) Caller {
	id, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Anonymous()
	}
	return Caller{UserID: id, Username: utils.GetUsernameFromContext(ctx)}
}

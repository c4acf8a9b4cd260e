package security

import (
	"context"

	"BlogSphere.com/cmd/model"
)

// Identity is the authenticated user attached to a request. A nil
// *Identity means the request is anonymous.
type Identity struct {
	UserID   int64
	Username string
	Email    string
	Role     string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == model.RoleAdmin
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey{}).(*Identity)
	return identity
}

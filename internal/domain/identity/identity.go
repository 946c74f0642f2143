// Package identity describes who is calling an operation.
package identity

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the caller's role in the back-office
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleOwner
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Identity is the authenticated caller of a request
type Identity struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}

// IsOwner reports whether the caller runs the store
func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}

// CanAccessCustomer reports whether the caller may read data that belongs to customerID
func (i Identity) CanAccessCustomer(customerID uuid.UUID) bool {
	return i.IsOwner() || i.ID == customerID
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Require returns the identity stored in ctx or ErrUnauthorized
func Require(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.ID == uuid.Nil {
		return Identity{}, shared.ErrUnauthorized
	}
	return id, nil
}

// RequireOwner returns the identity stored in ctx if it belongs to an owner
func RequireOwner(ctx context.Context) (Identity, error) {
	id, err := Require(ctx)
	if err != nil {
		return Identity{}, err
	}
	if !id.IsOwner() {
		return Identity{}, shared.ErrForbidden
	}
	return id, nil
}

// Package testutil provides common test utilities for the Shopping App.
// It contains helpers for building caller identities, issuing JSON requests
// against a gin engine and waiting on asynchronous side effects.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestUUID generates a deterministic UUID for testing.
// Uses the provided seed string to create a reproducible UUID.
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// OwnerID returns the standard owner ID for tests.
func OwnerID() uuid.UUID {
	return NewTestUUID("test-owner")
}

// OwnerContext returns a context carrying the standard store owner
func OwnerContext(ctx context.Context) context.Context {
	return identity.WithIdentity(ctx, identity.Identity{
		ID:   OwnerID(),
		Name: "Store Owner",
		Role: identity.RoleOwner,
	})
}

// CustomerContext returns a context carrying a customer with the given ID
func CustomerContext(ctx context.Context, id uuid.UUID) context.Context {
	return identity.WithIdentity(ctx, identity.Identity{
		ID:   id,
		Name: "Customer",
		Role: identity.RoleCustomer,
	})
}

// RequireEventually retries condition until it passes or fails the test on timeout.
func RequireEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msgAndArgs ...interface{}) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}

	require.Fail(t, "Condition not met within timeout", msgAndArgs...)
}

package cache

import (
	"context"
	"time"
)

// Response is a completed HTTP response remembered under an Idempotency-Key
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers request keys and the response each one produced.
//
// A key moves through two states: reserved while the first request is running,
// then completed with its response. Lookup returns (nil, true) for a reserved key.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false if the key is already reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Complete stores the response for a reserved key
	Complete(ctx context.Context, key string, resp Response, ttl time.Duration) error
	// Lookup returns the stored response and whether the key is known
	Lookup(ctx context.Context, key string) (*Response, bool, error)
	// Release forgets key so the request can be retried
	Release(ctx context.Context, key string) error
	Close() error
}

package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryIdempotencyStore keeps idempotency records in process memory, so
// retries are only recognised when they reach the same instance. A nil
// response marks a key that is reserved but not yet completed.
type InMemoryIdempotencyStore struct {
	records   *ttlMap[*Response]
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore starts a janitor that purges expired records
// every sweepInterval until Close.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		records: newTTLMap[*Response](),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.janitor(5 * time.Minute)
	return s
}

func (s *InMemoryIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.records.setIfAbsent(key, nil, ttl), nil
}

func (s *InMemoryIdempotencyStore) Complete(ctx context.Context, key string, resp Response, ttl time.Duration) error {
	resp.Body = append([]byte(nil), resp.Body...)
	s.records.set(key, &resp, ttl)
	return nil
}

// Lookup returns the stored response, or (nil, true) while the key is only reserved
func (s *InMemoryIdempotencyStore) Lookup(ctx context.Context, key string) (*Response, bool, error) {
	resp, ok := s.records.get(key)
	if !ok || resp == nil {
		return nil, ok, nil
	}
	out := *resp
	return &out, true, nil
}

func (s *InMemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.records.delete(key)
	return nil
}

// Close stops the janitor. It may be called more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *InMemoryIdempotencyStore) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.records.purge()
		}
	}
}

// Size returns the number of records, expired ones included
func (s *InMemoryIdempotencyStore) Size() int {
	return s.records.len()
}

var _ IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/Charan2012-gif/Shopping-App/internal/application/media"
)

// Ensure StubObjectStorage implements media.ObjectStorage
var _ media.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps objects in memory.
// It is used in development when no S3 backend is configured.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]stubObject
}

type stubObject struct {
	data        []byte
	contentType string
}

// NewStubObjectStorage creates an empty in-memory store
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}
	return &StubObjectStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]stubObject),
	}
}

func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errKeyRequired
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[storageKey] = stubObject{data: buf, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errKeyRequired
	}
	s.mu.Lock()
	delete(s.objects, storageKey)
	s.mu.Unlock()
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errKeyRequired
	}
	s.mu.RLock()
	_, ok := s.objects[storageKey]
	s.mu.RUnlock()
	return ok, nil
}

func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + escapeKey(storageKey)
}

// Get returns a stored object and its content type
func (s *StubObjectStorage) Get(storageKey string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// Len returns the number of stored objects
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

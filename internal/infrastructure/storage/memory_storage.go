package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/snehagupta9582883065/recent-api/internal/application/media"
)

// Ensure MemoryObjectStorage implements ObjectStorage
var _ media.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in process memory.
// It backs uploads when object storage is disabled and in tests.
type MemoryObjectStorage struct {
	// BaseURL prefixes returned object URLs.
	// Defaults to "https://storage.example.com" if not set
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	body        []byte
	contentType string
}

// NewMemoryObjectStorage creates an empty MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of body under key
func (s *MemoryObjectStorage) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = make(map[string]memoryObject)
	}
	s.objects[key] = memoryObject{body: append([]byte(nil), body...), contentType: contentType}

	return strings.TrimRight(s.BaseURL, "/") + "/" + key, nil
}

// Delete removes key; missing keys are ignored
func (s *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns the stored body and content type
func (s *MemoryObjectStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.body, obj.contentType, ok
}

// Len returns the number of stored objects
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

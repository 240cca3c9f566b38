package liquify

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Snippet is a named, pre-rendered block of template output.
type Snippet struct {
	Name      string    `json:"name" yaml:"name"`
	Body      string    `json:"body" yaml:"body"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// SnippetStore persists snippets for include and section rendering.
// Implementations must be safe for concurrent use.
type SnippetStore interface {
	// Get returns the named snippet, or an error satisfying
	// IsSnippetNotFound.
	Get(ctx context.Context, name string) (*Snippet, error)

	// Put creates or replaces a snippet. UpdatedAt is set by the store.
	Put(ctx context.Context, snippet *Snippet) error

	// Delete removes a snippet.
	Delete(ctx context.Context, name string) error

	// List returns all snippet names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// StorageError represents a snippet storage error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewSnippetNotFoundError creates an error for a missing snippet.
func NewSnippetNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgSnippetNotFound,
		Name:    name,
	}
}

// NewStorageClosedError creates an error for operations on a closed store.
func NewStorageClosedError() error {
	return &StorageError{Message: ErrMsgStorageClosed}
}

// IsSnippetNotFound reports whether err means the snippet does not exist.
func IsSnippetNotFound(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr) && storageErr.Message == ErrMsgSnippetNotFound
}

// validateSnippet checks a snippet before it is stored.
func validateSnippet(snippet *Snippet) error {
	if snippet == nil {
		return &StorageError{Message: ErrMsgSnippetNil}
	}
	if snippet.Name == "" {
		return &StorageError{Message: ErrMsgSnippetEmptyName}
	}
	return nil
}

// MemorySnippetStore keeps snippets in a map.
type MemorySnippetStore struct {
	mu       sync.RWMutex
	snippets map[string]*Snippet
	closed   bool
}

// NewMemorySnippetStore creates an empty in-memory store.
func NewMemorySnippetStore() *MemorySnippetStore {
	return &MemorySnippetStore{
		snippets: make(map[string]*Snippet),
	}
}

// Get returns a copy of the named snippet.
func (s *MemorySnippetStore) Get(ctx context.Context, name string) (*Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	snippet, ok := s.snippets[name]
	if !ok {
		return nil, NewSnippetNotFoundError(name)
	}

	result := *snippet
	return &result, nil
}

// Put stores a copy of snippet.
func (s *MemorySnippetStore) Put(ctx context.Context, snippet *Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSnippet(snippet); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	stored := *snippet
	stored.UpdatedAt = time.Now()
	s.snippets[stored.Name] = &stored
	snippet.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes the named snippet.
func (s *MemorySnippetStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.snippets[name]; !ok {
		return NewSnippetNotFoundError(name)
	}
	delete(s.snippets, name)
	return nil
}

// List returns the sorted snippet names.
func (s *MemorySnippetStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	names := make([]string, 0, len(s.snippets))
	for name := range s.snippets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed and drops its contents.
func (s *MemorySnippetStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.snippets = nil
	return nil
}

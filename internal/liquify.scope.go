package internal

import (
	"strconv"
	"strings"
	"sync"
)

// PathSeparator splits dotted variable paths
const PathSeparator = "."

// Scope holds template variable bindings. A child scope overlays its own
// bindings on its parent; writes to a child never reach the parent.
type Scope struct {
	data   map[string]any
	parent *Scope
	mu     sync.RWMutex
}

// NewScope creates a root scope. If data is nil, an empty map is used.
func NewScope(data map[string]any) *Scope {
	if data == nil {
		data = make(map[string]any)
	}
	return &Scope{data: data}
}

// Get resolves a dotted path (e.g. "product.variants.0.title"). The first
// segment is looked up through the scope chain, remaining segments through
// GetProperty. Numeric segments fall back to index access.
func (s *Scope) Get(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, PathSeparator)

	current, ok := s.lookup(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		next, err := GetProperty(current, part)
		if err != nil {
			i, convErr := strconv.Atoi(part)
			if convErr != nil {
				return nil, false
			}
			if next, err = GetProperty(current, i); err != nil {
				return nil, false
			}
		}
		current = next
	}
	return current, true
}

// lookup finds a top-level binding, walking up the parent chain
func (s *Scope) lookup(name string) (any, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		sc.mu.RLock()
		v, ok := sc.data[name]
		sc.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds key in this scope only
func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Has checks if a value exists at the given path.
func (s *Scope) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Child creates a scope that overlays data on s.
func (s *Scope) Child(data map[string]any) *Scope {
	if data == nil {
		data = make(map[string]any)
	}
	return &Scope{
		data:   data,
		parent: s,
	}
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Data returns a copy of this scope's own bindings, excluding parents.
func (s *Scope) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]any, len(s.data))
	for k, v := range s.data {
		result[k] = v
	}
	return result
}

// ReadKey implements KeyedReader so a scope can be piped into filters
func (s *Scope) ReadKey(key string) (any, bool) {
	return s.Get(key)
}

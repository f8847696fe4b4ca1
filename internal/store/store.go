// Package store holds component descriptor registries. The engine only
// ever reads from a Store; registration happens before a resolution starts
// and callers are responsible for not mutating a store mid-resolution.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/semver"
)

// ErrNotFound is returned by Get when no registered version of a component
// satisfies the request.
var ErrNotFound = errors.New("component not found")

// Filter narrows a List call. Zero fields match everything.
type Filter struct {
	Kind component.Kind
	Type string
}

// Store is the read-only registry surface consumed by the engine.
type Store interface {
	// Get returns the best registered descriptor for key that satisfies
	// constraint. An empty constraint matches any version. Get returns an
	// error wrapping ErrNotFound when nothing matches.
	Get(key component.Key, constraint string) (component.Descriptor, error)

	// List returns all registered descriptors matching the filter.
	List(filter Filter) []component.Descriptor
}

// MemoryStore is an in-memory Store keyed by component family. Multiple
// versions may be registered per key; Get serves the highest satisfying
// version so resolution stays deterministic.
type MemoryStore struct {
	mu    sync.RWMutex
	byKey map[component.Key][]component.Descriptor
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[component.Key][]component.Descriptor)}
}

// Register adds a descriptor to the store. Malformed descriptors and
// duplicate key+version registrations are rejected.
func (s *MemoryStore) Register(d component.Descriptor) error {
	if diags := d.Validate(); diag.HasErrors(diags) {
		return fmt.Errorf("invalid descriptor %s: %s", d.ID(), diags[0].Message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byKey[d.Key] {
		if existing.Version == d.Version {
			return fmt.Errorf("component %s already registered", d.ID())
		}
	}
	s.byKey[d.Key] = append(s.byKey[d.Key], d)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(key component.Key, constraint string) (component.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.byKey[key]
	if len(versions) == 0 {
		return component.Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	c, err := semver.ParseConstraint(constraint)
	if err != nil {
		return component.Descriptor{}, fmt.Errorf("component %s: %w", key, err)
	}

	best := -1
	var bestVersion semver.Version
	for i, d := range versions {
		v, err := semver.ParseVersion(d.Version)
		if err != nil {
			// Rejected at Register time; defensive for stores built by hand.
			continue
		}
		if !semver.Satisfies(v, c) {
			continue
		}
		if best < 0 || semver.Compare(v, bestVersion) > 0 {
			best = i
			bestVersion = v
		}
	}
	if best < 0 {
		return component.Descriptor{}, fmt.Errorf("%w: %s satisfying %q", ErrNotFound, key, constraint)
	}
	return versions[best], nil
}

// List implements Store. Results are sorted by key then descending version.
func (s *MemoryStore) List(filter Filter) []component.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []component.Descriptor
	for key, versions := range s.byKey {
		if filter.Kind != "" && key.Kind != filter.Kind {
			continue
		}
		if filter.Type != "" && key.Type != filter.Type {
			continue
		}
		out = append(out, versions...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key.String() < out[j].Key.String()
		}
		vi, ei := semver.ParseVersion(out[i].Version)
		vj, ej := semver.ParseVersion(out[j].Version)
		if ei != nil || ej != nil {
			return out[i].Version < out[j].Version
		}
		return semver.Compare(vi, vj) > 0
	})
	return out
}

// Len returns the number of registered descriptors.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, versions := range s.byKey {
		n += len(versions)
	}
	return n
}

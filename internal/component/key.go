// Package component defines the descriptor model the resolution engine
// operates on: component identity, dependency and conflict declarations,
// compatibility restrictions and conditional-inclusion predicates.
package component

import (
	"fmt"
	"strings"
)

// Kind classifies a component family.
type Kind string

const (
	// KindFragment is a structural component, e.g. a page layout.
	KindFragment Kind = "fragment"
	// KindService is a configurable integration component, e.g. an auth provider.
	KindService Kind = "service"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindFragment || k == KindService
}

// Key uniquely identifies a component family. It is the node identity in
// the dependency graph; versions are matched separately at resolution time.
type Key struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Type     string `json:"type" yaml:"type"`
	Provider string `json:"provider" yaml:"provider"`
}

// String renders the key in its canonical kind:type:provider form.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Kind, k.Type, k.Provider)
}

// IsZero reports whether the key is the zero value.
func (k Key) IsZero() bool {
	return k.Kind == "" && k.Type == "" && k.Provider == ""
}

// ParseKey parses the canonical kind:type:provider form. The two-part
// type:provider shorthand is accepted and defaults to the service kind,
// matching how components are named on the command line.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Key{}, fmt.Errorf("invalid component key %q", s)
		}
		return Key{Kind: KindService, Type: parts[0], Provider: parts[1]}, nil
	case 3:
		k := Key{Kind: Kind(parts[0]), Type: parts[1], Provider: parts[2]}
		if !k.Kind.Valid() {
			return Key{}, fmt.Errorf("invalid component kind %q in key %q", parts[0], s)
		}
		if k.Type == "" || k.Provider == "" {
			return Key{}, fmt.Errorf("invalid component key %q", s)
		}
		return k, nil
	default:
		return Key{}, fmt.Errorf("invalid component key %q (want kind:type:provider)", s)
	}
}

// KeyStrings renders a list of keys in canonical form.
func KeyStrings(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

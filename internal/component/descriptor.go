package component

import (
	"fmt"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/semver"
)

// DefaultPriority is the ordering weight assigned when a descriptor does
// not declare one. Higher priority components are planned earlier among
// otherwise-unordered peers.
const DefaultPriority = 50

// Requirement is a dependency edge declared by a descriptor. Constraint is
// an optional version requirement (caret, tilde or exact) matched against
// whatever version the store serves for Key. An optional requirement is
// dropped with a warning, never an error, when it cannot be resolved.
type Requirement struct {
	Key        Key    `json:"key" yaml:"key"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Required   bool   `json:"required" yaml:"required"`
}

// Compatibility restricts where a component may be included. An empty list
// means no restriction on that axis.
type Compatibility struct {
	Frameworks []string `json:"frameworks,omitempty" yaml:"frameworks,omitempty"`
	Platforms  []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Contexts   []string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// AllowsFramework reports whether the framework is permitted.
func (c Compatibility) AllowsFramework(framework string) bool {
	return len(c.Frameworks) == 0 || contains(c.Frameworks, framework)
}

// AllowsPlatform reports whether the platform is permitted.
func (c Compatibility) AllowsPlatform(platform string) bool {
	return len(c.Platforms) == 0 || contains(c.Platforms, platform)
}

// AllowsContext reports whether the runtime context is permitted.
func (c Compatibility) AllowsContext(context string) bool {
	return len(c.Contexts) == 0 || contains(c.Contexts, context)
}

// Descriptor describes one version of a component. Descriptors are
// read-only inputs to a resolution; the engine never mutates them.
type Descriptor struct {
	Key           Key           `json:"key" yaml:"key"`
	Version       string        `json:"version" yaml:"version"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	Requires      []Requirement `json:"requires,omitempty" yaml:"requires,omitempty"`
	Conflicts     []Key         `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Compatibility Compatibility `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	Condition     Predicate     `json:"-" yaml:"-"`
	Priority      int           `json:"priority,omitempty" yaml:"priority,omitempty"`
	Payload       any           `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// EffectivePriority returns the declared priority, or DefaultPriority when
// none was set.
func (d Descriptor) EffectivePriority() int {
	if d.Priority == 0 {
		return DefaultPriority
	}
	return d.Priority
}

// Included evaluates the descriptor's condition against the context. A
// descriptor without a condition is always included.
func (d Descriptor) Included(ctx ResolutionContext) bool {
	if d.Condition == nil {
		return true
	}
	return d.Condition.Eval(ctx)
}

// Validate checks the descriptor's shape and returns malformed-descriptor
// diagnostics for every problem found. It never short-circuits.
func (d Descriptor) Validate() []diag.Diagnostic {
	var diags []diag.Diagnostic
	self := []string{d.Key.String()}

	malformed := func(format string, args ...any) {
		diags = append(diags, diag.Errorf(diag.CodeMalformedDescriptor, self, format, args...))
	}

	if !d.Key.Kind.Valid() {
		malformed("component kind %q is not fragment or service", d.Key.Kind)
	}
	if d.Key.Type == "" || d.Key.Provider == "" {
		malformed("component key %q is missing a type or provider", d.Key)
	}
	if d.Version == "" {
		malformed("component %q declares no version", d.Key)
	} else if _, err := semver.ParseVersion(d.Version); err != nil {
		malformed("component %q has invalid version %q: %v", d.Key, d.Version, err)
	}

	for _, req := range d.Requires {
		if req.Key == d.Key {
			malformed("component %q requires itself", d.Key)
		}
		if req.Key.IsZero() {
			malformed("component %q declares a requirement with an empty key", d.Key)
		}
		if req.Constraint != "" {
			if _, err := semver.ParseConstraint(req.Constraint); err != nil {
				malformed("component %q has invalid constraint %q for %q: %v", d.Key, req.Constraint, req.Key, err)
			}
		}
	}
	for _, c := range d.Conflicts {
		if c == d.Key {
			malformed("component %q conflicts with itself", d.Key)
		}
	}
	return diags
}

// ID renders the descriptor's key and version, the unique identity of one
// registration in the component store.
func (d Descriptor) ID() string {
	return fmt.Sprintf("%s@%s", d.Key, d.Version)
}

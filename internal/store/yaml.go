package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
)

// Registry file schema. Components are declared flat; requirement keys and
// conflicts use the canonical kind:type:provider form, and conditions are
// written as nested equals/all/any/not mappings:
//
//	components:
//	  - kind: service
//	    type: database
//	    provider: postgresql
//	    version: 1.2.0
//	    requires:
//	      - key: service:infra:docker
//	        constraint: "^1.0.0"
//	        optional: true
//	    conflicts: [service:database:mysql]
//	    condition:
//	      equals: {field: region, value: norway}
type registryFile struct {
	Components []registryComponent `yaml:"components"`
}

type registryComponent struct {
	Kind          string                  `yaml:"kind"`
	Type          string                  `yaml:"type"`
	Provider      string                  `yaml:"provider"`
	Version       string                  `yaml:"version"`
	Description   string                  `yaml:"description"`
	Priority      int                     `yaml:"priority"`
	Requires      []registryRequirement   `yaml:"requires"`
	Conflicts     []string                `yaml:"conflicts"`
	Compatibility component.Compatibility `yaml:"compatibility"`
	Condition     *registryCondition      `yaml:"condition"`
	Payload       any                     `yaml:"payload"`
}

type registryRequirement struct {
	Key        string `yaml:"key"`
	Constraint string `yaml:"constraint"`
	Optional   bool   `yaml:"optional"`
}

type registryCondition struct {
	Equals *registryEquals     `yaml:"equals"`
	All    []registryCondition `yaml:"all"`
	Any    []registryCondition `yaml:"any"`
	Not    *registryCondition  `yaml:"not"`
}

type registryEquals struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

// LoadFile parses one registry file into a fresh MemoryStore.
func LoadFile(path string) (*MemoryStore, error) {
	s := NewMemoryStore()
	if err := LoadInto(s, path); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFiles parses several registry files into a single store.
func LoadFiles(paths ...string) (*MemoryStore, error) {
	s := NewMemoryStore()
	for _, path := range paths {
		if err := LoadInto(s, path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadInto parses a registry file and registers its components into s.
func LoadInto(s *MemoryStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse registry %s: %w", path, err)
	}

	for i, rc := range file.Components {
		d, err := rc.descriptor()
		if err != nil {
			return fmt.Errorf("registry %s, component %d: %w", path, i, err)
		}
		if err := s.Register(d); err != nil {
			return fmt.Errorf("registry %s: %w", path, err)
		}
	}
	return nil
}

func (rc registryComponent) descriptor() (component.Descriptor, error) {
	d := component.Descriptor{
		Key: component.Key{
			Kind:     component.Kind(rc.Kind),
			Type:     rc.Type,
			Provider: rc.Provider,
		},
		Version:     rc.Version,
		Description: rc.Description,
		Priority:    rc.Priority,
		Payload:     rc.Payload,
	}
	d.Compatibility = rc.Compatibility

	for _, rr := range rc.Requires {
		key, err := component.ParseKey(rr.Key)
		if err != nil {
			return component.Descriptor{}, err
		}
		d.Requires = append(d.Requires, component.Requirement{
			Key:        key,
			Constraint: rr.Constraint,
			Required:   !rr.Optional,
		})
	}
	for _, raw := range rc.Conflicts {
		key, err := component.ParseKey(raw)
		if err != nil {
			return component.Descriptor{}, err
		}
		d.Conflicts = append(d.Conflicts, key)
	}
	if rc.Condition != nil {
		pred, err := rc.Condition.predicate()
		if err != nil {
			return component.Descriptor{}, err
		}
		d.Condition = pred
	}
	return d, nil
}

func (c registryCondition) predicate() (component.Predicate, error) {
	set := 0
	if c.Equals != nil {
		set++
	}
	if len(c.All) > 0 {
		set++
	}
	if len(c.Any) > 0 {
		set++
	}
	if c.Not != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("condition must set exactly one of equals, all, any, not")
	}

	switch {
	case c.Equals != nil:
		if c.Equals.Field == "" {
			return nil, fmt.Errorf("equals condition is missing a field")
		}
		return component.Equals{Field: c.Equals.Field, Value: c.Equals.Value}, nil
	case len(c.All) > 0:
		terms, err := predicates(c.All)
		if err != nil {
			return nil, err
		}
		return component.And{Terms: terms}, nil
	case len(c.Any) > 0:
		terms, err := predicates(c.Any)
		if err != nil {
			return nil, err
		}
		return component.Or{Terms: terms}, nil
	default:
		inner, err := c.Not.predicate()
		if err != nil {
			return nil, err
		}
		return component.Not{Inner: inner}, nil
	}
}

func predicates(conds []registryCondition) ([]component.Predicate, error) {
	out := make([]component.Predicate, 0, len(conds))
	for _, c := range conds {
		p, err := c.predicate()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Package semver wraps github.com/Masterminds/semver/v3 behind the small
// surface the engine needs: version parsing, constraint parsing and
// satisfaction checks. Caret constraints match within the same major
// version, tilde constraints within the same major.minor, and a bare
// version is an exact match.
package semver

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version.
type Version struct {
	v *mm.Version
}

// Constraint is a parsed version requirement, e.g. "^1.2.0", "~1.4.0"
// or "2.0.1". "*" matches any version.
type Constraint struct {
	c *mm.Constraints
}

// ParseVersion parses a major.minor.patch version string.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// MustParseVersion is ParseVersion that panics on error, for tests and
// fixed literals.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseConstraint parses a version requirement. An empty string is treated
// as "*", no requirement.
func ParseConstraint(raw string) (Constraint, error) {
	if raw == "" {
		raw = "*"
	}
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

// Satisfies reports whether v matches the constraint.
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Check parses both arguments and reports whether version satisfies
// constraint. It exists for callers holding raw strings.
func Check(constraint, version string) (bool, error) {
	c, err := ParseConstraint(constraint)
	if err != nil {
		return false, err
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	return Satisfies(v, c), nil
}

// Compare returns -1, 0 or 1 as a is lower than, equal to or higher than b.
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// MaxSatisfying returns the highest candidate that satisfies c.
func MaxSatisfying(c Constraint, candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !Satisfies(candidate, c) {
			continue
		}
		if !found || Compare(candidate, best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}

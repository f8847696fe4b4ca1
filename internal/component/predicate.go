package component

import (
	"fmt"
	"strings"
)

// Predicate is a boolean expression over the resolution context, used for
// conditional inclusion of a component. The variants form a small closed
// union: Equals, And, Or and Not. A nil Predicate means always included.
type Predicate interface {
	Eval(ctx ResolutionContext) bool
	String() string
}

// Equals matches when the named context field equals the given value.
type Equals struct {
	Field string
	Value string
}

// Eval implements Predicate.
func (e Equals) Eval(ctx ResolutionContext) bool {
	v, ok := ctx.Field(e.Field)
	return ok && v == e.Value
}

func (e Equals) String() string {
	return fmt.Sprintf("%s == %q", e.Field, e.Value)
}

// And matches when every term matches. An empty And matches.
type And struct {
	Terms []Predicate
}

// Eval implements Predicate.
func (a And) Eval(ctx ResolutionContext) bool {
	for _, t := range a.Terms {
		if !t.Eval(ctx) {
			return false
		}
	}
	return true
}

func (a And) String() string {
	return "(" + joinPredicates(a.Terms, " && ") + ")"
}

// Or matches when at least one term matches. An empty Or does not match.
type Or struct {
	Terms []Predicate
}

// Eval implements Predicate.
func (o Or) Eval(ctx ResolutionContext) bool {
	for _, t := range o.Terms {
		if t.Eval(ctx) {
			return true
		}
	}
	return false
}

func (o Or) String() string {
	return "(" + joinPredicates(o.Terms, " || ") + ")"
}

// Not inverts its inner predicate.
type Not struct {
	Inner Predicate
}

// Eval implements Predicate.
func (n Not) Eval(ctx ResolutionContext) bool {
	return !n.Inner.Eval(ctx)
}

func (n Not) String() string {
	return "!" + n.Inner.String()
}

func joinPredicates(terms []Predicate, sep string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

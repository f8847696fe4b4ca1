package engine

import "fmt"

// Strategy is the dependency-failure handling policy for a resolution.
type Strategy string

const (
	// StrategyStrict treats every validation problem as fatal and stops
	// execution at the first required-component failure.
	StrategyStrict Strategy = "strict"
	// StrategyLenient downgrades unresolved required dependencies and
	// compatibility mismatches to warnings and keeps executing past
	// failures.
	StrategyLenient Strategy = "lenient"
	// StrategyBestEffort behaves like lenient; it exists as a distinct
	// policy name for callers that want to signal intent.
	StrategyBestEffort Strategy = "best-effort"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStrict, StrategyLenient, StrategyBestEffort:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want strict, lenient or best-effort)", s)
	}
}

// Lenient reports whether failures should downgrade instead of abort.
func (s Strategy) Lenient() bool {
	return s == StrategyLenient || s == StrategyBestEffort
}

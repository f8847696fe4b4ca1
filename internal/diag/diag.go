// Package diag defines the diagnostic model shared by every resolution
// phase. Problems are accumulated as values, never thrown: a phase returns
// its diagnostics alongside its output and the caller decides what is fatal.
package diag

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Diagnostic describes one problem found during resolution. Keys holds the
// canonical string form of every component key the problem touches.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Keys     []string `json:"keys,omitempty"`
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	if len(d.Keys) == 0 {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", d.Severity, d.Code, d.Message, strings.Join(d.Keys, ", "))
}

// New creates a diagnostic with the given severity, code and message.
func New(severity Severity, code, message string, keys ...string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Keys: keys}
}

// Errorf creates an error-severity diagnostic with a formatted message.
func Errorf(code string, keys []string, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...), Keys: keys}
}

// Warningf creates a warning-severity diagnostic with a formatted message.
func Warningf(code string, keys []string, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Warning, Code: code, Message: fmt.Sprintf(format, args...), Keys: keys}
}

// Infof creates an info-severity diagnostic with a formatted message.
func Infof(code string, keys []string, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: Info, Code: code, Message: fmt.Sprintf(format, args...), Keys: keys}
}

// HasErrors reports whether any diagnostic in the list has Error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic in the list has Warning severity.
func HasWarnings(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Warning {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics carrying the given code.
func Filter(diags []Diagnostic, code string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

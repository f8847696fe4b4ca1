package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
)

// FormatDiagnostic renders a single diagnostic with its severity symbol,
// code and affected component keys.
//
// Example output:
//
//	❌ ResolutionMissingComponent: required component not found
//	   service:database:postgresql
func FormatDiagnostic(d diag.Diagnostic, noColor bool) string {
	var headerColor *color.Color
	var symbol string

	switch d.Severity {
	case diag.Error:
		headerColor = color.New(color.FgRed, color.Bold)
		symbol = "❌"
	case diag.Warning:
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "⚠️"
	default:
		headerColor = color.New(color.FgCyan, color.Bold)
		symbol = "ℹ️"
	}
	if noColor {
		headerColor.DisableColor()
	}

	var b strings.Builder
	headerColor.Fprintf(&b, "%s %s: %s\n", symbol, d.Code, d.Message)

	gray := color.New(color.FgHiBlack)
	if noColor {
		gray.DisableColor()
	}
	for _, key := range d.Keys {
		gray.Fprintf(&b, "   %s\n", key)
	}
	return b.String()
}

// WriteDiagnostics writes a list of diagnostics, errors first.
func WriteDiagnostics(w io.Writer, diags []diag.Diagnostic, noColor bool) {
	for _, severity := range []diag.Severity{diag.Error, diag.Warning, diag.Info} {
		for _, d := range diags {
			if d.Severity == severity {
				fmt.Fprint(w, FormatDiagnostic(d, noColor))
			}
		}
	}
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	green.Fprintf(w, "✓ %s\n", message)
}

// WriteFailure writes a failure message to the writer
func WriteFailure(w io.Writer, message string, noColor bool) {
	red := color.New(color.FgRed, color.Bold)
	if noColor {
		red.DisableColor()
	}
	red.Fprintf(w, "❌ %s\n", message)
}

// ComponentNotFoundError renders an unknown-component error with fuzzy
// suggestions drawn from the registered component keys.
func ComponentNotFoundError(key string, known []string, noColor bool) string {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if noColor {
		red.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	var b strings.Builder
	red.Fprintf(&b, "❌ COMPONENT NOT FOUND: %s\n", key)

	if suggestions := FindSimilar(key, known, nil); len(suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}

	b.WriteString("\n")
	cyan.Fprintf(&b, "   → See all components: xaheen components\n")
	return b.String()
}

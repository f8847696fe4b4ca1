package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
)

// StepPrinter prints one line per execution step transition. It is safe to
// pass StepPrinter.Report as the engine progress callback.
type StepPrinter struct {
	writer  io.Writer
	noColor bool
	mu      sync.Mutex
}

// NewStepPrinter creates a printer writing to w.
func NewStepPrinter(w io.Writer, noColor bool) *StepPrinter {
	return &StepPrinter{writer: w, noColor: noColor}
}

// Report implements the engine progress callback signature.
func (p *StepPrinter) Report(step engine.Step, status engine.StepStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch status {
	case engine.StepRunning:
		gray := color.New(color.FgHiBlack)
		if p.noColor {
			gray.DisableColor()
		}
		gray.Fprintf(p.writer, "  … %s\n", step.Key)
	case engine.StepSucceeded:
		green := color.New(color.FgGreen)
		if p.noColor {
			green.DisableColor()
		}
		green.Fprintf(p.writer, "  ✓ %s\n", step.Key)
	case engine.StepFailed:
		red := color.New(color.FgRed, color.Bold)
		if p.noColor {
			red.DisableColor()
		}
		red.Fprintf(p.writer, "  ❌ %s\n", step.Key)
	case engine.StepSkipped:
		yellow := color.New(color.FgYellow)
		if p.noColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(p.writer, "  – %s (skipped)\n", step.Key)
	}
}

// WritePlan renders an execution plan grouped by batch.
func WritePlan(w io.Writer, plan *engine.Plan, noColor bool) {
	if plan == nil || len(plan.Steps) == 0 {
		fmt.Fprintln(w, "Nothing to do.")
		return
	}

	bold := color.New(color.Bold, color.FgCyan)
	if noColor {
		bold.DisableColor()
	}

	for i, batch := range plan.Batches() {
		label := "sequential"
		if len(batch) > 1 {
			label = fmt.Sprintf("parallel ×%d", len(batch))
		}
		bold.Fprintf(w, "Batch %d (%s)\n", i+1, label)

		table := NewTable(w, []string{"COMPONENT", "PRIORITY", "REQUIRED"}, noColor).AlignRight(1)
		for _, step := range batch {
			required := "optional"
			if step.Required {
				required = "required"
			}
			table.AddRow(step.Key.String(), fmt.Sprintf("%d", step.Priority), required)
		}
		table.Render()
		fmt.Fprintln(w)
	}
}

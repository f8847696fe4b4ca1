package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/engine"
)

func step(typ, provider string, batch int, required bool) engine.Step {
	return engine.Step{
		Key:      component.Key{Kind: component.KindService, Type: typ, Provider: provider},
		Priority: component.DefaultPriority,
		Batch:    batch,
		Required: required,
	}
}

func TestStepPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewStepPrinter(&buf, true)

	s := step("auth", "better-auth", 0, true)
	p.Report(s, engine.StepRunning)
	p.Report(s, engine.StepSucceeded)
	p.Report(step("email", "resend", 0, false), engine.StepSkipped)

	out := buf.String()
	if strings.Count(out, "service:auth:better-auth") != 2 {
		t.Errorf("expected two lines for the auth step, got %q", out)
	}
	if !strings.Contains(out, "skipped") {
		t.Errorf("expected skipped marker, got %q", out)
	}
}

func TestWritePlan(t *testing.T) {
	plan := &engine.Plan{Steps: []engine.Step{
		step("database", "postgresql", 0, true),
		step("auth", "better-auth", 1, true),
	}}

	var buf bytes.Buffer
	WritePlan(&buf, plan, true)

	out := buf.String()
	if !strings.Contains(out, "Batch 1") || !strings.Contains(out, "Batch 2") {
		t.Errorf("expected two batches, got %q", out)
	}
	dbAt := strings.Index(out, "service:database:postgresql")
	authAt := strings.Index(out, "service:auth:better-auth")
	if dbAt < 0 || authAt < 0 || dbAt > authAt {
		t.Errorf("expected database batch rendered before auth, got %q", out)
	}
}

func TestWritePlanEmpty(t *testing.T) {
	var buf bytes.Buffer
	WritePlan(&buf, nil, true)
	if !strings.Contains(buf.String(), "Nothing to do") {
		t.Errorf("expected empty-plan message, got %q", buf.String())
	}
}

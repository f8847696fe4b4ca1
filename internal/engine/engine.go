// Package engine implements the composition and dependency resolution
// core: it expands a requested component selection into a dependency
// graph, validates it, orders it into an execution plan and drives the
// artifact producer over that plan while aggregating diagnostics.
//
// An Engine holds no process-wide state. It is handed an explicit store
// and producer at construction, so independent resolutions never
// interfere; two resolutions may run concurrently against the same store
// as long as the caller does not mutate the store mid-flight.
package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/store"
)

// Status summarizes a resolution outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// Result is the single artifact a resolution call leaves behind. It is
// never mutated after being returned; the graph and all intermediate state
// are discarded.
type Result struct {
	Status      Status
	Resolved    []component.Descriptor
	Diagnostics []diag.Diagnostic
	Duration    time.Duration
	Timestamp   time.Time
}

// Feasibility is the answer to CanResolve: whether a selection could be
// resolved, which components are missing, and which incompatibilities
// stand in the way.
type Feasibility struct {
	OK                bool
	Missing           []component.Key
	Incompatibilities []string
}

// ErrEmptySelection is returned when a resolution is requested with no
// components. This is the one malformed-input case that fails hard before
// any diagnostics are produced.
var ErrEmptySelection = errors.New("selection is empty")

// Engine resolves component selections against a store and drives a
// producer over the resulting plan.
type Engine struct {
	store    store.Store
	producer producer.Producer
	opts     Options
}

// New creates an engine bound to a store and a producer.
func New(st store.Store, prod producer.Producer, opts ...Option) *Engine {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{store: st, producer: prod, opts: o.defaults()}
}

// Resolve runs the full pipeline for a selection: expand, validate, plan
// and execute. Execution is skipped when validation left error-severity
// diagnostics; the engine never produces artifacts from a graph it could
// not validate.
func (e *Engine) Resolve(ctx context.Context, selection, optional []component.Key, rctx component.ResolutionContext) (Result, error) {
	if err := checkSelection(selection); err != nil {
		return Result{}, err
	}
	start := time.Now()

	g, diags := buildGraph(selection, optional, rctx, e.store, e.opts)
	diags = append(diags, validateGraph(g, rctx, e.opts)...)

	var resolved []component.Descriptor
	requiredFailure := false
	if !diag.HasErrors(diags) {
		plan, planDiags := buildPlan(g)
		diags = append(diags, planDiags...)
		if plan != nil {
			e.opts.Logger.Info("executing plan",
				zap.Int("steps", len(plan.Steps)),
				zap.String("strategy", string(e.opts.Strategy)),
				zap.Bool("dry_run", e.opts.DryRun))
			outcome := executePlan(ctx, plan, g, rctx, e.producer, e.opts)
			resolved = outcome.resolved
			requiredFailure = outcome.requiredFailure
			diags = append(diags, outcome.diags...)
		}
	} else {
		e.opts.Logger.Info("skipping execution, validation reported errors",
			zap.Int("diagnostics", len(diags)))
	}

	return e.result(resolved, diags, requiredFailure, start), nil
}

// Preview runs expansion, validation and planning but never touches the
// producer. The returned plan is nil when the graph could not be ordered.
func (e *Engine) Preview(ctx context.Context, selection, optional []component.Key, rctx component.ResolutionContext) (*Plan, Result, error) {
	if err := checkSelection(selection); err != nil {
		return nil, Result{}, err
	}
	start := time.Now()

	g, diags := buildGraph(selection, optional, rctx, e.store, e.opts)
	diags = append(diags, validateGraph(g, rctx, e.opts)...)

	plan, planDiags := buildPlan(g)
	diags = append(diags, planDiags...)

	var resolved []component.Descriptor
	if plan != nil {
		for _, key := range plan.Keys() {
			resolved = append(resolved, g.nodes[key].Descriptor)
		}
	}
	return plan, e.result(resolved, diags, false, start), nil
}

// CanResolve is the cheapest feasibility check: expansion and validation
// only, no planning and no execution.
func (e *Engine) CanResolve(ctx context.Context, selection []component.Key, rctx component.ResolutionContext) (Feasibility, error) {
	if err := checkSelection(selection); err != nil {
		return Feasibility{}, err
	}

	g, diags := buildGraph(selection, nil, rctx, e.store, e.opts)
	diags = append(diags, validateGraph(g, rctx, e.opts)...)

	f := Feasibility{Missing: g.Missing()}
	for _, d := range diags {
		if d.Severity != diag.Error {
			continue
		}
		switch d.Code {
		case diag.CodeMissingComponent:
			// Already captured through the graph's missing set.
		default:
			f.Incompatibilities = append(f.Incompatibilities, d.Message)
		}
	}
	f.OK = !diag.HasErrors(diags)
	return f, nil
}

func (e *Engine) result(resolved []component.Descriptor, diags []diag.Diagnostic, requiredFailure bool, start time.Time) Result {
	status := StatusSuccess
	switch {
	case requiredFailure || diag.HasErrors(diags):
		status = StatusFailed
	case diag.HasWarnings(diags):
		status = StatusWarning
	}
	return Result{
		Status:      status,
		Resolved:    resolved,
		Diagnostics: diags,
		Duration:    time.Since(start),
		Timestamp:   time.Now(),
	}
}

func checkSelection(selection []component.Key) error {
	if len(selection) == 0 {
		return ErrEmptySelection
	}
	for _, key := range selection {
		if key.IsZero() {
			return errors.New("selection contains an empty component key")
		}
	}
	return nil
}

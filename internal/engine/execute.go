package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
)

// StepStatus is reported to the progress callback as a step moves through
// execution.
type StepStatus string

const (
	StepRunning   StepStatus = "running"
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// Progress observes step status changes. StepRunning is reported from the
// worker goroutine just before its producer invocation starts, so callbacks
// must be safe for concurrent use; the remaining statuses are reported from
// the orchestrating goroutine at batch boundaries.
type Progress func(step Step, status StepStatus)

// execOutcome is the result of executing the whole plan.
type execOutcome struct {
	resolved        []component.Descriptor
	diags           []diag.Diagnostic
	requiredFailure bool
}

// executePlan walks the plan batch by batch. Within a batch producer
// invocations run concurrently up to the configured limit; the next batch
// does not start until every invocation of the current one has returned,
// success or failure. Under the strict strategy a required-component
// failure cancels all unstarted batches; invocations already in flight are
// awaited so the result reflects real outcomes.
func executePlan(ctx context.Context, p *Plan, g *Graph, rctx component.ResolutionContext, prod producer.Producer, opts Options) execOutcome {
	var out execOutcome
	report := func(step Step, status StepStatus) {
		if opts.Progress != nil {
			opts.Progress(step, status)
		}
	}

	stopped := false
	for _, batch := range p.Batches() {
		if ctx.Err() != nil {
			stopped = true
		}
		if stopped {
			for _, step := range batch {
				report(step, StepSkipped)
			}
			continue
		}

		limit := opts.Concurrency
		if limit > len(batch) {
			limit = len(batch)
		}
		opts.Logger.Debug("starting batch",
			zap.Int("batch", batch[0].Batch),
			zap.Int("steps", len(batch)),
			zap.Int("concurrency", limit),
			zap.Bool("dry_run", opts.DryRun))

		outputs := make([]producer.Output, len(batch))
		errs := make([]error, len(batch))

		var eg errgroup.Group
		eg.SetLimit(limit)
		for i, step := range batch {
			i, step := i, step
			node := g.nodes[step.Key]
			eg.Go(func() error {
				report(step, StepRunning)
				outputs[i], errs[i] = prod.Produce(ctx, node.Descriptor, rctx, opts.DryRun)
				return nil
			})
		}
		// Batch barrier.
		eg.Wait()

		for i, step := range batch {
			out.diags = append(out.diags, outputs[i].Diagnostics...)
			if errs[i] == nil && outputs[i].Success {
				out.resolved = append(out.resolved, g.nodes[step.Key].Descriptor)
				report(step, StepSucceeded)
				continue
			}

			report(step, StepFailed)
			keys := []string{step.Key.String()}
			if step.Required {
				out.requiredFailure = true
				if errs[i] != nil {
					out.diags = append(out.diags, diag.Errorf(diag.CodeProducerFailure, keys,
						"producing %s failed: %v", step.Key, errs[i]))
				} else {
					out.diags = append(out.diags, diag.Errorf(diag.CodeProducerFailure, keys,
						"producing %s failed", step.Key))
				}
				if opts.Strategy == StrategyStrict {
					stopped = true
				}
			} else {
				if errs[i] != nil {
					out.diags = append(out.diags, diag.Warningf(diag.CodeProducerFailure, keys,
						"producing optional component %s failed: %v", step.Key, errs[i]))
				} else {
					out.diags = append(out.diags, diag.Warningf(diag.CodeProducerFailure, keys,
						"producing optional component %s failed", step.Key))
				}
			}
		}
	}
	return out
}

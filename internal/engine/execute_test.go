package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/producer"
)

// produceFunc adapts a function to the producer interface.
type produceFunc func(context.Context, component.Descriptor, component.ResolutionContext, bool) (producer.Output, error)

func (f produceFunc) Produce(ctx context.Context, d component.Descriptor, rctx component.ResolutionContext, dryRun bool) (producer.Output, error) {
	return f(ctx, d, rctx, dryRun)
}

// planFor builds a graph and plan for the given descriptors, failing the
// test on any diagnostic.
func planFor(t *testing.T, selection []component.Key, descriptors ...component.Descriptor) (*Plan, *Graph) {
	t.Helper()
	g := buildTestGraph(t, selection, descriptors...)
	plan, diags := buildPlan(g)
	require.Empty(t, diags)
	return plan, g
}

func TestExecuteInvokesProducerInPlanOrder(t *testing.T) {
	auth := svc("auth", "better-auth")
	db := svc("database", "postgresql")
	plan, g := planFor(t, []component.Key{auth},
		desc(auth, "1.0.0", req(db)),
		desc(db, "1.0.0"),
	)

	rec := producer.NewRecorder()
	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, rec, testOpts())

	require.False(t, out.requiredFailure)
	require.Empty(t, out.diags)
	require.Len(t, out.resolved, 2)

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, db, calls[0].Key)
	assert.Equal(t, auth, calls[1].Key)
}

func TestExecuteStrictStopsUnstartedBatches(t *testing.T) {
	auth := svc("auth", "better-auth")
	db := svc("database", "postgresql")
	plan, g := planFor(t, []component.Key{auth},
		desc(auth, "1.0.0", req(db)),
		desc(db, "1.0.0"),
	)

	rec := producer.NewRecorder()
	rec.Fail(db, "migration template broken")

	var skipped []component.Key
	opts := testOpts()
	opts.Progress = func(step Step, status StepStatus) {
		if status == StepSkipped {
			skipped = append(skipped, step.Key)
		}
	}

	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, rec, opts)
	assert.True(t, out.requiredFailure)
	assert.True(t, diag.HasErrors(out.diags))
	assert.Equal(t, []component.Key{auth}, skipped)
	assert.False(t, rec.Produced(auth))
}

func TestExecuteLenientContinuesPastFailure(t *testing.T) {
	auth := svc("auth", "better-auth")
	db := svc("database", "postgresql")
	plan, g := planFor(t, []component.Key{auth},
		desc(auth, "1.0.0", req(db)),
		desc(db, "1.0.0"),
	)

	rec := producer.NewRecorder()
	rec.Fail(db, "migration template broken")

	opts := testOpts()
	opts.Strategy = StrategyLenient

	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, rec, opts)
	assert.True(t, out.requiredFailure)
	assert.True(t, rec.Produced(auth), "lenient execution should reach later batches")
}

func TestExecuteOptionalFailureIsWarning(t *testing.T) {
	auth := svc("auth", "better-auth")
	analytics := svc("analytics", "plausible")
	plan, g := planFor(t, []component.Key{auth},
		desc(auth, "1.0.0", opt(analytics)),
		desc(analytics, "1.0.0"),
	)

	rec := producer.NewRecorder()
	rec.Fail(analytics, "endpoint unreachable")

	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, rec, testOpts())
	assert.False(t, out.requiredFailure)
	failures := diag.Filter(out.diags, diag.CodeProducerFailure)
	// One scripted failure diagnostic plus the executor's own warning.
	require.NotEmpty(t, failures)
	warned := false
	for _, d := range failures {
		if d.Severity == diag.Warning {
			warned = true
		}
	}
	assert.True(t, warned)
	assert.True(t, rec.Produced(auth))
}

func TestExecuteDryRunReachesProducerWithoutSideEffects(t *testing.T) {
	auth := svc("auth", "better-auth")
	plan, g := planFor(t, []component.Key{auth}, desc(auth, "1.0.0"))

	rec := producer.NewRecorder()
	opts := testOpts()
	opts.DryRun = true

	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, rec, opts)
	require.Len(t, out.resolved, 1)
	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].DryRun)
}

func TestExecuteProgressReportsEveryStep(t *testing.T) {
	auth := svc("auth", "better-auth")
	db := svc("database", "postgresql")
	plan, g := planFor(t, []component.Key{auth},
		desc(auth, "1.0.0", req(db)),
		desc(db, "1.0.0"),
	)

	var statuses []StepStatus
	opts := testOpts()
	opts.Progress = func(step Step, status StepStatus) {
		statuses = append(statuses, status)
	}

	executePlan(context.Background(), plan, g, component.ResolutionContext{}, producer.NewRecorder(), opts)
	assert.Equal(t, []StepStatus{StepRunning, StepSucceeded, StepRunning, StepSucceeded}, statuses)
}

func TestExecuteReportsRunningOnlyFromDispatchedWorkers(t *testing.T) {
	web := svc("app", "web")
	api := svc("app", "api")
	plan, g := planFor(t, []component.Key{web, api},
		desc(web, "1.0.0"),
		desc(api, "1.0.0"),
	)
	require.Len(t, plan.Batches(), 1, "independent components share a batch")

	var mu sync.Mutex
	var events []string
	opts := testOpts()
	opts.Concurrency = 1
	opts.Progress = func(step Step, status StepStatus) {
		if status == StepRunning {
			mu.Lock()
			events = append(events, "running "+step.Key.Provider)
			mu.Unlock()
		}
	}
	prod := produceFunc(func(_ context.Context, d component.Descriptor, _ component.ResolutionContext, _ bool) (producer.Output, error) {
		mu.Lock()
		events = append(events, "produce "+d.Key.Provider)
		mu.Unlock()
		return producer.Output{Success: true}, nil
	})

	out := executePlan(context.Background(), plan, g, component.ResolutionContext{}, prod, opts)
	require.Len(t, out.resolved, 2)

	// With a single worker slot the second step must not be reported running
	// before the first invocation has finished.
	assert.Equal(t, []string{"running web", "produce web", "running api", "produce api"}, events)
}

func TestExecuteCancelledContextSkipsBatches(t *testing.T) {
	auth := svc("auth", "better-auth")
	plan, g := planFor(t, []component.Key{auth}, desc(auth, "1.0.0"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := producer.NewRecorder()
	out := executePlan(ctx, plan, g, component.ResolutionContext{}, rec, testOpts())
	assert.Empty(t, out.resolved)
	assert.Empty(t, rec.Calls())
}

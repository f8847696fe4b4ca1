// Package producer defines the artifact-producer surface the executor
// invokes once per resolved component, plus the implementations shipped
// with the engine: a template-rendering producer and a recording producer
// for tests and previews.
package producer

import (
	"context"
	"sync"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
)

// Output reports the outcome of producing one component.
type Output struct {
	Success           bool
	FilesAffected     []string
	DependenciesAdded []string
	Diagnostics       []diag.Diagnostic
}

// Producer renders a resolved component into project artifacts. When dryRun
// is set the producer must report what it would do without side effects.
type Producer interface {
	Produce(ctx context.Context, d component.Descriptor, rctx component.ResolutionContext, dryRun bool) (Output, error)
}

// Call records one Produce invocation observed by a Recorder.
type Call struct {
	Key    component.Key
	DryRun bool
}

// Recorder is a Producer that records invocations and answers from a
// scripted result table. The zero value succeeds for every component.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	results map[component.Key]Output
	errs    map[component.Key]error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		results: make(map[component.Key]Output),
		errs:    make(map[component.Key]error),
	}
}

// Fail scripts a failed output for key. The message travels as a warning
// diagnostic; it is the executor's job to classify the failure itself.
func (r *Recorder) Fail(key component.Key, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[key] = Output{
		Success:     false,
		Diagnostics: []diag.Diagnostic{diag.Warningf(diag.CodeProducerFailure, []string{key.String()}, "%s", message)},
	}
}

// Err scripts a hard error for key.
func (r *Recorder) Err(key component.Key, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[key] = err
}

// Produce implements Producer.
func (r *Recorder) Produce(_ context.Context, d component.Descriptor, _ component.ResolutionContext, dryRun bool) (Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Key: d.Key, DryRun: dryRun})
	if err, ok := r.errs[d.Key]; ok {
		return Output{}, err
	}
	if out, ok := r.results[d.Key]; ok {
		return out, nil
	}
	return Output{Success: true}, nil
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Produced reports whether key was invoked at least once.
func (r *Recorder) Produced(key component.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c.Key == key {
			return true
		}
	}
	return false
}

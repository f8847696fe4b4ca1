package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
)

// Step is one planned producer invocation. Steps are immutable once
// planned.
type Step struct {
	ID             string
	Key            component.Key
	DependsOn      []string
	Priority       int
	Batch          int
	Parallelizable bool
	Required       bool
}

// Plan is the deterministically ordered execution plan. Steps within a
// batch have no dependency relationship to each other; a step never runs
// before the entire previous batch has completed.
type Plan struct {
	Steps []Step
}

// Batches groups the plan's steps by batch number, in execution order.
func (p *Plan) Batches() [][]Step {
	if len(p.Steps) == 0 {
		return nil
	}
	last := p.Steps[len(p.Steps)-1].Batch
	out := make([][]Step, last+1)
	for _, s := range p.Steps {
		out[s.Batch] = append(out[s.Batch], s)
	}
	return out
}

// Keys returns the planned component keys in execution order.
func (p *Plan) Keys() []component.Key {
	out := make([]component.Key, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Key
	}
	return out
}

// buildPlan topologically sorts the graph with Kahn's algorithm. Ties
// among simultaneously ready components break by descending priority, then
// by first appearance in the original selection, so equal priorities never
// reorder between runs. The expansion phase already rejects cycles; the
// planner re-checks rather than trusting its caller and returns a nil plan
// if one survived.
func buildPlan(g *Graph) (*Plan, []diag.Diagnostic) {
	indegree := make(map[component.Key]int, g.Len())
	dependents := make(map[component.Key][]component.Key, g.Len())
	for _, key := range g.order {
		n := g.nodes[key]
		indegree[key] = len(n.ResolvedDeps)
		for _, dep := range n.ResolvedDeps {
			dependents[dep] = append(dependents[dep], key)
		}
	}

	var ready []component.Key
	for _, key := range g.order {
		if indegree[key] == 0 {
			ready = append(ready, key)
		}
	}

	plan := &Plan{}
	ids := make(map[component.Key]string, g.Len())
	batch := 0
	for len(ready) > 0 {
		g.sortReady(ready)

		var next []component.Key
		for _, key := range ready {
			n := g.nodes[key]
			step := Step{
				ID:             uuid.NewString(),
				Key:            key,
				Priority:       n.Descriptor.EffectivePriority(),
				Batch:          batch,
				Parallelizable: len(ready) > 1,
				Required:       n.Required,
			}
			for _, dep := range n.ResolvedDeps {
				step.DependsOn = append(step.DependsOn, ids[dep])
			}
			ids[key] = step.ID
			plan.Steps = append(plan.Steps, step)

			for _, dependent := range dependents[key] {
				indegree[dependent]--
				if indegree[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		ready = next
		batch++
	}

	if len(plan.Steps) < g.Len() {
		var remaining []string
		for _, key := range g.order {
			if _, planned := ids[key]; !planned {
				remaining = append(remaining, key.String())
			}
		}
		return nil, []diag.Diagnostic{diag.Errorf(diag.CodeCircularDependency, remaining,
			"cannot order components, a dependency cycle remains among: %s",
			strings.Join(remaining, ", "))}
	}
	return plan, nil
}

// sortReady orders a ready set by descending priority, then first
// appearance in the graph.
func (g *Graph) sortReady(ready []component.Key) {
	sort.SliceStable(ready, func(i, j int) bool {
		a, b := g.nodes[ready[i]], g.nodes[ready[j]]
		if pa, pb := a.Descriptor.EffectivePriority(), b.Descriptor.EffectivePriority(); pa != pb {
			return pa > pb
		}
		return a.Order < b.Order
	})
}

package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/store"
)

// builder carries the state of one depth-first expansion.
type builder struct {
	store store.Store
	rctx  component.ResolutionContext
	opts  Options
	log   *zap.Logger

	g     *Graph
	diags []diag.Diagnostic
	stack []component.Key

	// missingDiag remembers where each missing key's diagnostic landed so a
	// later edge with a stricter requirement can raise its severity.
	missingDiag map[component.Key]int
}

// buildGraph expands the requested selection into a full dependency graph.
// Components reached through multiple paths resolve to a single node; the
// graph is deduplicated by key, never by requesting parent.
func buildGraph(selection, optional []component.Key, rctx component.ResolutionContext, st store.Store, opts Options) (*Graph, []diag.Diagnostic) {
	b := &builder{
		store:       st,
		rctx:        rctx,
		opts:        opts,
		log:         opts.Logger,
		g:           newGraph(),
		missingDiag: make(map[component.Key]int),
	}

	for _, key := range selection {
		b.expand(key, "", true, true, 0)
	}
	for _, key := range optional {
		b.expand(key, "", false, true, 0)
	}

	// Required provenance is a property of the whole graph, not of whichever
	// path happened to reach a node first, so it is computed after expansion:
	// every node reachable from the selection over required edges only.
	b.markRequired(selection)

	// Link pass: an edge counts as resolved when its target made it into
	// the graph through any path, so linking waits for expansion to end.
	for _, key := range b.g.order {
		n := b.g.nodes[key]
		for _, req := range n.Descriptor.Requires {
			if _, ok := b.g.nodes[req.Key]; ok {
				n.ResolvedDeps = append(n.ResolvedDeps, req.Key)
			}
		}
	}

	b.log.Debug("graph expansion complete",
		zap.Int("nodes", b.g.Len()),
		zap.Int("missing", len(b.g.missing)),
		zap.Int("diagnostics", len(b.diags)))
	return b.g, b.diags
}

// expand resolves one key and recurses into its requirements. edgeRequired
// reflects the edge that brought us here and decides missing-component
// severity; required provenance is settled later by markRequired.
func (b *builder) expand(key component.Key, constraint string, edgeRequired, requested bool, depth int) {
	if n, ok := b.g.nodes[key]; ok {
		if n.state == stateVisiting {
			b.reportCycle(key)
			return
		}
		// Deduplicated: the node exists, possibly via another path.
		if requested {
			n.Requested = true
		}
		return
	}

	if depth > b.opts.MaxDepth {
		b.diags = append(b.diags, diag.Errorf(diag.CodeMaxDepthExceeded,
			[]string{key.String()},
			"dependency expansion exceeded depth %d at %s", b.opts.MaxDepth, key))
		return
	}

	if b.g.excluded[key] {
		return
	}
	if b.g.isMissing(key) {
		// Missing stays missing, but a required edge arriving after an
		// optional one raises the earlier warning to an error.
		if i, ok := b.missingDiag[key]; ok && edgeRequired && b.diags[i].Severity == diag.Warning {
			b.diags[i] = diag.Errorf(diag.CodeMissingComponent,
				[]string{key.String()},
				"component %s is required but is not available", key)
		}
		return
	}

	desc, err := b.store.Get(key, constraint)
	if err != nil {
		b.g.missing = append(b.g.missing, key)
		b.missingDiag[key] = len(b.diags)
		want := constraint
		if want == "" {
			want = "any version"
		}
		if edgeRequired {
			b.diags = append(b.diags, diag.Errorf(diag.CodeMissingComponent,
				[]string{key.String()},
				"component %s (%s) is not available: %v", key, want, err))
		} else {
			b.diags = append(b.diags, diag.Warningf(diag.CodeMissingComponent,
				[]string{key.String()},
				"optional component %s (%s) is not available and was skipped", key, want))
		}
		return
	}

	if !desc.Included(b.rctx) {
		b.g.excluded[key] = true
		b.log.Debug("component excluded by condition",
			zap.String("component", key.String()),
			zap.String("condition", desc.Condition.String()))
		return
	}

	n := &Node{
		Descriptor: desc,
		Requested:  requested,
		Order:      len(b.g.order),
		state:      stateVisiting,
	}
	b.g.nodes[key] = n
	b.g.order = append(b.g.order, key)
	b.stack = append(b.stack, key)

	for _, req := range desc.Requires {
		b.expand(req.Key, req.Constraint, req.Required, false, depth+1)
	}

	b.stack = b.stack[:len(b.stack)-1]
	n.state = stateResolved
}

// markRequired walks required edges from the selection and marks every node
// it can reach. Nodes reachable only through optional edges stay optional.
func (b *builder) markRequired(selection []component.Key) {
	seen := make(map[component.Key]bool, len(b.g.nodes))
	var walk func(key component.Key)
	walk = func(key component.Key) {
		if seen[key] {
			return
		}
		seen[key] = true
		n, ok := b.g.nodes[key]
		if !ok {
			return
		}
		n.Required = true
		for _, req := range n.Descriptor.Requires {
			if req.Required {
				walk(req.Key)
			}
		}
	}
	for _, key := range selection {
		walk(key)
	}
}

// reportCycle emits a CircularDependency diagnostic carrying the full
// cycle path and leaves the branch unexpanded.
func (b *builder) reportCycle(key component.Key) {
	start := 0
	for i, k := range b.stack {
		if k == key {
			start = i
			break
		}
	}
	cycle := append(append([]component.Key{}, b.stack[start:]...), key)

	parts := make([]string, len(cycle))
	for i, k := range cycle {
		parts[i] = k.String()
	}
	keys := component.KeyStrings(cycle[:len(cycle)-1])

	b.diags = append(b.diags, diag.Errorf(diag.CodeCircularDependency, keys,
		"dependency cycle: %s", strings.Join(parts, " -> ")))
}

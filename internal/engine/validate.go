package engine

import (
	"fmt"
	"strings"

	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/diag"
	"github.com/Xala-Technologies/Xaheen-platform-sub006/internal/semver"
)

// validateGraph runs every check against the fully built graph. Checks are
// independent and accumulate diagnostics; a failing check never stops the
// others, and the graph is not mutated.
func validateGraph(g *Graph, rctx component.ResolutionContext, opts Options) []diag.Diagnostic {
	var diags []diag.Diagnostic
	diags = append(diags, checkDescriptors(g)...)
	diags = append(diags, checkCompatibility(g, rctx, opts)...)
	diags = append(diags, checkConflicts(g)...)
	diags = append(diags, checkVersions(g)...)
	diags = append(diags, checkUnresolved(g, opts)...)
	return diags
}

// checkDescriptors re-validates descriptor shape. The bundled stores reject
// malformed descriptors at registration, but the engine accepts any Store
// implementation.
func checkDescriptors(g *Graph) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, key := range g.order {
		diags = append(diags, g.nodes[key].Descriptor.Validate()...)
	}
	return diags
}

// checkCompatibility verifies framework, platform and context restrictions
// against the resolution context. Mismatches are advisory warnings so new
// targets do not silently break existing bundles; strict mode turns them
// into errors.
func checkCompatibility(g *Graph, rctx component.ResolutionContext, opts Options) []diag.Diagnostic {
	severity := diag.Warning
	if opts.Strategy == StrategyStrict {
		severity = diag.Error
	}

	var diags []diag.Diagnostic
	for _, key := range g.order {
		compat := g.nodes[key].Descriptor.Compatibility
		if rctx.Framework != "" && !compat.AllowsFramework(rctx.Framework) {
			diags = append(diags, diag.New(severity, diag.CodeFrameworkIncompatible,
				formatIncompat(key, "framework", rctx.Framework, compat.Frameworks), key.String()))
		}
		if rctx.Platform != "" && !compat.AllowsPlatform(rctx.Platform) {
			diags = append(diags, diag.New(severity, diag.CodePlatformIncompatible,
				formatIncompat(key, "platform", rctx.Platform, compat.Platforms), key.String()))
		}
		if rctx.Context != "" && !compat.AllowsContext(rctx.Context) {
			diags = append(diags, diag.New(severity, diag.CodeContextIncompatible,
				formatIncompat(key, "context", rctx.Context, compat.Contexts), key.String()))
		}
	}
	return diags
}

func formatIncompat(key component.Key, axis, target string, supported []string) string {
	return fmt.Sprintf("component %s does not support %s %s (supports: %s)",
		key, axis, target, strings.Join(supported, ", "))
}

// checkConflicts reports mutual-exclusion violations. The declaration is
// symmetric, so each conflicting pair is reported exactly once no matter
// which side declared it.
func checkConflicts(g *Graph) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for i, a := range g.order {
		for _, b := range g.order[i+1:] {
			if declaresConflict(g.nodes[a].Descriptor, b) || declaresConflict(g.nodes[b].Descriptor, a) {
				diags = append(diags, diag.Errorf(diag.CodeComponentConflict,
					[]string{a.String(), b.String()},
					"components %s and %s cannot be used together", a, b))
			}
		}
	}
	return diags
}

func declaresConflict(d component.Descriptor, key component.Key) bool {
	for _, c := range d.Conflicts {
		if c == key {
			return true
		}
	}
	return false
}

// checkVersions compares each requirement constraint against the version
// the store actually served for the target component.
func checkVersions(g *Graph) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, key := range g.order {
		for _, req := range g.nodes[key].Descriptor.Requires {
			if req.Constraint == "" {
				continue
			}
			target, ok := g.nodes[req.Key]
			if !ok {
				continue
			}
			satisfied, err := semver.Check(req.Constraint, target.Descriptor.Version)
			if err != nil {
				diags = append(diags, diag.Errorf(diag.CodeMalformedDescriptor,
					[]string{key.String(), req.Key.String()},
					"cannot compare %s requirement %q against %s: %v",
					key, req.Constraint, target.Descriptor.ID(), err))
				continue
			}
			if !satisfied {
				diags = append(diags, diag.Errorf(diag.CodeVersionIncompatible,
					[]string{key.String(), req.Key.String()},
					"component %s requires %s %s but the resolved version is %s",
					key, req.Key, req.Constraint, target.Descriptor.Version))
			}
		}
	}
	return diags
}

// checkUnresolved reports required edges whose target never became a node,
// typically because a condition excluded it or a branch was cut. Targets
// the store could not serve were already diagnosed during expansion and
// are not re-reported.
func checkUnresolved(g *Graph, opts Options) []diag.Diagnostic {
	severity := diag.Error
	if opts.Strategy.Lenient() {
		severity = diag.Warning
	}

	var diags []diag.Diagnostic
	for _, key := range g.order {
		for _, req := range g.nodes[key].Descriptor.Requires {
			if !req.Required {
				continue
			}
			if _, ok := g.nodes[req.Key]; ok {
				continue
			}
			if g.isMissing(req.Key) {
				continue
			}
			diags = append(diags, diag.New(severity, diag.CodeUnresolvedRequiredDependency,
				fmt.Sprintf("component %s requires %s, which was not resolved", key, req.Key),
				key.String(), req.Key.String()))
		}
	}
	return diags
}

package validate

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"github.com/synapse-lang/synapsec/internal/graph"
)

// Validate runs the structural linter over every node currently stored in g
// (not merely the sub-graph reachable from its root — an orphaned node with
// a dangling reference is still a malformed graph) and returns every finding,
// sorted for stable output.
func Validate(g *graph.Graph) []Diagnostic {
	locations := collectLocations(g)
	binderSites := collectBinderSites(g)

	var diags []Diagnostic
	emit := func(code Code, id graph.NodeID, format string, args ...any) {
		diags = append(diags, Diagnostic{
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			NodeID:   id,
			Location: locations[id],
		})
	}

	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}

		checkIntegrity(g, n, emit)
		checkScope(g, n, binderSites, emit)
		checkApplication(g, n, emit)
		checkAssignment(g, n, emit)
	}

	sort.SliceStable(diags, func(i, j int) bool {
		return natural.Less(diagnosticSortKey(diags[i]), diagnosticSortKey(diags[j]))
	})
	return diags
}

func diagnosticSortKey(d Diagnostic) string {
	return fmt.Sprintf("%020d-%s", d.NodeID, d.Code)
}

// collectLocations maps a target NodeID to the SourceLocation carried by any
// Metadata node naming it. A target named by more than one Metadata node
// keeps the last one encountered in ascending NodeID order; the source
// graphs produced by the parser never do this in practice.
func collectLocations(g *graph.Graph) map[graph.NodeID]*graph.SourceLocation {
	locs := make(map[graph.NodeID]*graph.SourceLocation)
	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		meta, ok := n.Payload.(graph.MetadataPayload)
		if !ok || meta.Location == nil {
			continue
		}
		locs[meta.Target] = meta.Location
	}
	return locs
}

// collectBinderSites gathers every NodeID that a Lambda or a Match arm
// declares as its own bound-variable placeholder (Lambda.Binder,
// MatchArm.Binders). These are Variable nodes by construction (spec.md
// §3.1) with Definition left at its zero value — a declaration, not a
// free reference — so checkScope must not flag them.
func collectBinderSites(g *graph.Graph) map[graph.NodeID]bool {
	sites := make(map[graph.NodeID]bool)
	for _, id := range g.NodeIDs() {
		n, ok := g.Get(id)
		if !ok {
			continue
		}
		switch p := n.Payload.(type) {
		case graph.LambdaPayload:
			if !p.Binder.IsZero() {
				sites[p.Binder] = true
			}
		case graph.DataMatchPayload:
			for _, arm := range p.Arms {
				for _, b := range arm.Binders {
					sites[b] = true
				}
			}
		}
	}
	return sites
}

func checkIntegrity(g *graph.Graph, n *graph.Node, emit func(Code, graph.NodeID, string, ...any)) {
	for _, ref := range graph.ReferencedIDs(n) {
		if _, ok := g.Get(ref); !ok {
			emit(Integrity, n.ID, "reference to absent node %d", ref)
		}
	}
}

func checkScope(g *graph.Graph, n *graph.Node, binderSites map[graph.NodeID]bool, emit func(Code, graph.NodeID, string, ...any)) {
	v, ok := n.Payload.(graph.VariablePayload)
	if !ok {
		return
	}
	if v.Definition.IsZero() {
		if binderSites[n.ID] {
			return
		}
		emit(Scope, n.ID, "variable %q is unresolved (free)", v.Name)
		return
	}
	def, ok := g.Get(v.Definition)
	if !ok {
		// Already reported as INTEGRITY; avoid a duplicate finding.
		return
	}
	if !graph.IsBinder(def) {
		emit(Scope, n.ID, "variable %q's definition (node %d) is not a binder", v.Name, v.Definition)
	}
}

func checkApplication(g *graph.Graph, n *graph.Node, emit func(Code, graph.NodeID, string, ...any)) {
	app, ok := n.Payload.(graph.ApplicationPayload)
	if !ok {
		return
	}
	fn, ok := g.Get(app.Function)
	if !ok {
		return // already reported as INTEGRITY
	}
	switch fn.Kind() {
	case graph.KindLitInt, graph.KindLitBool, graph.KindDataCtor, graph.KindDataDef:
		emit(Application, n.ID, "applied expression (node %d, %s) is not a function", app.Function, fn.Kind())
	}
}

func checkAssignment(g *graph.Graph, n *graph.Node, emit func(Code, graph.NodeID, string, ...any)) {
	asn, ok := n.Payload.(graph.AssignPayload)
	if !ok {
		return
	}
	ref, ok := g.Get(asn.Ref)
	if !ok {
		return // already reported as INTEGRITY
	}
	switch ref.Kind() {
	case graph.KindLitInt, graph.KindLitBool, graph.KindLambda:
		emit(Assignment, n.ID, "assignment target (node %d, %s) is not a reference", asn.Ref, ref.Kind())
	}
}

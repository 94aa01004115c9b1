package registry

import (
	"sort"

	"github.com/amer8/apigen/pkg/model"
)

// color marks a node's DFS state for classic back-edge detection.
type color int

const (
	white color = iota
	gray
	black
)

// detectBackEdges runs a depth-first traversal of the schema-reference graph
// rooted at each component in document order, visiting a node's own `$ref`
// edges in the deterministic order directRefs produces. An edge to a node
// currently gray (on the DFS stack) is a back-edge — the standard
// characterization of the edge whose removal turns a cyclic graph into a
// DAG. Because we always explore in document order, the back-edge chosen
// for any given cycle is the first `$ref`, in document order, that closes
// it — matching §4.2's "removal breaks the cycle" rule without requiring a
// full Tarjan SCC pass (a cycle only needs one edge marked, and DFS
// discovers exactly that edge the moment it closes the loop).
func detectBackEdges(schemas map[string]*model.Schema, order []string) map[edge]bool {
	state := make(map[string]color, len(schemas))
	back := make(map[edge]bool)

	var visit func(name string)
	visit = func(name string) {
		if state[name] == black {
			return
		}
		if state[name] == gray {
			// Shouldn't happen: callers only invoke visit on white nodes,
			// except via the edge loop below which checks color first.
			return
		}
		state[name] = gray
		for _, to := range directRefs(schemas[name]) {
			if _, ok := schemas[to]; !ok {
				continue // dangling ref; ValidateReferences reports it separately
			}
			switch state[to] {
			case gray:
				back[edge{name, to}] = true
			case white:
				visit(to)
			}
		}
		state[name] = black
	}

	for _, name := range order {
		if state[name] == white {
			visit(name)
		}
	}
	return back
}

// directRefs returns the component names s directly `$ref`s to, in a
// deterministic order: composition children (AllOf/AnyOf/OneOf) are already
// document-ordered slices; object properties are a Go map and are visited
// in sorted-name order as the best available deterministic stand-in absent
// per-property source position (see model.Components.SchemaOrder doc).
func directRefs(s *model.Schema) []string {
	if s == nil {
		return nil
	}
	var refs []string
	add := func(child *model.Schema) {
		if child == nil {
			return
		}
		if child.Ref != "" {
			if _, name, ok := ComponentName(child.Ref); ok {
				refs = append(refs, name)
			}
			return
		}
		refs = append(refs, directRefs(child)...)
	}

	for _, name := range sortedKeys(s.Properties) {
		add(s.Properties[name])
	}
	add(s.Items)
	for _, c := range s.AllOf {
		add(c)
	}
	for _, c := range s.AnyOf {
		add(c)
	}
	for _, c := range s.OneOf {
		add(c)
	}
	return refs
}

func sortedKeys(m map[string]*model.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

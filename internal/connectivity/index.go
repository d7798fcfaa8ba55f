// Package connectivity groups metrics, perfometers and graph templates that
// share metric names into connected components, so a subset of the legacy
// corpus can be migrated together.
package connectivity

import (
	"slices"

	"github.com/StudioSol/set"

	"github.com/steveyegge/graphmig/internal/expression"
	"github.com/steveyegge/graphmig/internal/legacy"
)

// References lists the objects mentioning one metric, in corpus order.
type References struct {
	Perfometers *set.LinkedHashSetINT64
	Graphs      *set.LinkedHashSetString
}

func newReferences() *References {
	return &References{
		Perfometers: set.NewLinkedHashSetINT64(),
		Graphs:      set.NewLinkedHashSetString(),
	}
}

// PerfometerIndices returns the referencing perfometers.
func (r *References) PerfometerIndices() []int {
	var indices []int
	for idx := range r.Perfometers.Iter() {
		indices = append(indices, int(idx))
	}
	return indices
}

// GraphIDs returns the referencing graph templates.
func (r *References) GraphIDs() []string {
	var ids []string
	for id := range r.Graphs.Iter() {
		ids = append(ids, id)
	}
	return ids
}

// Index is the reverse index from metric names to the objects using them.
// It is built once per run and only read afterwards.
type Index struct {
	perfometers []expression.Checked
	graphs      map[string]expression.Checked
	used        map[string]*References
}

// Resolve collects the metric names of every perfometer and graph template
// and builds the reverse index.
func Resolve(perfometers []legacy.PerfometerSpec, graphs *legacy.Ordered[legacy.GraphTemplate]) *Index {
	ix := &Index{
		perfometers: make([]expression.Checked, len(perfometers)),
		graphs:      make(map[string]expression.Checked, graphs.Len()),
		used:        map[string]*References{},
	}

	for idx, p := range perfometers {
		checked := CollectPerfometer(p)
		ix.perfometers[idx] = checked
		for _, name := range checked.Sorted() {
			ix.references(name).Perfometers.Add(int64(idx))
		}
	}

	for id, g := range graphs.All() {
		checked := CollectGraph(g)
		ix.graphs[id] = checked
		for _, name := range checked.Sorted() {
			ix.references(name).Graphs.Add(id)
		}
	}
	return ix
}

func (ix *Index) references(name string) *References {
	refs, ok := ix.used[name]
	if !ok {
		refs = newReferences()
		ix.used[name] = refs
	}
	return refs
}

// References returns the objects mentioning name, nil if there are none.
func (ix *Index) References(name string) *References {
	return ix.used[name]
}

// Perfometer returns the collected names of the perfometer at idx.
func (ix *Index) Perfometer(idx int) expression.Checked {
	return ix.perfometers[idx]
}

// Graph returns the collected names of a graph template.
func (ix *Index) Graph(id string) expression.Checked {
	return ix.graphs[id]
}

// MetricNames returns every referenced metric name, sorted.
func (ix *Index) MetricNames() []string {
	names := make([]string, 0, len(ix.used))
	for name := range ix.used {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// neighbours returns the names sharing an object with name.
func (ix *Index) neighbours(name string) []string {
	refs, ok := ix.used[name]
	if !ok {
		return nil
	}
	var names []string
	for _, idx := range refs.PerfometerIndices() {
		names = append(names, ix.perfometers[idx].Sorted()...)
	}
	for _, id := range refs.GraphIDs() {
		names = append(names, ix.graphs[id].Sorted()...)
	}
	return names
}

// walk collects everything reachable from seed that is not yet in visited,
// marking it visited.
func (ix *Index) walk(seed string, visited map[string]bool) []string {
	if visited[seed] {
		return nil
	}
	visited[seed] = true
	reached := []string{seed}

	worklist := []string{seed}
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, next := range ix.neighbours(name) {
			if visited[next] {
				continue
			}
			visited[next] = true
			reached = append(reached, next)
			worklist = append(worklist, next)
		}
	}
	slices.Sort(reached)
	return reached
}

// FindConnected returns the sorted names reachable from seed through shared
// perfometers and graph templates, seed included. The result is the same
// for every member of the component.
func (ix *Index) FindConnected(seed string) []string {
	return ix.walk(seed, map[string]bool{})
}

// Components returns one connected component per filtered metric. A metric
// already placed in an earlier component is not repeated, and a filtered
// metric nothing references forms a component of its own. Components are
// sorted by their first name.
func (ix *Index) Components(filter []string) [][]string {
	handled := map[string]bool{}
	var components [][]string
	for _, name := range filter {
		if component := ix.walk(name, handled); len(component) > 0 {
			components = append(components, component)
		}
	}
	slices.SortFunc(components, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return components
}

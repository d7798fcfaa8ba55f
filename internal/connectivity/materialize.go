package connectivity

import (
	"github.com/StudioSol/set"

	"github.com/steveyegge/graphmig/internal/legacy"
)

// ConnectedPerfometer is a perfometer of a component.
type ConnectedPerfometer struct {
	Index     int
	Spec      legacy.PerfometerSpec
	Parseable bool
}

// ConnectedGraph is a graph template of a component.
type ConnectedGraph struct {
	ID        string
	Template  legacy.GraphTemplate
	Parseable bool
}

// ConnectedObjects is one component resolved against the corpus.
// Unresolved lists component names without a metric_info entry.
type ConnectedObjects struct {
	Names       []string
	Metrics     *legacy.Ordered[legacy.MetricInfo]
	Perfometers []ConnectedPerfometer
	Graphs      []ConnectedGraph
	Unresolved  []string
}

// Materialize resolves components into corpus data. Perfometers and graph
// templates referenced by several names of a component appear once, in the
// order they are first reached.
func (ix *Index) Materialize(components [][]string, corpus *legacy.Corpus) []ConnectedObjects {
	all := make([]ConnectedObjects, 0, len(components))
	for _, names := range components {
		objects := ConnectedObjects{
			Names:   names,
			Metrics: legacy.NewOrdered[legacy.MetricInfo](),
		}

		perfometers := set.NewLinkedHashSetINT64()
		graphs := set.NewLinkedHashSetString()
		for _, name := range names {
			if info, ok := corpus.MetricInfo.Get(name); ok {
				objects.Metrics.Set(name, info)
			} else {
				objects.Unresolved = append(objects.Unresolved, name)
			}

			refs := ix.References(name)
			if refs == nil {
				continue
			}
			for _, idx := range refs.PerfometerIndices() {
				perfometers.Add(int64(idx))
			}
			for _, id := range refs.GraphIDs() {
				graphs.Add(id)
			}
		}

		for idx := range perfometers.Iter() {
			objects.Perfometers = append(objects.Perfometers, ConnectedPerfometer{
				Index:     int(idx),
				Spec:      corpus.Perfometers[idx],
				Parseable: ix.Perfometer(int(idx)).Parseable,
			})
		}
		for id := range graphs.Iter() {
			template, _ := corpus.Graphs.Get(id)
			objects.Graphs = append(objects.Graphs, ConnectedGraph{
				ID:        id,
				Template:  template,
				Parseable: ix.Graph(id).Parseable,
			})
		}
		all = append(all, objects)
	}
	return all
}

// Merge flattens components into the input of one migration run, keeping
// component order.
func Merge(all []ConnectedObjects) (metrics *legacy.Ordered[legacy.MetricInfo], perfometers []legacy.PerfometerSpec, graphs *legacy.Ordered[legacy.GraphTemplate], unresolved []string) {
	metrics = legacy.NewOrdered[legacy.MetricInfo]()
	graphs = legacy.NewOrdered[legacy.GraphTemplate]()
	for _, c := range all {
		metrics.Update(c.Metrics)
		for _, p := range c.Perfometers {
			perfometers = append(perfometers, p.Spec)
		}
		for _, g := range c.Graphs {
			graphs.Set(g.ID, g.Template)
		}
		unresolved = append(unresolved, c.Unresolved...)
	}
	return metrics, perfometers, graphs, unresolved
}

package migrate

import (
	"github.com/samber/lo"

	"github.com/steveyegge/graphmig/internal/expression"
	"github.com/steveyegge/graphmig/internal/schema"
)

func graphMetricNames(g schema.Graph) []string {
	var names []string
	for _, q := range g.CompoundLines {
		names = append(names, expression.MetricNames(q)...)
	}
	for _, q := range g.SimpleLines {
		names = append(names, expression.MetricNames(q)...)
	}
	return lo.Uniq(names)
}

// Sanitize recolors the metrics of bidirectional graphs that show exactly
// one metric per half: blue below, green above. The input is not modified.
func Sanitize(objects *Objects) *Objects {
	recolor := map[string]schema.Color{}
	for _, obj := range objects.Graphs {
		g, ok := obj.(schema.BidirectionalGraph)
		if !ok {
			continue
		}
		lower, upper := graphMetricNames(g.Lower), graphMetricNames(g.Upper)
		if len(lower) == 1 && len(upper) == 1 {
			recolor[lower[0]] = schema.ColorBlue
			recolor[upper[0]] = schema.ColorGreen
		}
	}

	sanitized := *objects
	sanitized.Metrics = lo.Map(objects.Metrics, func(m schema.Metric, _ int) schema.Metric {
		if c, ok := recolor[m.Name]; ok {
			m.Color = c
		}
		return m
	})
	return &sanitized
}

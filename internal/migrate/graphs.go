package migrate

import (
	"github.com/steveyegge/graphmig/internal/expression"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/schema"
)

// Line styles of legacy graph metrics. A leading "-" mirrors the line
// below the x axis.
const (
	styleLine       = "line"
	styleArea       = "area"
	styleStack      = "stack"
	styleLowerLine  = "-line"
	styleLowerArea  = "-area"
	styleLowerStack = "-stack"
)

type graphLines struct {
	lowerCompound []schema.Quantity
	lowerSimple   []schema.Quantity
	upperCompound []schema.Quantity
	upperSimple   []schema.Quantity
}

func (m *Migrator) graphs(templates *legacy.Ordered[legacy.GraphTemplate]) ([]schema.Object, error) {
	var migrated []schema.Object
	for id, template := range templates.All() {
		err := m.try(schema.NamespaceGraphs, id, func() error {
			g, err := m.graph(id, template)
			if err != nil {
				return err
			}
			if g != nil {
				migrated = append(migrated, g)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return migrated, nil
}

// graph migrates one template. A template with lines above and below the x
// axis becomes a BidirectionalGraph. The result is nil if the template has
// no lines at all.
func (m *Migrator) graph(id string, template legacy.GraphTemplate) (schema.Object, error) {
	if !template.HasMetrics && template.Metrics == nil {
		return nil, failure.Schemaf("graph", "metrics", "missing")
	}

	scalars := make([]schema.Quantity, 0, len(template.Scalars))
	for _, s := range template.Scalars {
		q, err := expression.Parse(m.Units, s.Expression, s.Title)
		if err != nil {
			return nil, err
		}
		scalars = append(scalars, q)
	}
	lowerScalars, upperScalars := splitScalars(scalars)

	var minimalRange *schema.MinimalRange
	if template.Range != nil {
		lower, err := m.bound(template.Range.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := m.bound(template.Range.Upper)
		if err != nil {
			return nil, err
		}
		minimalRange = &schema.MinimalRange{Lower: lower, Upper: upper}
	}

	lines, err := m.graphLines(template.Metrics)
	if err != nil {
		return nil, err
	}
	if lines.empty() {
		m.Log.Debug().Str("graph", id).Msg("Graph template without lines")
		return nil, nil
	}

	// The title is only required once there is something to draw.
	if template.Title == nil {
		return nil, failure.Schemaf("graph", "title", "missing")
	}
	title := schema.Title(*template.Title)

	newGraph := func(compound, simple []schema.Quantity) *schema.Graph {
		return &schema.Graph{
			Name:          id,
			Title:         title,
			MinimalRange:  minimalRange,
			CompoundLines: compound,
			SimpleLines:   simple,
			Optional:      template.OptionalMetrics,
			Conflicting:   template.ConflictingMetrics,
		}
	}

	var lower, upper *schema.Graph
	if len(lines.lowerCompound) > 0 || len(lines.lowerSimple) > 0 {
		simple := append(append([]schema.Quantity(nil), lines.lowerSimple...), lowerScalars...)
		lower = newGraph(lines.lowerCompound, simple)
	}
	if len(lines.upperCompound) > 0 || len(lines.upperSimple) > 0 {
		simple := append([]schema.Quantity(nil), lines.upperSimple...)
		if len(upperScalars) > 0 {
			simple = append(simple, upperScalars...)
		} else {
			if len(scalars) > 0 {
				m.Log.Info().Str("graph", id).Int("scalars", len(scalars)).Msg("Check scalars manually")
			}
			simple = append(simple, scalars...)
		}
		upper = newGraph(lines.upperCompound, simple)
	}

	switch {
	case lower != nil && upper != nil:
		return schema.BidirectionalGraph{
			Name:  lower.Name + "_" + upper.Name,
			Title: title,
			Lower: *lower,
			Upper: *upper,
		}, nil
	case lower != nil:
		return *lower, nil
	}
	return *upper, nil
}

func (l graphLines) empty() bool {
	return len(l.lowerCompound)+len(l.lowerSimple)+len(l.upperCompound)+len(l.upperSimple) == 0
}

func (m *Migrator) graphLines(metrics []legacy.GraphMetric) (graphLines, error) {
	var lines graphLines
	for _, gm := range metrics {
		q, err := expression.Parse(m.Units, gm.Expression, gm.Title)
		if err != nil {
			return lines, err
		}
		switch gm.LineStyle {
		case styleLowerLine:
			lines.lowerSimple = append(lines.lowerSimple, q)
		case styleLowerArea, styleLowerStack:
			lines.lowerCompound = append(lines.lowerCompound, q)
		case styleLine:
			lines.upperSimple = append(lines.upperSimple, q)
		case styleArea, styleStack:
			lines.upperCompound = append(lines.upperCompound, q)
		default:
			return lines, failure.Schemaf("graph", "line_style", "unknown line style %q of %q", gm.LineStyle, gm.Expression)
		}
	}
	return lines, nil
}

// splitScalars sends scalars negated by a factor of -1 to the lower graph,
// without the factor. Everything else belongs to the upper graph.
func splitScalars(scalars []schema.Quantity) (lower, upper []schema.Quantity) {
	for _, s := range scalars {
		if !isNegated(s) {
			upper = append(upper, s)
			continue
		}
		for _, f := range s.Factors() {
			if f.Kind() != schema.KindConstant {
				lower = append(lower, f)
			}
		}
	}
	return lower, upper
}

func isNegated(q schema.Quantity) bool {
	factors := q.Factors()
	if q.Kind() != schema.KindProduct || len(factors) != 2 {
		return false
	}
	for _, f := range factors {
		if f.Kind() == schema.KindConstant && f.Value() == -1 {
			return true
		}
	}
	return false
}

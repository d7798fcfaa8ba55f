package connectivity

import (
	"github.com/steveyegge/graphmig/internal/expression"
	"github.com/steveyegge/graphmig/internal/legacy"
)

// CollectPerfometer gathers the metric names of every expression of a
// perfometer. A condition always marks the perfometer unparseable.
func CollectPerfometer(p legacy.PerfometerSpec) expression.Checked {
	checked := expression.NewChecked()
	switch p.Type {
	case legacy.PerfometerLinear:
		for _, segment := range p.Segments {
			checked.Update(expression.CollectMetricNames(segment))
		}
		if p.Total != nil {
			if total, ok := p.Total.Expression(); ok && total != "" {
				checked.Update(expression.CollectMetricNames(total))
			}
		}
		if p.Condition != nil && *p.Condition != "" {
			condition := expression.CollectMetricNames(*p.Condition)
			condition.Parseable = false
			checked.Update(condition)
		}
		if len(p.Label) > 0 && p.Label[0] != "" {
			checked.Update(expression.CollectMetricNames(p.Label[0]))
		}
	case legacy.PerfometerLogarithmic:
		checked.Update(expression.CollectMetricNames(p.Metric))
	case legacy.PerfometerDual, legacy.PerfometerStacked:
		for _, child := range p.Perfometers {
			checked.Update(CollectPerfometer(child))
		}
	}
	return checked
}

// CollectGraph gathers the metric names of a graph template: scalars,
// metric lines, range bounds given as expressions and the optional and
// conflicting metric lists.
func CollectGraph(g legacy.GraphTemplate) expression.Checked {
	checked := expression.NewChecked()
	for _, scalar := range g.Scalars {
		checked.Update(expression.CollectMetricNames(scalar.Expression))
	}
	for _, m := range g.Metrics {
		checked.Update(expression.CollectMetricNames(m.Expression))
	}
	if g.Range != nil {
		for _, bound := range []legacy.Value{g.Range.Lower, g.Range.Upper} {
			if e, ok := bound.Expression(); ok {
				checked.Update(expression.CollectMetricNames(e))
			}
		}
	}
	if len(g.OptionalMetrics) > 0 {
		checked.Update(expression.CheckedNames(g.OptionalMetrics, true))
	}
	if len(g.ConflictingMetrics) > 0 {
		checked.Update(expression.CheckedNames(g.ConflictingMetrics, true))
	}
	return checked
}

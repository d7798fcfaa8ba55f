package migrate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/steveyegge/graphmig/internal/expression"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/schema"
)

func (m *Migrator) perfometers(specs []legacy.PerfometerSpec) ([]schema.Object, error) {
	var migrated []schema.Object
	for idx, spec := range specs {
		err := m.try(schema.NamespacePerfometers, strconv.Itoa(idx), func() error {
			p, err := m.perfometer(spec)
			if err != nil {
				return err
			}
			migrated = append(migrated, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return migrated, nil
}

func (m *Migrator) perfometer(spec legacy.PerfometerSpec) (schema.Object, error) {
	switch spec.Type {
	case legacy.PerfometerLinear:
		return m.linear(spec)
	case legacy.PerfometerLogarithmic:
		return m.logarithmic(spec)
	case legacy.PerfometerDual:
		left, right, err := m.pair(spec)
		if err != nil {
			return nil, err
		}
		return schema.BidirectionalPerfometer{
			Name:  left.Name + "_" + right.Name,
			Left:  left,
			Right: right,
		}, nil
	case legacy.PerfometerStacked:
		// Legacy stacked perfometers list the upper one first.
		upper, lower, err := m.pair(spec)
		if err != nil {
			return nil, err
		}
		return schema.StackedPerfometer{
			Name:  lower.Name + "_" + upper.Name,
			Lower: lower,
			Upper: upper,
		}, nil
	}
	return nil, failure.Schemaf("perfometer", "type", "unknown perfometer type %q", spec.Type)
}

// pair migrates the two children of a dual or stacked perfometer.
func (m *Migrator) pair(spec legacy.PerfometerSpec) (first, second schema.Perfometer, err error) {
	if len(spec.Perfometers) != 2 {
		return first, second, failure.Schemaf("perfometer", "perfometers", "%s perfometer needs two perfometers, got %d", spec.Type, len(spec.Perfometers))
	}
	if first, err = m.child(spec.Perfometers[0]); err != nil {
		return first, second, err
	}
	second, err = m.child(spec.Perfometers[1])
	return first, second, err
}

func (m *Migrator) child(spec legacy.PerfometerSpec) (schema.Perfometer, error) {
	switch spec.Type {
	case legacy.PerfometerLinear:
		return m.linear(spec)
	case legacy.PerfometerLogarithmic:
		return m.logarithmic(spec)
	}
	return schema.Perfometer{}, failure.Schemaf("perfometer", "type", "nested perfometer must be linear or logarithmic, got %q", spec.Type)
}

func (m *Migrator) linear(spec legacy.PerfometerSpec) (schema.Perfometer, error) {
	if spec.Condition != nil {
		// Perfometers with conditions exclude each other and need a manual
		// migration.
		return schema.Perfometer{}, failure.Schemaf("perfometer", "condition", "perfometers with a condition are not migrated")
	}
	if len(spec.Label) > 0 {
		m.Log.Info().Strs("segments", spec.Segments).Msg("Perfometer field 'label' will not be migrated")
	}
	if spec.Total == nil {
		return schema.Perfometer{}, failure.Schemaf("perfometer", "total", "missing")
	}

	segments, err := m.expressions(spec.Segments)
	if err != nil {
		return schema.Perfometer{}, err
	}
	total, err := m.bound(*spec.Total)
	if err != nil {
		return schema.Perfometer{}, err
	}
	return schema.Perfometer{
		Name: perfometerName(segments),
		FocusRange: schema.FocusRange{
			Lower: schema.FocusBound{Kind: schema.Closed, Value: schema.IntBound(0)},
			Upper: schema.FocusBound{Kind: schema.Closed, Value: total},
		},
		Segments: segments,
	}, nil
}

func (m *Migrator) logarithmic(spec legacy.PerfometerSpec) (schema.Perfometer, error) {
	if spec.HalfValue == nil {
		return schema.Perfometer{}, failure.Schemaf("perfometer", "half_value", "missing")
	}
	half, _, ok := spec.HalfValue.Number()
	if !ok {
		return schema.Perfometer{}, failure.Schemaf("perfometer", "half_value", "expected a number, got %q", spec.HalfValue.String())
	}
	border, err := Border85(half)
	if err != nil {
		return schema.Perfometer{}, failure.Schema("perfometer", "half_value", err)
	}

	segments, err := m.expressions([]string{spec.Metric})
	if err != nil {
		return schema.Perfometer{}, err
	}
	return schema.Perfometer{
		Name: perfometerName(segments),
		FocusRange: schema.FocusRange{
			Lower: schema.FocusBound{Kind: schema.Closed, Value: schema.IntBound(0)},
			Upper: schema.FocusBound{Kind: schema.Open, Value: schema.IntBound(border)},
		},
		Segments: segments,
	}, nil
}

// Border85 converts the half value of a logarithmic perfometer into the
// value shown at 85 percent, rounded up to its leading digit.
func Border85(halfValue float64) (int64, error) {
	border := int64(85.0 * halfValue / 50)
	if border <= 0 {
		return 0, fmt.Errorf("half value %v is too small", halfValue)
	}
	power := int64(1)
	for power <= border/10 {
		power *= 10
	}
	return (border + power - 1) / power * power, nil
}

func (m *Migrator) expressions(raw []string) ([]schema.Quantity, error) {
	quantities := make([]schema.Quantity, 0, len(raw))
	for _, e := range raw {
		q, err := expression.Parse(m.Units, e, "")
		if err != nil {
			return nil, err
		}
		quantities = append(quantities, q)
	}
	return quantities, nil
}

// bound keeps numbers literal and parses expressions.
func (m *Migrator) bound(v legacy.Value) (schema.Bound, error) {
	if n, integer, ok := v.Number(); ok {
		if integer {
			return schema.IntBound(int64(n)), nil
		}
		return schema.FloatBound(n), nil
	}
	e, _ := v.Expression()
	q, err := expression.Parse(m.Units, e, "")
	if err != nil {
		return schema.Bound{}, err
	}
	return schema.QuantityBound(q), nil
}

// perfometerName joins the metric names of all segments.
func perfometerName(segments []schema.Quantity) string {
	return strings.Join(lo.FlatMap(segments, func(q schema.Quantity, _ int) []string {
		return expression.MetricNames(q)
	}), "_")
}

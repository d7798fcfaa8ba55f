package expression

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/steveyegge/graphmig/internal/schema"
)

// Checked is the result of the tolerant name collection pass. Parseable is
// false when the expression uses tokens Parse would reject.
type Checked struct {
	Names     map[string]struct{}
	Parseable bool
}

// NewChecked returns an empty, parseable result.
func NewChecked() Checked {
	return Checked{Names: map[string]struct{}{}, Parseable: true}
}

// CheckedNames wraps a plain list of metric names.
func CheckedNames(names []string, parseable bool) Checked {
	c := NewChecked()
	for _, n := range names {
		c.Names[n] = struct{}{}
	}
	c.Parseable = parseable
	return c
}

// Update merges other into c. Once unparseable, c stays unparseable.
func (c *Checked) Update(other Checked) {
	if c.Names == nil {
		c.Names = map[string]struct{}{}
	}
	for n := range other.Names {
		c.Names[n] = struct{}{}
	}
	if !other.Parseable {
		c.Parseable = false
	}
}

// Sorted returns the collected names in lexical order.
func (c Checked) Sorted() []string {
	names := lo.Keys(c.Names)
	slices.Sort(names)
	return names
}

// CollectMetricNames extracts the metric names an expression touches
// without building a tree. It never fails: unsupported tokens only clear
// Parseable.
func CollectMetricNames(expression string) Checked {
	body, _, _ := splitAnnotations(expression)

	c := NewChecked()
	for _, token := range strings.Split(body, ",") {
		switch {
		case isOperator(token):
			continue
		case isUnsupported(token):
			c.Parseable = false
			continue
		}
		name := metricNameOfToken(token)
		if name == "" {
			continue
		}
		if _, ok := parseNumber(name); ok {
			continue
		}
		c.Names[name] = struct{}{}
	}
	return c
}

func metricNameOfToken(token string) string {
	token = dropConsolidation(token)
	token = strings.TrimSuffix(token, percentSuffix)
	name, _, _ := strings.Cut(token, ":")
	return name
}

// MetricNames returns the metric names of a tree depth first, left to
// right, with repetitions. Constants contribute nothing; scalar references
// contribute the metric they refer to.
func MetricNames(q schema.Quantity) []string {
	var names []string
	var walk func(schema.Quantity)
	walk = func(q schema.Quantity) {
		switch {
		case q.Kind() == schema.KindMetric, q.Kind().IsScalar():
			names = append(names, q.MetricName())
		case q.Kind() == schema.KindConstant:
		default:
			for _, child := range q.Children() {
				walk(child)
			}
		}
	}
	walk(q)
	return names
}

// Package legacy reads the legacy graphing corpus: metric infos, check
// metric translations, perfometers and graph templates, pre-converted to
// YAML or JSON data files.
package legacy

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Value is a scalar that is either a number or an expression string.
type Value struct {
	str     string
	num     float64
	numeric bool
	integer bool
}

// StringValue wraps an expression.
func StringValue(s string) Value { return Value{str: s} }

// IntValue wraps an integral number.
func IntValue(n int64) Value { return Value{num: float64(n), numeric: true, integer: true} }

// FloatValue wraps a floating point number.
func FloatValue(f float64) Value { return Value{num: f, numeric: true} }

// Number returns the numeric value and whether it was written as an integer.
func (v Value) Number() (n float64, integer bool, ok bool) {
	return v.num, v.integer, v.numeric
}

// Expression returns the string value.
func (v Value) Expression() (string, bool) {
	return v.str, !v.numeric
}

func (v Value) String() string {
	if !v.numeric {
		return v.str
	}
	if v.integer {
		return strconv.FormatInt(int64(v.num), 10)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// UnmarshalYAML resolves numbers by their YAML tag; everything else is kept
// as an expression string.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number or an expression, got %s", node.Line, kindName(node.Kind))
	}
	switch node.ShortTag() {
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = IntValue(n)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = FloatValue(f)
	default:
		*v = StringValue(node.Value)
	}
	return nil
}

// MetricInfo is a legacy metric_info entry.
type MetricInfo struct {
	Title string `yaml:"title"`
	Unit  string `yaml:"unit"`
	Color string `yaml:"color"`
}

// CheckMetricEntry renames and/or scales one legacy metric of a check
// command. Nil fields are absent in the source.
type CheckMetricEntry struct {
	Name  *string `yaml:"name"`
	Scale *Value  `yaml:"scale"`
}

// Perfometer types.
const (
	PerfometerLinear      = "linear"
	PerfometerLogarithmic = "logarithmic"
	PerfometerDual        = "dual"
	PerfometerStacked     = "stacked"
)

// PerfometerSpec is a legacy perfometer_info entry. Which fields are set
// depends on Type.
type PerfometerSpec struct {
	Type string `yaml:"type"`

	// linear
	Segments  []string `yaml:"segments"`
	Total     *Value   `yaml:"total"`
	Condition *string  `yaml:"condition"`
	Label     []string `yaml:"label"`

	// logarithmic
	Metric    string `yaml:"metric"`
	HalfValue *Value `yaml:"half_value"`

	// dual and stacked
	Perfometers []PerfometerSpec `yaml:"perfometers"`
}

// GraphMetric is one line of a graph template: an expression, its line
// style and an optional title. In data files it is either a
// [expression, line_style, title?] list or a mapping.
type GraphMetric struct {
	Expression string
	LineStyle  string
	Title      string
}

func (m *GraphMetric) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var parts []string
		if err := node.Decode(&parts); err != nil {
			return err
		}
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("line %d: graph metric needs 2 or 3 items, got %d", node.Line, len(parts))
		}
		m.Expression, m.LineStyle = parts[0], parts[1]
		if len(parts) == 3 {
			m.Title = parts[2]
		}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Expression string `yaml:"expression"`
			LineStyle  string `yaml:"line_style"`
			Title      string `yaml:"title"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*m = GraphMetric(raw)
		return nil
	}
	return fmt.Errorf("line %d: unexpected graph metric %s", node.Line, kindName(node.Kind))
}

// Scalar is a horizontal reference line: a bare expression or an
// [expression, title] pair.
type Scalar struct {
	Expression string
	Title      string
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Expression = node.Value
		return nil
	case yaml.SequenceNode:
		var parts []string
		if err := node.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 2 {
			return fmt.Errorf("line %d: scalar needs an expression and a title, got %d items", node.Line, len(parts))
		}
		s.Expression, s.Title = parts[0], parts[1]
		return nil
	}
	return fmt.Errorf("line %d: unexpected scalar %s", node.Line, kindName(node.Kind))
}

// Range is the minimal vertical range of a graph.
type Range struct {
	Lower Value
	Upper Value
}

func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var bounds []Value
	if err := node.Decode(&bounds); err != nil {
		return err
	}
	if len(bounds) != 2 {
		return fmt.Errorf("line %d: range needs two bounds, got %d", node.Line, len(bounds))
	}
	r.Lower, r.Upper = bounds[0], bounds[1]
	return nil
}

// GraphTemplate is a legacy graph_info entry. Title and Metrics are nil when
// the source does not define them.
type GraphTemplate struct {
	Title              *string       `yaml:"title"`
	Metrics            []GraphMetric `yaml:"metrics"`
	HasMetrics         bool          `yaml:"-"`
	Scalars            []Scalar      `yaml:"scalars"`
	Range              *Range        `yaml:"range"`
	OptionalMetrics    []string      `yaml:"optional_metrics"`
	ConflictingMetrics []string      `yaml:"conflicting_metrics"`
}

func (g *GraphTemplate) UnmarshalYAML(node *yaml.Node) error {
	type plain GraphTemplate
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*g = GraphTemplate(p)
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "metrics" {
				g.HasMetrics = true
			}
		}
	}
	return nil
}

// File is the content of one data file. Missing sections stay nil.
type File struct {
	MetricInfo     *Ordered[MetricInfo]                  `yaml:"metric_info"`
	CheckMetrics   *Ordered[*Ordered[CheckMetricEntry]] `yaml:"check_metrics"`
	PerfometerInfo []PerfometerSpec                      `yaml:"perfometer_info"`
	GraphInfo      *Ordered[GraphTemplate]               `yaml:"graph_info"`
}

// Corpus is the merged content of all loaded files.
type Corpus struct {
	MetricInfo   *Ordered[MetricInfo]
	CheckMetrics *Ordered[*Ordered[CheckMetricEntry]]
	Perfometers  []PerfometerSpec
	Graphs       *Ordered[GraphTemplate]
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{
		MetricInfo:   NewOrdered[MetricInfo](),
		CheckMetrics: NewOrdered[*Ordered[CheckMetricEntry]](),
		Graphs:       NewOrdered[GraphTemplate](),
	}
}

// Merge adds the content of f. Later files win on duplicate keys.
func (c *Corpus) Merge(f *File, withTranslations bool) {
	c.MetricInfo.Update(f.MetricInfo)
	if withTranslations {
		c.CheckMetrics.Update(f.CheckMetrics)
	}
	c.Perfometers = append(c.Perfometers, f.PerfometerInfo...)
	c.Graphs.Update(f.GraphInfo)
}

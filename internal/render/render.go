// Package render prints migrated objects as constructor calls of the new
// graphing API, one assignment per object.
package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/steveyegge/graphmig/internal/schema"
	"github.com/steveyegge/graphmig/internal/units"
)

// Renderer prints objects. Units are printed by their registered variable
// name, so the registry must be the one the objects were migrated with.
type Renderer struct {
	units *units.Parser
}

// New returns a renderer naming units through registry.
func New(registry *units.Parser) *Renderer {
	return &Renderer{units: registry}
}

func call(namespace, class string, args ...string) string {
	trailing := ""
	if len(args) > 1 {
		trailing = ","
	}
	return namespace + "." + class + "(" + strings.Join(args, ", ") + trailing + ")"
}

func list(items []string) string {
	trailing := ""
	if len(items) > 1 {
		trailing = ","
	}
	return "[" + strings.Join(items, ", ") + trailing + "]"
}

func dict(keys, values []string) string {
	entries := make([]string, len(keys))
	for i := range keys {
		entries[i] = keys[i] + ": " + values[i]
	}
	trailing := ""
	if len(entries) > 1 {
		trailing = ","
	}
	return "{" + strings.Join(entries, ", ") + trailing + "}"
}

func kwarg(key, value string) string {
	return key + "=" + value
}

func title(t schema.Title) string {
	return `Title("` + string(t) + `")`
}

func color(c schema.Color) string {
	return "metrics.Color." + c.Name()
}

func notation(n schema.Notation) string {
	if n.Kind == schema.NotationTime {
		return "metrics." + n.Kind.String() + "()"
	}
	return "metrics." + n.Kind.String() + "(" + pyString(n.Symbol) + ")"
}

// Unit renders a unit definition. The default precision is left out.
func Unit(u schema.Unit) string {
	if u.Precision == schema.DefaultPrecision {
		return "metrics.Unit(" + notation(u.Notation) + ")"
	}
	return fmt.Sprintf("metrics.Unit(%s, metrics.%s(%d))", notation(u.Notation), u.Precision.Kind, u.Precision.Digits)
}

// UnitLine renders the variable a unit is emitted under.
func UnitLine(pu units.ParsedUnit) string {
	return pu.Name + " = " + Unit(pu.Unit)
}

func (r *Renderer) unitName(u schema.Unit) string {
	return r.units.FindName(u)
}

// Quantity renders an expression tree.
func (r *Renderer) Quantity(q schema.Quantity) string {
	switch q.Kind() {
	case schema.KindMetric:
		return pyString(q.MetricName())
	case schema.KindConstant:
		return call("metrics", "Constant",
			title(q.Title()),
			r.unitName(q.Unit()),
			color(q.Color()),
			pyFloat(q.Value()),
		)
	case schema.KindWarningOf, schema.KindCriticalOf:
		return call("metrics", q.Kind().String(), pyString(q.MetricName()))
	case schema.KindMinimumOf, schema.KindMaximumOf:
		return call("metrics", q.Kind().String(), pyString(q.MetricName()), color(q.Color()))
	case schema.KindSum:
		return call("metrics", "Sum",
			title(q.Title()),
			color(q.Color()),
			list(r.quantities(q.Summands())),
		)
	case schema.KindProduct:
		return call("metrics", "Product",
			title(q.Title()),
			r.unitName(q.Unit()),
			color(q.Color()),
			list(r.quantities(q.Factors())),
		)
	case schema.KindDifference:
		return call("metrics", "Difference",
			title(q.Title()),
			color(q.Color()),
			kwarg("minuend", r.Quantity(q.Minuend())),
			kwarg("subtrahend", r.Quantity(q.Subtrahend())),
		)
	case schema.KindFraction:
		return call("metrics", "Fraction",
			title(q.Title()),
			r.unitName(q.Unit()),
			color(q.Color()),
			kwarg("dividend", r.Quantity(q.Dividend())),
			kwarg("divisor", r.Quantity(q.Divisor())),
		)
	}
	panic(fmt.Sprintf("render: unknown quantity kind %v", q.Kind()))
}

func (r *Renderer) quantities(qs []schema.Quantity) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = r.Quantity(q)
	}
	return out
}

func (r *Renderer) bound(b schema.Bound) string {
	if q, ok := b.Quantity(); ok {
		return r.Quantity(q)
	}
	v, integer, _ := b.Literal()
	if integer {
		return pyInt(int64(v))
	}
	return pyFloat(v)
}

func names(ns []string) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = pyString(n)
	}
	return out
}

func (r *Renderer) metric(m schema.Metric) string {
	return call("metrics", "Metric",
		kwarg("name", pyString(m.Name)),
		kwarg("title", title(m.Title)),
		kwarg("unit", r.unitName(m.Unit)),
		kwarg("color", color(m.Color)),
	)
}

func (r *Renderer) translationRule(rule schema.TranslationRule) string {
	switch rule.Kind {
	case schema.RenameTo:
		return call("translations", "RenameTo", pyString(rule.MetricName))
	case schema.ScaleBy:
		return call("translations", "ScaleBy", r.bound(rule.Factor))
	default:
		return call("translations", "RenameToAndScaleBy", pyString(rule.MetricName), r.bound(rule.Factor))
	}
}

func (r *Renderer) translation(t schema.Translation) string {
	commands := make([]string, len(t.CheckCommands))
	for i, c := range t.CheckCommands {
		commands[i] = call("translations", c.Kind.String(), pyString(c.Name))
	}
	keys := make([]string, len(t.Translations))
	rules := make([]string, len(t.Translations))
	for i, mt := range t.Translations {
		keys[i] = pyString(mt.LegacyName)
		rules[i] = r.translationRule(mt.Rule)
	}
	return call("translations", "Translation",
		kwarg("name", pyString(t.Name)),
		kwarg("check_commands", list(commands)),
		kwarg("translations", dict(keys, rules)),
	)
}

func (r *Renderer) focusRange(fr schema.FocusRange) string {
	return call("perfometers", "FocusRange",
		call("perfometers", fr.Lower.Kind.String(), r.bound(fr.Lower.Value)),
		call("perfometers", fr.Upper.Kind.String(), r.bound(fr.Upper.Value)),
	)
}

func (r *Renderer) perfometer(p schema.Perfometer) string {
	return call("perfometers", "Perfometer",
		kwarg("name", pyString(p.Name)),
		kwarg("focus_range", r.focusRange(p.FocusRange)),
		kwarg("segments", list(r.quantities(p.Segments))),
	)
}

func (r *Renderer) graph(g schema.Graph) string {
	args := []string{
		kwarg("name", pyString(g.Name)),
		kwarg("title", title(g.Title)),
	}
	if g.MinimalRange != nil {
		args = append(args, kwarg("minimal_range", call("graphs", "MinimalRange",
			r.bound(g.MinimalRange.Lower),
			r.bound(g.MinimalRange.Upper),
		)))
	}
	if len(g.CompoundLines) > 0 {
		args = append(args, kwarg("compound_lines", list(r.quantities(g.CompoundLines))))
	}
	if len(g.SimpleLines) > 0 {
		args = append(args, kwarg("simple_lines", list(r.quantities(g.SimpleLines))))
	}
	if len(g.Optional) > 0 {
		args = append(args, kwarg("optional", list(names(g.Optional))))
	}
	if len(g.Conflicting) > 0 {
		args = append(args, kwarg("conflicting", list(names(g.Conflicting))))
	}
	return call("graphs", "Graph", args...)
}

// VariableName is the name an object is assigned to, without its prefix.
func VariableName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// Object renders one assignment such as "metric_cpu_util = metrics.Metric(...)".
func (r *Renderer) Object(obj schema.Object) (string, error) {
	name := VariableName(obj.ObjectName())
	switch o := obj.(type) {
	case schema.Metric:
		return "metric_" + name + " = " + r.metric(o), nil
	case schema.Translation:
		return "translation_" + name + " = " + r.translation(o), nil
	case schema.Perfometer:
		return "perfometer_" + name + " = " + r.perfometer(o), nil
	case schema.BidirectionalPerfometer:
		return "perfometer_" + name + " = " + call("perfometers", "Bidirectional",
			kwarg("name", pyString(o.Name)),
			kwarg("left", r.perfometer(o.Left)),
			kwarg("right", r.perfometer(o.Right)),
		), nil
	case schema.StackedPerfometer:
		return "perfometer_" + name + " = " + call("perfometers", "Stacked",
			kwarg("name", pyString(o.Name)),
			kwarg("lower", r.perfometer(o.Lower)),
			kwarg("upper", r.perfometer(o.Upper)),
		), nil
	case schema.Graph:
		return "graph_" + name + " = " + r.graph(o), nil
	case schema.BidirectionalGraph:
		return "graph_" + name + " = " + call("graphs", "Bidirectional",
			kwarg("name", pyString(o.Name)),
			kwarg("title", title(o.Title)),
			kwarg("lower", r.graph(o.Lower)),
			kwarg("upper", r.graph(o.Upper)),
		), nil
	}
	return "", fmt.Errorf("render: unsupported object %T", obj)
}

// Write prints the unit variables followed by one line per object. Objects
// are rendered before the units are listed since naming a unit may register
// the default one.
func (r *Renderer) Write(w io.Writer, objects []schema.Object) error {
	var body bytes.Buffer
	for _, obj := range objects {
		line, err := r.Object(obj)
		if err != nil {
			return err
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	out := bufio.NewWriter(w)
	for _, pu := range r.units.Units() {
		if _, err := fmt.Fprintln(out, UnitLine(pu)); err != nil {
			return fmt.Errorf("write units: %w", err)
		}
	}
	if _, err := body.WriteTo(out); err != nil {
		return fmt.Errorf("write objects: %w", err)
	}
	return out.Flush()
}

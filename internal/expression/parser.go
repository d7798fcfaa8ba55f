// Package expression parses the legacy RPN metric expression language.
//
// An expression is a comma separated token list such as
// "mem_total,mem_free,-#00ff00@bytes". Tokens are metric names, numeric
// literals, scalar references ("cpu:warn"), the operators + * - / and an
// optional "(%)" wrapper. A trailing "#RRGGBB" sets the color and a trailing
// "@unit" the unit of composite nodes.
package expression

import (
	"fmt"
	"strings"

	"github.com/steveyegge/graphmig/internal/colors"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/schema"
	"github.com/steveyegge/graphmig/internal/units"
)

const op = "parse expression"

// Added to every divisor so a zero metric never divides by zero.
const divisorEpsilon = 1e-16

const percentSuffix = "(%)"

func isOperator(token string) bool {
	switch token {
	case "+", "*", "-", "/":
		return true
	}
	return false
}

func isUnsupported(token string) bool {
	switch token {
	case "MIN", "MAX", "AVERAGE", "MERGE", ">", ">=", "<", "<=":
		return true
	}
	return false
}

// dropConsolidation removes a trailing consolidation function name.
func dropConsolidation(token string) string {
	for _, suffix := range []string{".max", ".min", ".average"} {
		if strings.HasSuffix(token, suffix) {
			return strings.TrimSuffix(token, suffix)
		}
	}
	return token
}

// splitAnnotations strips the color suffix, then the unit suffix.
func splitAnnotations(expression string) (body, hexColor, unitName string) {
	body = expression
	if i := strings.LastIndex(body, "#"); i >= 0 {
		body, hexColor = body[:i], body[i+1:]
	}
	if i := strings.LastIndex(body, "@"); i >= 0 {
		body, unitName = body[:i], body[i+1:]
	}
	return body, hexColor, unitName
}

// item is either an operator or an operand waiting on the stack.
type item struct {
	operator string
	operand  schema.Quantity
}

type parser struct {
	units      *units.Parser
	expression string
	title      schema.Title
	color      schema.Color
	unitName   string
}

// Parse builds the expression tree of a legacy expression. explicitTitle is
// applied to the composite node an operator or percent wrapper produces.
// The registry records every unit the tree uses.
func Parse(registry *units.Parser, expression, explicitTitle string) (schema.Quantity, error) {
	body, hexColor, unitName := splitAnnotations(expression)

	p := &parser{
		units:      registry,
		expression: expression,
		title:      schema.Title(explicitTitle),
		color:      schema.ColorGray,
		unitName:   unitName,
	}
	if strings.Contains(expression, "#") {
		c, err := colors.Parse("#" + hexColor)
		if err != nil {
			return schema.Quantity{}, failure.Parse(op, expression, err)
		}
		p.color = c
	}

	var items []item
	for _, token := range strings.Split(body, ",") {
		switch {
		case isOperator(token):
			items = append(items, item{operator: token})
		case isUnsupported(token):
			return schema.Quantity{}, failure.Parse(op, expression, fmt.Errorf("%w %q", failure.ErrUnsupportedToken, token))
		default:
			q, err := p.operand(token)
			if err != nil {
				return schema.Quantity{}, err
			}
			items = append(items, item{operand: q})
		}
	}
	return p.reduce(items)
}

// operand parses a single non-operator token.
func (p *parser) operand(token string) (schema.Quantity, error) {
	token = dropConsolidation(token)
	percent := strings.HasSuffix(token, percentSuffix)
	token = strings.TrimSuffix(token, percentSuffix)
	if token == "" {
		return schema.Quantity{}, failure.Parsef(op, p.expression, "empty token")
	}

	if strings.Contains(token, ":") {
		metricName, scalarName, _ := strings.Cut(token, ":")
		scalar, err := p.scalar(metricName, scalarName)
		if err != nil {
			return schema.Quantity{}, err
		}
		if percent {
			return p.percent(scalar, metricName), nil
		}
		return scalar, nil
	}

	if percent {
		return p.percent(schema.MetricRef(token), token), nil
	}
	if v, ok := parseNumber(token); ok {
		return schema.Constant("", schema.NewUnit(schema.DecimalNotation("")), schema.ColorBlue, v), nil
	}
	return schema.MetricRef(token), nil
}

func (p *parser) scalar(metricName, scalarName string) (schema.Quantity, error) {
	if metricName == "" {
		return schema.Quantity{}, failure.Parsef(op, p.expression, "scalar %q without metric", scalarName)
	}
	switch scalarName {
	case "warn":
		return schema.WarningOf(metricName), nil
	case "crit":
		return schema.CriticalOf(metricName), nil
	case "min":
		return schema.MinimumOf(metricName, schema.ColorGray), nil
	case "max":
		return schema.MaximumOf(metricName, schema.ColorGray), nil
	}
	return schema.Quantity{}, failure.Parsef(op, p.expression, "unknown scalar %q", scalarName)
}

// percent rewrites value as a percentage of the maximum of metricName.
// Only the first metric name is used as divisor target, even for
// expressions referencing several metrics.
func (p *parser) percent(value schema.Quantity, metricName string) schema.Quantity {
	def := p.units.Default().Unit
	// Title, unit and color of the inner nodes have no visible effect.
	dividend, _ := schema.Product("", def, schema.ColorGray,
		schema.Constant("", def, schema.ColorGray, 100.0),
		value,
	)
	return schema.Fraction(
		p.title,
		schema.NewUnit(schema.DecimalNotation("%")),
		p.color,
		dividend,
		schema.MaximumOf(metricName, schema.ColorGray),
	)
}

// reduce folds the token list left to right. Each operator pops the right
// operand first, then the left one.
func (p *parser) reduce(items []item) (schema.Quantity, error) {
	var stack []schema.Quantity
	for _, it := range items {
		if it.operator == "" {
			stack = append(stack, it.operand)
			continue
		}
		if len(stack) < 2 {
			return schema.Quantity{}, failure.Parse(op, p.expression,
				fmt.Errorf("%w: %q needs two, have %d", failure.ErrInsufficientOperands, it.operator, len(stack)))
		}
		left, right := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]

		q, err := p.apply(it.operator, left, right)
		if err != nil {
			return schema.Quantity{}, failure.Parse(op, p.expression, err)
		}
		stack = append(stack, q)
	}

	switch len(stack) {
	case 0:
		return schema.Quantity{}, failure.Parsef(op, p.expression, "no operands")
	case 1:
		return stack[0], nil
	default:
		return schema.Quantity{}, failure.Parsef(op, p.expression, "%d operands left without operator", len(stack))
	}
}

func (p *parser) apply(operator string, left, right schema.Quantity) (schema.Quantity, error) {
	switch operator {
	case "+":
		return schema.Sum(p.title, p.color, left, right)
	case "*":
		return schema.Product(p.title, p.units.Parse(p.unitName), p.color, left, right)
	case "-":
		return schema.Difference(p.title, p.color, left, right), nil
	case "/":
		unit := p.units.Parse(p.unitName)
		divisor, err := schema.Sum("", schema.ColorGray,
			right,
			schema.Constant("", p.units.Default().Unit, schema.ColorGray, divisorEpsilon),
		)
		if err != nil {
			return schema.Quantity{}, err
		}
		return schema.Fraction(p.title, unit, p.color, left, divisor), nil
	}
	return schema.Quantity{}, fmt.Errorf("unknown operator %q", operator)
}

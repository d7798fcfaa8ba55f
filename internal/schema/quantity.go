package schema

import "fmt"

// Title is a human readable, localizable label.
type Title string

// Kind discriminates the variants of a Quantity.
type Kind int

const (
	KindMetric Kind = iota
	KindConstant
	KindWarningOf
	KindCriticalOf
	KindMinimumOf
	KindMaximumOf
	KindSum
	KindProduct
	KindDifference
	KindFraction
)

var kindNames = [...]string{
	KindMetric:     "Metric",
	KindConstant:   "Constant",
	KindWarningOf:  "WarningOf",
	KindCriticalOf: "CriticalOf",
	KindMinimumOf:  "MinimumOf",
	KindMaximumOf:  "MaximumOf",
	KindSum:        "Sum",
	KindProduct:    "Product",
	KindDifference: "Difference",
	KindFraction:   "Fraction",
}

// String returns the constructor name of the variant.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsScalar reports whether the kind references a bound of a metric.
func (k Kind) IsScalar() bool {
	switch k {
	case KindWarningOf, KindCriticalOf, KindMinimumOf, KindMaximumOf:
		return true
	}
	return false
}

// Quantity is a node of a metric expression tree. The zero value is not
// usable; build quantities with the constructors below. A Quantity never
// changes after construction and owns its children.
type Quantity struct {
	kind     Kind
	name     string // metric name for KindMetric and scalar kinds
	title    Title
	unit     Unit
	color    Color
	value    float64
	children []Quantity
}

// MetricRef references the live value of a metric.
func MetricRef(name string) Quantity {
	return Quantity{kind: KindMetric, name: name}
}

// Constant is a literal value.
func Constant(title Title, unit Unit, color Color, value float64) Quantity {
	return Quantity{kind: KindConstant, title: title, unit: unit, color: color, value: value}
}

// WarningOf references the warning threshold of a metric.
func WarningOf(metricName string) Quantity {
	return Quantity{kind: KindWarningOf, name: metricName}
}

// CriticalOf references the critical threshold of a metric.
func CriticalOf(metricName string) Quantity {
	return Quantity{kind: KindCriticalOf, name: metricName}
}

// MinimumOf references the configured minimum of a metric.
func MinimumOf(metricName string, color Color) Quantity {
	return Quantity{kind: KindMinimumOf, name: metricName, color: color}
}

// MaximumOf references the configured maximum of a metric.
func MaximumOf(metricName string, color Color) Quantity {
	return Quantity{kind: KindMaximumOf, name: metricName, color: color}
}

// Sum adds at least two summands.
func Sum(title Title, color Color, summands ...Quantity) (Quantity, error) {
	if len(summands) < 2 {
		return Quantity{}, fmt.Errorf("sum needs at least two summands, got %d", len(summands))
	}
	return Quantity{kind: KindSum, title: title, color: color, children: cloneQuantities(summands)}, nil
}

// Product multiplies at least two factors.
func Product(title Title, unit Unit, color Color, factors ...Quantity) (Quantity, error) {
	if len(factors) < 2 {
		return Quantity{}, fmt.Errorf("product needs at least two factors, got %d", len(factors))
	}
	return Quantity{kind: KindProduct, title: title, unit: unit, color: color, children: cloneQuantities(factors)}, nil
}

// Difference subtracts subtrahend from minuend.
func Difference(title Title, color Color, minuend, subtrahend Quantity) Quantity {
	return Quantity{kind: KindDifference, title: title, color: color, children: []Quantity{minuend, subtrahend}}
}

// Fraction divides dividend by divisor. Callers building fractions from
// legacy data pad the divisor with a tiny epsilon, see expression.Parse.
func Fraction(title Title, unit Unit, color Color, dividend, divisor Quantity) Quantity {
	return Quantity{kind: KindFraction, title: title, unit: unit, color: color, children: []Quantity{dividend, divisor}}
}

func cloneQuantities(qs []Quantity) []Quantity {
	out := make([]Quantity, len(qs))
	copy(out, qs)
	return out
}

func (q Quantity) Kind() Kind     { return q.kind }
func (q Quantity) Title() Title   { return q.title }
func (q Quantity) Unit() Unit     { return q.unit }
func (q Quantity) Color() Color   { return q.color }
func (q Quantity) Value() float64 { return q.value }

// MetricName is the referenced metric for KindMetric and the scalar kinds,
// and empty otherwise.
func (q Quantity) MetricName() string { return q.name }

// Summands of a Sum.
func (q Quantity) Summands() []Quantity {
	if q.kind != KindSum {
		return nil
	}
	return cloneQuantities(q.children)
}

// Factors of a Product.
func (q Quantity) Factors() []Quantity {
	if q.kind != KindProduct {
		return nil
	}
	return cloneQuantities(q.children)
}

func (q Quantity) Minuend() Quantity    { return q.child(KindDifference, 0) }
func (q Quantity) Subtrahend() Quantity { return q.child(KindDifference, 1) }
func (q Quantity) Dividend() Quantity   { return q.child(KindFraction, 0) }
func (q Quantity) Divisor() Quantity    { return q.child(KindFraction, 1) }

func (q Quantity) child(kind Kind, i int) Quantity {
	if q.kind != kind || len(q.children) <= i {
		return Quantity{}
	}
	return q.children[i]
}

// Children returns the direct operands in constructor order.
func (q Quantity) Children() []Quantity {
	return cloneQuantities(q.children)
}

// Equal compares two trees structurally.
func (q Quantity) Equal(other Quantity) bool {
	if q.kind != other.kind || q.name != other.name || q.title != other.title ||
		q.unit != other.unit || q.color != other.color || q.value != other.value ||
		len(q.children) != len(other.children) {
		return false
	}
	for i := range q.children {
		if !q.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

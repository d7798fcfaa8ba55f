package schema

// Namespace is the module of the graphing API an object belongs to.
type Namespace string

const (
	NamespaceMetrics      Namespace = "metrics"
	NamespaceTranslations Namespace = "translations"
	NamespacePerfometers  Namespace = "perfometers"
	NamespaceGraphs       Namespace = "graphs"
)

// Object is any top-level migrated object.
type Object interface {
	ObjectName() string
	Namespace() Namespace
}

// Metric describes a single metric.
type Metric struct {
	Name  string
	Title Title
	Unit  Unit
	Color Color
}

func (m Metric) ObjectName() string   { return m.Name }
func (m Metric) Namespace() Namespace { return NamespaceMetrics }

// Bound is either a literal number or a Quantity. Literal numbers keep
// whether they were integral so they render the way they were written.
type Bound struct {
	quantity *Quantity
	value    float64
	integer  bool
}

// IntBound is an integral literal bound.
func IntBound(v int64) Bound { return Bound{value: float64(v), integer: true} }

// FloatBound is a floating point literal bound.
func FloatBound(v float64) Bound { return Bound{value: v} }

// QuantityBound wraps an expression.
func QuantityBound(q Quantity) Bound { return Bound{quantity: &q} }

// Quantity returns the wrapped expression, if any.
func (b Bound) Quantity() (Quantity, bool) {
	if b.quantity == nil {
		return Quantity{}, false
	}
	return *b.quantity, true
}

// Literal returns the literal value and whether it is integral. ok is false
// for expression bounds.
func (b Bound) Literal() (value float64, integer bool, ok bool) {
	if b.quantity != nil {
		return 0, false, false
	}
	return b.value, b.integer, true
}

// BoundKind tells closed from open focus range borders.
type BoundKind int

const (
	Closed BoundKind = iota
	Open
)

func (k BoundKind) String() string {
	if k == Open {
		return "Open"
	}
	return "Closed"
}

// FocusBound is one border of a perfometer focus range.
type FocusBound struct {
	Kind  BoundKind
	Value Bound
}

// FocusRange is the range a perfometer concentrates on.
type FocusRange struct {
	Lower FocusBound
	Upper FocusBound
}

// Perfometer is a linear gauge over one or more segments.
type Perfometer struct {
	Name       string
	FocusRange FocusRange
	Segments   []Quantity
}

func (p Perfometer) ObjectName() string   { return p.Name }
func (p Perfometer) Namespace() Namespace { return NamespacePerfometers }

// BidirectionalPerfometer shows two perfometers growing left and right.
type BidirectionalPerfometer struct {
	Name  string
	Left  Perfometer
	Right Perfometer
}

func (p BidirectionalPerfometer) ObjectName() string   { return p.Name }
func (p BidirectionalPerfometer) Namespace() Namespace { return NamespacePerfometers }

// StackedPerfometer shows two perfometers on top of each other.
type StackedPerfometer struct {
	Name  string
	Lower Perfometer
	Upper Perfometer
}

func (p StackedPerfometer) ObjectName() string   { return p.Name }
func (p StackedPerfometer) Namespace() Namespace { return NamespacePerfometers }

// MinimalRange is the smallest vertical range a graph always shows.
type MinimalRange struct {
	Lower Bound
	Upper Bound
}

// Graph is a graph template.
type Graph struct {
	Name          string
	Title         Title
	MinimalRange  *MinimalRange
	CompoundLines []Quantity
	SimpleLines   []Quantity
	Optional      []string
	Conflicting   []string
}

func (g Graph) ObjectName() string   { return g.Name }
func (g Graph) Namespace() Namespace { return NamespaceGraphs }

// BidirectionalGraph mirrors a lower graph below an upper graph.
type BidirectionalGraph struct {
	Name  string
	Title Title
	Lower Graph
	Upper Graph
}

func (g BidirectionalGraph) ObjectName() string   { return g.Name }
func (g BidirectionalGraph) Namespace() Namespace { return NamespaceGraphs }

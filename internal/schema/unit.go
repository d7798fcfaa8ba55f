package schema

// NotationKind selects how values of a unit are rendered.
type NotationKind int

const (
	NotationDecimal NotationKind = iota
	NotationSI
	NotationIEC
	NotationStandardScientific
	NotationEngineeringScientific
	NotationTime
)

var notationNames = map[NotationKind]string{
	NotationDecimal:               "DecimalNotation",
	NotationSI:                    "SINotation",
	NotationIEC:                   "IECNotation",
	NotationStandardScientific:    "StandardScientificNotation",
	NotationEngineeringScientific: "EngineeringScientificNotation",
	NotationTime:                  "TimeNotation",
}

// String returns the constructor name of the notation.
func (k NotationKind) String() string {
	if name, ok := notationNames[k]; ok {
		return name
	}
	return "UnknownNotation"
}

// Notation is a notation kind plus its unit symbol. Time notation has no symbol.
type Notation struct {
	Kind   NotationKind
	Symbol string
}

func DecimalNotation(symbol string) Notation { return Notation{Kind: NotationDecimal, Symbol: symbol} }
func SINotation(symbol string) Notation      { return Notation{Kind: NotationSI, Symbol: symbol} }
func IECNotation(symbol string) Notation     { return Notation{Kind: NotationIEC, Symbol: symbol} }
func TimeNotation() Notation                 { return Notation{Kind: NotationTime, Symbol: "s"} }

// PrecisionKind distinguishes auto from strict digit handling.
type PrecisionKind int

const (
	PrecisionAuto PrecisionKind = iota
	PrecisionStrict
)

func (k PrecisionKind) String() string {
	if k == PrecisionStrict {
		return "StrictPrecision"
	}
	return "AutoPrecision"
}

// Precision is the number of digits shown for a unit.
type Precision struct {
	Kind   PrecisionKind
	Digits int
}

func AutoPrecision(digits int) Precision   { return Precision{Kind: PrecisionAuto, Digits: digits} }
func StrictPrecision(digits int) Precision { return Precision{Kind: PrecisionStrict, Digits: digits} }

// DefaultPrecision is applied when a unit is built without an explicit precision.
var DefaultPrecision = AutoPrecision(2)

// Unit is a comparable value; two units are the same unit iff they are ==.
type Unit struct {
	Notation  Notation
	Precision Precision
}

// NewUnit builds a unit with DefaultPrecision.
func NewUnit(notation Notation) Unit {
	return Unit{Notation: notation, Precision: DefaultPrecision}
}

// NewUnitWithPrecision builds a unit with an explicit precision.
func NewUnitWithPrecision(notation Notation, precision Precision) Unit {
	return Unit{Notation: notation, Precision: precision}
}

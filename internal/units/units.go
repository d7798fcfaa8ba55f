// Package units maps legacy unit names onto units of the graphing API and
// remembers which ones a migration run actually used.
package units

import (
	"github.com/StudioSol/set"
	"github.com/rs/zerolog"

	"github.com/steveyegge/graphmig/internal/schema"
)

// ParsedUnit is a unit with the variable name it is emitted under.
type ParsedUnit struct {
	Name string
	Unit schema.Unit
}

const defaultLegacyUnit = ""

type unitEntry struct {
	legacy string
	parsed ParsedUnit
}

var table = []unitEntry{
	{"", ParsedUnit{"UNIT_NUMBER", schema.NewUnit(schema.DecimalNotation(""))}},
	{"count", ParsedUnit{"UNIT_COUNTER", schema.NewUnitWithPrecision(schema.DecimalNotation(""), schema.StrictPrecision(2))}},
	{"%", ParsedUnit{"UNIT_PERCENTAGE", schema.NewUnit(schema.DecimalNotation("%"))}},
	{"s", ParsedUnit{"UNIT_TIME", schema.NewUnit(schema.TimeNotation())}},
	{"1/s", ParsedUnit{"UNIT_PER_SECOND", schema.NewUnit(schema.DecimalNotation("/s"))}},
	{"hz", ParsedUnit{"UNIT_HERTZ", schema.NewUnit(schema.DecimalNotation("Hz"))}},
	{"bytes", ParsedUnit{"UNIT_BYTES", schema.NewUnit(schema.IECNotation("B"))}},
	{"bytes/s", ParsedUnit{"UNIT_BYTES_PER_SECOND", schema.NewUnit(schema.IECNotation("B/s"))}},
	{"s/s", ParsedUnit{"UNIT_SECONDS_PER_SECOND", schema.NewUnit(schema.DecimalNotation("s/s"))}},
	{"bits", ParsedUnit{"UNIT_BITS", schema.NewUnit(schema.IECNotation("bits/s"))}},
	{"bits/s", ParsedUnit{"UNIT_BITS_PER_SECOND", schema.NewUnit(schema.IECNotation("bits/d"))}},
	{"bytes/d", ParsedUnit{"UNIT_BYTES_PER_DAY", schema.NewUnit(schema.IECNotation("B/d"))}},
	{"c", ParsedUnit{"UNIT_DEGREE_CELSIUS", schema.NewUnit(schema.DecimalNotation("°C"))}},
	{"a", ParsedUnit{"UNIT_AMPERE", schema.NewUnitWithPrecision(schema.DecimalNotation("A"), schema.AutoPrecision(3))}},
	{"v", ParsedUnit{"UNIT_VOLTAGE", schema.NewUnitWithPrecision(schema.DecimalNotation("V"), schema.AutoPrecision(3))}},
	{"w", ParsedUnit{"UNIT_ELECTRICAL_POWER", schema.NewUnitWithPrecision(schema.DecimalNotation("W"), schema.AutoPrecision(3))}},
	{"va", ParsedUnit{"UNIT_ELECTRICAL_APPARENT_POWER", schema.NewUnitWithPrecision(schema.DecimalNotation("VA"), schema.AutoPrecision(3))}},
	{"wh", ParsedUnit{"UNIT_ELECTRICAL_ENERGY", schema.NewUnitWithPrecision(schema.DecimalNotation("Wh"), schema.AutoPrecision(3))}},
	{"dbm", ParsedUnit{"UNIT_DECIBEL_MILLIWATTS", schema.NewUnit(schema.DecimalNotation("dBm"))}},
	{"dbmv", ParsedUnit{"UNIT_DECIBEL_MILLIVOLTS", schema.NewUnit(schema.DecimalNotation("dBmV"))}},
	{"db", ParsedUnit{"UNIT_DECIBEL", schema.NewUnit(schema.DecimalNotation("dB"))}},
	{"ppm", ParsedUnit{"UNIT_PARTS_PER_MILLION", schema.NewUnit(schema.DecimalNotation("ppm"))}},
	{"%/m", ParsedUnit{"UNIT_PERCENTAGE_PER_METER", schema.NewUnit(schema.DecimalNotation("%/m"))}},
	{"bar", ParsedUnit{"UNIT_BAR", schema.NewUnitWithPrecision(schema.DecimalNotation("bar"), schema.AutoPrecision(4))}},
	{"pa", ParsedUnit{"UNIT_PASCAL", schema.NewUnitWithPrecision(schema.DecimalNotation("Pa"), schema.AutoPrecision(3))}},
	{"l/s", ParsedUnit{"UNIT_LITER_PER_SECOND", schema.NewUnitWithPrecision(schema.DecimalNotation("l/s"), schema.AutoPrecision(3))}},
	{"rpm", ParsedUnit{"UNIT_REVOLUTIONS_PER_MINUTE", schema.NewUnitWithPrecision(schema.DecimalNotation("rpm"), schema.AutoPrecision(4))}},
	{"bytes/op", ParsedUnit{"UNIT_BYTES_PER_OPERATION", schema.NewUnit(schema.IECNotation("B/op"))}},
	{"EUR", ParsedUnit{"UNIT_EURO", schema.NewUnitWithPrecision(schema.DecimalNotation("€"), schema.StrictPrecision(2))}},
	{"RCU", ParsedUnit{"UNIT_READ_CAPACITY_UNIT", schema.NewUnitWithPrecision(schema.SINotation("RCU"), schema.AutoPrecision(3))}},
	{"WCU", ParsedUnit{"UNIT_WRITE_CAPACITY_UNIT", schema.NewUnitWithPrecision(schema.SINotation("WCU"), schema.AutoPrecision(3))}},
}

var byLegacy = func() map[string]ParsedUnit {
	m := make(map[string]ParsedUnit, len(table))
	for _, e := range table {
		m[e.legacy] = e.parsed
	}
	return m
}()

var byName = func() map[string]ParsedUnit {
	m := make(map[string]ParsedUnit, len(table))
	for _, e := range table {
		m[e.parsed.Name] = e.parsed
	}
	return m
}()

// Parser is the unit registry of one migration run. It is not safe for
// concurrent use and must not be shared between runs: the set of used units
// decides which unit variables get emitted.
type Parser struct {
	used *set.LinkedHashSetString
	log  zerolog.Logger
}

// NewParser returns an empty registry.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{
		used: set.NewLinkedHashSetString(),
		log:  log,
	}
}

// Default returns the dimensionless decimal unit and registers it.
func (p *Parser) Default() ParsedUnit {
	parsed := byLegacy[defaultLegacyUnit]
	p.used.Add(parsed.Name)
	return parsed
}

// Parse maps a legacy unit name, falling back to the default unit for
// names it does not know.
func (p *Parser) Parse(legacy string) schema.Unit {
	parsed, ok := byLegacy[legacy]
	if !ok {
		p.log.Info().Str("unit", legacy).Msg("Unit not found, use 'DecimalUnit'")
		parsed = p.Default()
	}
	p.used.Add(parsed.Name)
	return parsed.Unit
}

// Units returns the registered units in registration order.
func (p *Parser) Units() []ParsedUnit {
	var units []ParsedUnit
	for name := range p.used.Iter() {
		units = append(units, byName[name])
	}
	return units
}

// FindName returns the variable name of a registered unit equal to unit.
// Only exact matches count; anything else resolves to the default unit.
func (p *Parser) FindName(unit schema.Unit) string {
	for _, u := range p.Units() {
		if u.Unit == unit {
			return u.Name
		}
	}
	return p.Default().Name
}

// Known returns the whole legacy unit table keyed by legacy name, in table
// order.
func Known() []KnownUnit {
	known := make([]KnownUnit, len(table))
	for i, e := range table {
		known[i] = KnownUnit{Legacy: e.legacy, ParsedUnit: e.parsed}
	}
	return known
}

// KnownUnit is one row of the legacy unit table.
type KnownUnit struct {
	Legacy string
	ParsedUnit
}

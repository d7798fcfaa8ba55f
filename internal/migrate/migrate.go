// Package migrate turns legacy graphing records into objects of the new
// graphing API.
//
// Every record is migrated on its own. A record that cannot be migrated is
// logged and reported as Unparseable while the run goes on with the next
// one, except in debug mode where the first failure ends the run.
package migrate

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/schema"
	"github.com/steveyegge/graphmig/internal/units"
)

// Unparseable is a legacy record that could not be migrated.
type Unparseable struct {
	Namespace schema.Namespace
	Name      string
	Err       error
}

func (u Unparseable) String() string {
	return fmt.Sprintf("Unparseable(namespace=%q, name=%q)", u.Namespace, u.Name)
}

// Kind classifies the failure.
func (u Unparseable) Kind() failure.Kind {
	return failure.KindOf(u.Err)
}

// Input is the legacy data of one run.
type Input struct {
	Metrics      *legacy.Ordered[legacy.MetricInfo]
	CheckMetrics *legacy.Ordered[*legacy.Ordered[legacy.CheckMetricEntry]]
	Perfometers  []legacy.PerfometerSpec
	Graphs       *legacy.Ordered[legacy.GraphTemplate]
	// Unresolved are referenced metric names without a metric info
	Unresolved []string
}

// Objects are the migrated objects of a run. Perfometers hold
// schema.Perfometer, schema.BidirectionalPerfometer and
// schema.StackedPerfometer values; Graphs hold schema.Graph and
// schema.BidirectionalGraph values.
type Objects struct {
	Metrics      []schema.Metric
	Translations []schema.Translation
	Perfometers  []schema.Object
	Graphs       []schema.Object
}

// All returns metrics, translations, perfometers and graphs in that order.
func (o *Objects) All() []schema.Object {
	all := make([]schema.Object, 0, o.Len())
	for _, m := range o.Metrics {
		all = append(all, m)
	}
	for _, t := range o.Translations {
		all = append(all, t)
	}
	all = append(all, o.Perfometers...)
	return append(all, o.Graphs...)
}

// Len counts all objects.
func (o *Objects) Len() int {
	return len(o.Metrics) + len(o.Translations) + len(o.Perfometers) + len(o.Graphs)
}

// Migrator migrates one run. Units collects the units the migrated objects
// use and must be fresh for every run.
type Migrator struct {
	Debug bool
	Units *units.Parser
	Log   zerolog.Logger

	unparseables []Unparseable
}

// New returns a migrator with a fresh unit registry.
func New(debug bool, log zerolog.Logger) *Migrator {
	return &Migrator{
		Debug: debug,
		Units: units.NewParser(log),
		Log:   log,
	}
}

// Run migrates metrics, translations, perfometers and graph templates in
// that order. The error is only set in debug mode, for the first failure.
func (m *Migrator) Run(in Input) (*Objects, []Unparseable, error) {
	m.unparseables = nil
	objects := &Objects{}

	for _, name := range in.Unresolved {
		if err := m.fail(schema.NamespaceMetrics, name, failure.Unresolved("metric info", name)); err != nil {
			return nil, m.unparseables, err
		}
	}

	var err error
	if objects.Metrics, err = m.metrics(in.Metrics); err != nil {
		return nil, m.unparseables, err
	}
	if objects.Translations, err = m.translations(in.CheckMetrics); err != nil {
		return nil, m.unparseables, err
	}
	if objects.Perfometers, err = m.perfometers(in.Perfometers); err != nil {
		return nil, m.unparseables, err
	}
	if objects.Graphs, err = m.graphs(in.Graphs); err != nil {
		return nil, m.unparseables, err
	}
	return objects, m.unparseables, nil
}

// try runs fn for one record. A failure or panic is recorded; the returned
// error is non-nil only when the run has to stop.
func (m *Migrator) try(ns schema.Namespace, name string, fn func() error) (abort error) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = fn()
	}()
	if err == nil {
		return nil
	}
	return m.fail(ns, name, err)
}

func (m *Migrator) fail(ns schema.Namespace, name string, err error) error {
	m.Log.Error().
		Err(err).
		Str("namespace", string(ns)).
		Str("name", name).
		Str("kind", failure.KindOf(err).String()).
		Msg("Cannot migrate object")
	m.unparseables = append(m.unparseables, Unparseable{Namespace: ns, Name: name, Err: err})
	if m.Debug {
		return fmt.Errorf("%s %q: %w", ns, name, err)
	}
	return nil
}

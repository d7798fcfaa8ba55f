package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/steveyegge/graphmig/internal/config"
	"github.com/steveyegge/graphmig/internal/connectivity"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/migrate"
	"github.com/steveyegge/graphmig/internal/render"
	"github.com/steveyegge/graphmig/internal/storage"
	"github.com/steveyegge/graphmig/internal/types"
)

type migrateOptions struct {
	Folders      []string
	MetricNames  []string
	Debug        bool
	Translations bool
	Check        bool
	Sanitize     bool
}

// runMigration loads the folders, resolves the objects connected to the
// requested metrics and prints them to out.
func runMigration(ctx context.Context, opts migrateOptions, cfg config.Config, out io.Writer, log zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	loader := &legacy.Loader{
		Extensions: cfg.Input.Extensions,
		Workers:    cfg.Input.Workers,
		Debug:      opts.Debug,
		Log:        log,
	}
	corpus, err := loader.Load(ctx, opts.Folders, opts.Translations)
	if err != nil {
		return err
	}

	index := connectivity.Resolve(corpus.Perfometers, corpus.Graphs)
	connected := index.Materialize(index.Components(opts.MetricNames), corpus)
	log.Debug().Int("components", len(connected)).Msg("Connected objects computed")

	if opts.Check {
		return printConnected(out, index.MetricNames(), opts.MetricNames, connected)
	}

	metrics, perfometers, graphs, unresolved := connectivity.Merge(connected)
	migrator := migrate.New(opts.Debug, log)
	objects, unparseables, err := migrator.Run(migrate.Input{
		Metrics:      metrics,
		CheckMetrics: corpus.CheckMetrics,
		Perfometers:  perfometers,
		Graphs:       graphs,
		Unresolved:   unresolved,
	})
	if err != nil {
		return err
	}

	if opts.Sanitize {
		objects = migrate.Sanitize(objects)
	}

	if objects.Len() > 0 {
		if err := render.New(migrator.Units).Write(out, objects.All()); err != nil {
			return err
		}
	}
	for _, u := range unparseables {
		log.Info().Str("kind", u.Kind().String()).Msg(u.String())
	}
	if len(unparseables) > 0 {
		summary := summarizeUnparseables(unparseables)
		log.Info().
			Int("parse", summary.Parse).
			Int("unresolved", summary.Unresolved).
			Int("schema_mismatch", summary.SchemaMismatch).
			Int("other", summary.Other).
			Msgf("%d object(s) could not be migrated", len(unparseables))
	}

	return recordRun(ctx, cfg, log, &types.Run{
		StartedAt:    started,
		Duration:     time.Since(started),
		Folders:      opts.Folders,
		MetricNames:  opts.MetricNames,
		Translations: opts.Translations,
		Sanitized:    opts.Sanitize,
		Counts: types.Counts{
			Units:        len(migrator.Units.Units()),
			Metrics:      len(objects.Metrics),
			Translations: len(objects.Translations),
			Perfometers:  len(objects.Perfometers),
			Graphs:       len(objects.Graphs),
		},
		Unparseables: ledgerUnparseables(unparseables),
	})
}

// unparseableSummary counts unparseables per failure kind.
type unparseableSummary struct {
	Parse          int
	Unresolved     int
	SchemaMismatch int
	Other          int
}

func summarizeUnparseables(unparseables []migrate.Unparseable) unparseableSummary {
	var s unparseableSummary
	for _, u := range unparseables {
		switch {
		case failure.IsParse(u.Err):
			s.Parse++
		case failure.IsUnresolved(u.Err):
			s.Unresolved++
		case failure.IsSchemaMismatch(u.Err):
			s.SchemaMismatch++
		default:
			s.Other++
		}
	}
	return s
}

func ledgerUnparseables(unparseables []migrate.Unparseable) []types.Unparseable {
	out := make([]types.Unparseable, len(unparseables))
	for i, u := range unparseables {
		out[i] = types.Unparseable{
			Namespace: string(u.Namespace),
			Name:      u.Name,
			Kind:      failure.KindOf(u.Err).String(),
		}
		if u.Err != nil {
			out[i].Message = u.Err.Error()
		}
	}
	return out
}

// recordRun stores the run if a ledger is configured. A ledger failure is
// logged but does not fail the migration; its output is already written.
func recordRun(ctx context.Context, cfg config.Config, log zerolog.Logger, run *types.Run) error {
	ledger, err := storage.NewLedger(ctx, storage.Config{Path: cfg.Ledger.Path})
	if errors.Is(err, storage.ErrDisabled) {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("ledger", cfg.Ledger.Path).Msg("Cannot open run ledger")
		return nil
	}
	defer func() { _ = ledger.Close() }()

	if err := ledger.RecordRun(ctx, run); err != nil {
		log.Warn().Err(err).Msg("Cannot record run")
		return nil
	}
	log.Debug().Str("run", run.ID).Msgf("Run recorded with %d unparseable(s)", len(run.Unparseables))
	return nil
}

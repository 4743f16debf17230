package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"checkpoint/internal/activity"
	activitykafka "checkpoint/internal/activity/kafka"
	auditservice "checkpoint/internal/audits/service"
	auditstore "checkpoint/internal/audits/store"
	"checkpoint/internal/bundle"
	checklist "checkpoint/internal/checklist/models"
	checkliststore "checkpoint/internal/checklist/store"
	"checkpoint/internal/platform/config"
	"checkpoint/internal/platform/postgres"
	progressservice "checkpoint/internal/progress/service"
	httptransport "checkpoint/internal/transport/http"
	"checkpoint/pkg/platform/tx"
)

const (
	activityBuffer     = 256
	activityPartitions = 3
)

type checklistStore interface {
	bundle.TreeSource
	ReplaceTree(ctx context.Context, pillars []checklist.Pillar) error
	CountRequirements(ctx context.Context) (int, error)
}

type auditStore interface {
	auditservice.Store
	progressservice.ResultStore
	bundle.AuditSource
	bundle.PlanSource
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// backends are the stores chosen by configuration plus their health checks.
type backends struct {
	checklist checklistStore
	audits    auditStore
	tx        txRunner
	checks    map[string]httptransport.HealthCheck
	closers   []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openStores uses Postgres when DATABASE_URL is set and in-memory stores
// otherwise.
func openStores(ctx context.Context, cfg config.Server, log *slog.Logger) (*backends, error) {
	b := &backends{checks: map[string]httptransport.HealthCheck{}}
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		b.checklist = checkliststore.NewInMemory(nil)
		b.audits = auditstore.NewInMemory()
		b.tx = tx.NoopRunner{}
		return b, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, func() { _ = db.Close() })
	if err := postgres.Migrate(ctx, db); err != nil {
		b.close()
		return nil, err
	}
	b.checklist = checkliststore.NewPostgres(db)
	b.audits = auditstore.NewPostgres(db)
	b.tx = tx.NewRunner(db, 0)
	b.checks["postgres"] = pingDB(db)
	return b, nil
}

func pingDB(db *sql.DB) httptransport.HealthCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// seedChecklist loads the seed file into an empty checklist store and
// returns the pillar order it declares.
func seedChecklist(ctx context.Context, cfg config.Server, store checklistStore, log *slog.Logger) (checklist.PillarOrder, error) {
	if cfg.SeedFile == "" {
		return nil, nil
	}
	seed, err := checkliststore.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	n, err := store.CountRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("count requirements: %w", err)
	}
	if n == 0 {
		if err := store.ReplaceTree(ctx, seed.Pillars); err != nil {
			return nil, fmt.Errorf("seed checklist: %w", err)
		}
		log.Info("checklist seeded", "file", cfg.SeedFile, "pillars", len(seed.Pillars))
	}
	return seed.PillarOrder(), nil
}

// warnUnordered logs pillars that the display order leaves out. They are
// still counted in totals.
func warnUnordered(ctx context.Context, store checklistStore, order checklist.PillarOrder, log *slog.Logger) {
	if len(order) == 0 {
		return
	}
	tree, err := store.LoadTree(ctx)
	if err != nil {
		log.WarnContext(ctx, "could not check pillar order", "error", err)
		return
	}
	if missing := tree.Unordered(order); len(missing) > 0 {
		log.WarnContext(ctx, "pillars missing from display order", "pillars", missing)
	}
}

// activitySink produces to Kafka when brokers are configured and only logs
// otherwise.
func activitySink(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, b *backends) (activity.Sink, error) {
	if len(cfg.Brokers) == 0 {
		return activity.NewLogSink(log), nil
	}
	sink, err := activitykafka.New(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, sink.Close)
	if err := sink.EnsureTopic(ctx, activityPartitions, 1); err != nil {
		log.Warn("activity topic not ensured", "topic", cfg.Topic, "error", err)
	}
	b.checks["kafka"] = sink.Ping
	return sink, nil
}

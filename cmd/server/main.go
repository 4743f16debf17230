package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"checkpoint/internal/activity"
	activitymetrics "checkpoint/internal/activity/metrics"
	audithandler "checkpoint/internal/audits/handler"
	auditmetrics "checkpoint/internal/audits/metrics"
	auditservice "checkpoint/internal/audits/service"
	"checkpoint/internal/bundle"
	"checkpoint/internal/cache"
	"checkpoint/internal/cache/broadcast"
	cachehandler "checkpoint/internal/cache/handler"
	cachemetrics "checkpoint/internal/cache/metrics"
	checklist "checkpoint/internal/checklist/models"
	dashboardhandler "checkpoint/internal/dashboard/handler"
	dashboardservice "checkpoint/internal/dashboard/service"
	"checkpoint/internal/platform/config"
	"checkpoint/internal/platform/httpserver"
	"checkpoint/internal/platform/logger"
	"checkpoint/internal/platform/metrics"
	"checkpoint/internal/platform/redis"
	progresshandler "checkpoint/internal/progress/handler"
	progressmetrics "checkpoint/internal/progress/metrics"
	progressservice "checkpoint/internal/progress/service"
	httptransport "checkpoint/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires stores, the shared cache and the services behind the HTTP
// router. Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	order, err := seedChecklist(ctx, cfg, stores.checklist, log)
	if err != nil {
		return err
	}
	if len(cfg.PillarOrder) > 0 {
		order = checklist.ParsePillarOrder(cfg.PillarOrder)
	}
	warnUnordered(ctx, stores.checklist, order, log)

	sink, err := activitySink(ctx, cfg.Kafka, log, stores)
	if err != nil {
		return err
	}
	publisher := activity.NewPublisher(sink,
		activity.WithAsyncBuffer(activityBuffer),
		activity.WithLogger(log),
		activity.WithMetrics(activitymetrics.New()),
	)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	snapshot := cache.New(cfg.CacheTTL, cache.WithMetrics(cachemetrics.New()))
	loaderOpts := []bundle.Option{
		bundle.WithLogger(log),
		bundle.WithTracer(otel.Tracer("checkpoint/bundle")),
	}
	var broadcaster *broadcast.Broadcaster
	if redisClient != nil {
		defer redisClient.Close()
		broadcaster = broadcast.New(redisClient.Client,
			broadcast.WithChannel(cfg.Redis.Channel),
			broadcast.WithLogger(log),
		)
		loaderOpts = append(loaderOpts, bundle.WithNotifier(broadcaster))
		stores.checks["redis"] = redisClient.Health
	}
	loader := bundle.New(snapshot, stores.checklist, stores.audits, stores.audits, loaderOpts...)

	progress, err := progressservice.New(stores.audits, loader,
		progressservice.WithLogger(log),
		progressservice.WithActivityEmitter(publisher),
		progressservice.WithMetrics(progressmetrics.New()),
		progressservice.WithPillarOrder(order),
	)
	if err != nil {
		return err
	}
	audits, err := auditservice.New(stores.audits, loader,
		auditservice.WithLogger(log),
		auditservice.WithActivityEmitter(publisher),
		auditservice.WithMetrics(auditmetrics.New()),
		auditservice.WithTxRunner(stores.tx),
		auditservice.WithLocations(cfg.Locations),
	)
	if err != nil {
		return err
	}
	dashboard, err := dashboardservice.New(loader,
		dashboardservice.WithLogger(log),
		dashboardservice.WithLocations(cfg.Locations),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Config{
		Logger:  log,
		Metrics: metrics.New(),
		Checks:  stores.checks,
		Handlers: []httptransport.Registrar{
			progresshandler.New(progress, log),
			audithandler.New(audits, log),
			dashboardhandler.New(dashboard, log),
			cachehandler.New(loader, log),
		},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting checkpoint", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if broadcaster != nil {
		g.Go(func() error {
			// Losing the subscription only delays peer invalidations to the TTL.
			if err := broadcaster.Run(gctx, snapshot); err != nil {
				log.Warn("cache invalidation subscriber stopped", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		_ = publisher.Close()
		log.Info("checkpoint stopped")
		return err
	})
	return g.Wait()
}

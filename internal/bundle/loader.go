// Package bundle loads the shared checklist and audit snapshot through the
// TTL cache.
package bundle

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	dErrors "checkpoint/pkg/domain-errors"
)

const defaultLoadTimeout = 10 * time.Second

// TreeSource reads the checklist.
type TreeSource interface {
	LoadTree(ctx context.Context) (*checklist.Tree, error)
}

// AuditSource reads every audit with its results.
type AuditSource interface {
	ListAuditsWithResults(ctx context.Context) ([]auditmodels.Audit, error)
}

// PlanSource reads every action plan.
type PlanSource interface {
	ListActionPlans(ctx context.Context) ([]auditmodels.ActionPlan, error)
}

// Notifier tells other replicas that this one invalidated its cache.
type Notifier interface {
	Publish(ctx context.Context, reason string) error
}

// Loader owns the cache. Reads go through Load; every mutation calls
// Invalidate after its durable write.
type Loader struct {
	cache    *cache.Cache
	tree     TreeSource
	audits   AuditSource
	plans    PlanSource
	notifier Notifier
	logger   *slog.Logger
	tracer   trace.Tracer
	timeout  time.Duration
	group    singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithNotifier broadcasts invalidations to other replicas.
func WithNotifier(n Notifier) Option {
	return func(l *Loader) {
		l.notifier = n
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(l *Loader) {
		l.tracer = t
	}
}

// WithLoadTimeout bounds one fan-out load.
func WithLoadTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// New creates a Loader.
func New(c *cache.Cache, tree TreeSource, audits AuditSource, plans PlanSource, opts ...Option) *Loader {
	l := &Loader{
		cache:   c,
		tree:    tree,
		audits:  audits,
		plans:   plans,
		logger:  slog.Default(),
		tracer:  otel.Tracer("checkpoint/internal/bundle"),
		timeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the cached bundle or fetches a fresh one. Concurrent misses
// within one cache generation share one fetch; a Load that starts after an
// invalidation never joins a fetch begun before it. On any source failure
// nothing is cached and the error carries CodeUnavailable.
func (l *Loader) Load(ctx context.Context) (*cache.Bundle, error) {
	if b, ok := l.cache.Read(); ok {
		return b, nil
	}

	gen := l.cache.Generation()
	ch := l.group.DoChan(flightKey(gen), func() (any, error) {
		// Detached so one caller going away does not fail the others.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		return l.fetch(fetchCtx, gen)
	})
	select {
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "loading checklist data cancelled")
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*cache.Bundle), nil
	}
}

func flightKey(gen uint64) string {
	return "bundle:" + strconv.FormatUint(gen, 10)
}

// fetch reads every source. gen is the cache generation observed before the
// fetch was scheduled; the result is cached only if it is still current.
func (l *Loader) fetch(ctx context.Context, gen uint64) (*cache.Bundle, error) {
	ctx, span := l.tracer.Start(ctx, "bundle.fetch",
		trace.WithAttributes(attribute.Int64("bundle.generation", int64(gen))),
	)
	defer span.End()

	start := time.Now()

	var (
		tree   *checklist.Tree
		audits []auditmodels.Audit
		plans  []auditmodels.ActionPlan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.tree.LoadTree(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "checklist unavailable")
		}
		tree = t
		return nil
	})
	g.Go(func() error {
		a, err := l.audits.ListAuditsWithResults(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "audits unavailable")
		}
		audits = a
		return nil
	})
	g.Go(func() error {
		p, err := l.plans.ListActionPlans(gctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "action plans unavailable")
		}
		plans = p
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bundle load failed")
		l.logger.ErrorContext(ctx, "bundle load failed", "error", err)
		return nil, err
	}

	b := &cache.Bundle{
		Tree:              tree,
		Audits:            audits,
		ActionPlans:       plans,
		TotalRequirements: tree.TotalRequirements(),
	}
	if dups := tree.Duplicates(); len(dups) > 0 {
		l.logger.WarnContext(ctx, "checklist contains duplicate ids", "duplicates", dups)
	}
	cached := l.cache.WriteIf(gen, b)

	span.SetAttributes(
		attribute.Int("bundle.requirements", b.TotalRequirements),
		attribute.Int("bundle.audits", len(audits)),
		attribute.Int("bundle.action_plans", len(plans)),
		attribute.Bool("bundle.cached", cached),
	)
	l.logger.DebugContext(ctx, "bundle loaded",
		"requirements", b.TotalRequirements,
		"audits", len(audits),
		"action_plans", len(plans),
		"cached", cached,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// Invalidate empties the local cache and tells peers. Peer notification
// failures are logged only; the local invalidation already happened.
func (l *Loader) Invalidate(ctx context.Context, reason string) {
	l.cache.Invalidate()
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Publish(ctx, reason); err != nil {
		l.logger.WarnContext(ctx, "cache invalidation broadcast failed",
			"reason", reason,
			"error", err,
		)
	}
}

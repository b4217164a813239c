package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/teemow/inboxtriage/internal/instrumentation"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/triage"
)

// DefaultSnapshotTTL is how long a fetched snapshot is served from cache.
const DefaultSnapshotTTL = 5 * time.Minute

// ErrShutdown is returned by ServerContext operations after Shutdown.
var ErrShutdown = errors.New("server context is shut down")

// Config configures a ServerContext.
type Config struct {
	// Source produces mailbox snapshots. Required.
	Source mailbox.Source

	// Classifier categorizes ad-hoc text. Defaults to triage.DefaultClassifier.
	Classifier *triage.Classifier

	// DemoMode makes smart folders and stats answer from the demo fixtures.
	DemoMode bool

	// DefaultAccount is used when a request names no account.
	DefaultAccount string

	// SnapshotTTL bounds the age of cached snapshots. Zero means DefaultSnapshotTTL.
	SnapshotTTL time.Duration

	Logger *slog.Logger
}

// ServerContext holds the state shared by all MCP tools: the mailbox
// source, a per-account snapshot cache and per-account sender selections.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	source         mailbox.Source
	classifier     *triage.Classifier
	demoMode       bool
	defaultAccount string
	ttl            time.Duration
	logger         *slog.Logger
	now            func() time.Time

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	fetches singleflight.Group

	mu         sync.RWMutex
	snapshots  map[string]*mailbox.Snapshot
	selections map[string]triage.IDSet
	shutdown   bool
}

// NewServerContext creates a new server context. The returned context is
// cancelled by Shutdown.
func NewServerContext(ctx context.Context, cfg Config) (*ServerContext, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("mailbox source is required")
	}
	if cfg.Classifier == nil {
		cfg.Classifier = triage.DefaultClassifier()
	}
	if cfg.DefaultAccount == "" {
		cfg.DefaultAccount = "default"
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = DefaultSnapshotTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:            shutdownCtx,
		cancel:         cancel,
		source:         cfg.Source,
		classifier:     cfg.Classifier,
		demoMode:       cfg.DemoMode,
		defaultAccount: cfg.DefaultAccount,
		ttl:            cfg.SnapshotTTL,
		logger:         logging.WithSource(cfg.Logger, cfg.Source.Name()),
		now:            time.Now,
		snapshots:      make(map[string]*mailbox.Snapshot),
		selections:     make(map[string]triage.IDSet),
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Classifier returns the configured category classifier.
func (sc *ServerContext) Classifier() *triage.Classifier {
	return sc.classifier
}

// DemoMode reports whether demo fixtures replace live data.
func (sc *ServerContext) DemoMode() bool {
	return sc.demoMode
}

// SourceName returns the name of the mailbox source.
func (sc *ServerContext) SourceName() string {
	return sc.source.Name()
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Account returns account, or the default account when account is empty.
func (sc *ServerContext) Account(account string) string {
	if account == "" {
		return sc.defaultAccount
	}
	return account
}

// SetMetrics sets the metrics recorder used for fetch, cache and tool metrics.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when none is configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the tool invocation audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when none is configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// RecordOperation records a pipeline operation and its result size on the
// metrics, the current span and the debug log.
func (sc *ServerContext) RecordOperation(ctx context.Context, operation string, items int) {
	sc.Metrics().RecordPipelineOperation(ctx, operation, items)
	instrumentation.AddSpanEvent(trace.SpanFromContext(ctx), "pipeline."+operation,
		instrumentation.NewSpanAttributeBuilder().WithOperation(operation).Build()...)
	logging.WithOperation(sc.logger, operation).Debug("pipeline operation", logging.Count(items))
}

// Snapshot returns the mailbox snapshot for account, fetching it from the
// source when there is no cached snapshot younger than the TTL. Concurrent
// callers for the same account share one fetch.
func (sc *ServerContext) Snapshot(ctx context.Context, account string) (*mailbox.Snapshot, error) {
	account = sc.Account(account)

	sc.mu.RLock()
	if sc.shutdown {
		sc.mu.RUnlock()
		return nil, ErrShutdown
	}
	cached, ok := sc.snapshots[account]
	metrics := sc.metrics
	sc.mu.RUnlock()

	if ok && cached.Age(sc.now()) < sc.ttl {
		metrics.RecordSnapshotCache(ctx, instrumentation.CacheHit)
		return cached, nil
	}
	metrics.RecordSnapshotCache(ctx, instrumentation.CacheMiss)

	return sc.fetch(ctx, account)
}

// Refresh drops the cached snapshot for account and fetches a new one.
func (sc *ServerContext) Refresh(ctx context.Context, account string) (*mailbox.Snapshot, error) {
	account = sc.Account(account)

	ctx, span := instrumentation.StartSpan(ctx, "snapshot.refresh",
		instrumentation.NewSpanAttributeBuilder().WithAccount(account).Build()...)
	defer span.End()

	sc.Invalidate(account)
	instrumentation.AddSpanEvent(span, "cache_invalidated")

	snap, err := sc.fetch(ctx, account)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	instrumentation.SetSpanSuccess(span)
	return snap, nil
}

// Invalidate drops the cached snapshot for account.
func (sc *ServerContext) Invalidate(account string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.snapshots, sc.Account(account))
}

// fetch joins or starts the in-flight fetch for account. The shared fetch
// keeps the starting caller's context values but not its cancellation; it
// stops only on Shutdown. Each caller stops waiting when its own ctx ends.
func (sc *ServerContext) fetch(ctx context.Context, account string) (*mailbox.Snapshot, error) {
	results := sc.fetches.DoChan(account, func() (any, error) {
		fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(sc.ctx, cancel)
		defer stop()

		return sc.fetchUncached(fetchCtx, account)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to fetch snapshot for account %s: %w", account, ctx.Err())
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			sc.logger.Debug("shared in-flight snapshot fetch", logging.Account(account))
		}
		return res.Val.(*mailbox.Snapshot), nil
	}
}

func (sc *ServerContext) fetchUncached(ctx context.Context, account string) (*mailbox.Snapshot, error) {
	source := sc.source.Name()
	ctx, span := instrumentation.StartMailboxFetchSpan(ctx, source, account)
	defer span.End()

	start := sc.now()
	snap, err := sc.source.Snapshot(ctx, account)
	duration := sc.now().Sub(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	sc.Metrics().RecordMailboxFetch(ctx, source, status, duration)

	if err != nil {
		instrumentation.SetSpanError(span, err)
		sc.logger.Warn("mailbox fetch failed",
			logging.Account(account),
			logging.Duration(duration),
			logging.Err(err))
		return nil, fmt.Errorf("failed to fetch snapshot for account %s: %w", account, err)
	}
	instrumentation.SetSpanSuccess(span)

	sc.logger.Info("mailbox snapshot fetched",
		logging.Account(account),
		logging.Count(len(snap.Messages)),
		logging.Duration(duration))

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shutdown {
		return nil, ErrShutdown
	}
	sc.snapshots[account] = snap
	return snap, nil
}

// CachedAccounts returns the accounts with a cached snapshot, sorted.
func (sc *ServerContext) CachedAccounts() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	accounts := lo.Keys(sc.snapshots)
	slices.Sort(accounts)
	return accounts
}

// Selection returns a copy of the selected sender ids for account.
func (sc *ServerContext) Selection(account string) triage.IDSet {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.selections[sc.Account(account)].Clone()
}

// ToggleSelection toggles each id in the sender selection of account and
// returns the resulting selection.
func (sc *ServerContext) ToggleSelection(account string, ids ...string) triage.IDSet {
	account = sc.Account(account)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	selection := sc.selections[account]
	for _, id := range ids {
		selection.Toggle(id)
	}
	sc.selections[account] = selection
	return selection.Clone()
}

// ClearSelection empties the sender selection of account.
func (sc *ServerContext) ClearSelection(account string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.selections, sc.Account(account))
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and drops cached state.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.snapshots = make(map[string]*mailbox.Snapshot)
	sc.selections = make(map[string]triage.IDSet)
	sc.cancel()
	return nil
}

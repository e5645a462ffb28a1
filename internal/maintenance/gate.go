package maintenance

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ariafatah0711/ctfs-sub001/internal/clock"
	"github.com/ariafatah0711/ctfs-sub001/internal/domain"
	"github.com/ariafatah0711/ctfs-sub001/internal/observability/metrics"
)

const (
	defaultTTL          = 30 * time.Second
	defaultProbeTimeout = 5 * time.Second
)

// Prober performs a minimal read against the backend. A nil error means the
// backend answered normally.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error {
	return f(ctx)
}

// Cache holds the last probed status. Readers and writers swap whole
// records, so overlapping checks see either the old or the new status.
type Cache struct {
	status atomic.Pointer[domain.MaintenanceStatus]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Load returns the cached status, if any.
func (c *Cache) Load() (domain.MaintenanceStatus, bool) {
	s := c.status.Load()
	if s == nil {
		return domain.MaintenanceStatus{}, false
	}
	return *s, true
}

// Store replaces the cached status.
func (c *Cache) Store(s domain.MaintenanceStatus) {
	c.status.Store(&s)
}

// Gate decides whether requests should see the maintenance page.
type Gate struct {
	mode         Mode
	prober       Prober
	cache        *Cache
	clock        clock.Clock
	classifier   *Classifier
	ttl          time.Duration
	probeTimeout time.Duration
	logger       *zap.Logger
}

type GateOption func(*Gate)

// WithCache shares an existing cache with the gate.
func WithCache(c *Cache) GateOption {
	return func(g *Gate) {
		if c != nil {
			g.cache = c
		}
	}
}

// WithClock overrides the clock used for TTL checks.
func WithClock(clk clock.Clock) GateOption {
	return func(g *Gate) {
		if clk != nil {
			g.clock = clk
		}
	}
}

// WithTTL overrides how long a probe result is reused.
func WithTTL(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.ttl = d
		}
	}
}

// WithProbeTimeout bounds each probe.
func WithProbeTimeout(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.probeTimeout = d
		}
	}
}

// WithClassifier replaces the default error rules.
func WithClassifier(c *Classifier) GateOption {
	return func(g *Gate) {
		if c != nil {
			g.classifier = c
		}
	}
}

// WithLogger sets the logger for probe failures.
func WithLogger(logger *zap.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGate builds a gate for mode. A prober is required in auto mode.
func NewGate(mode Mode, prober Prober, opts ...GateOption) (*Gate, error) {
	switch mode {
	case ModeOff, ModeManualOn:
	case ModeAuto:
		if prober == nil {
			return nil, errors.New("maintenance: auto mode requires a prober")
		}
	default:
		return nil, fmt.Errorf("maintenance: unknown mode %q", mode)
	}

	g := &Gate{
		mode:         mode,
		prober:       prober,
		cache:        NewCache(),
		clock:        clock.NewSystem(),
		classifier:   NewClassifier(nil),
		ttl:          defaultTTL,
		probeTimeout: defaultProbeTimeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Mode reports the configured mode.
func (g *Gate) Mode() Mode {
	return g.mode
}

// Check returns the current maintenance status. It never fails: probe
// errors are folded into the result.
func (g *Gate) Check(ctx context.Context) domain.MaintenanceStatus {
	switch g.mode {
	case ModeManualOn:
		return domain.MaintenanceStatus{Active: true, ErrorType: domain.MaintenanceErrorManual, CheckedAt: g.clock.Now()}
	case ModeAuto:
	default:
		return domain.MaintenanceStatus{Active: false, ErrorType: domain.MaintenanceErrorNone, CheckedAt: g.clock.Now()}
	}

	now := g.clock.Now()
	if cached, ok := g.cache.Load(); ok && now.Sub(cached.CheckedAt) < g.ttl {
		metrics.IncMaintenanceCacheHit()
		return cached
	}

	outcome := g.probe(ctx)
	status := domain.MaintenanceStatus{CheckedAt: now}
	if outcome == OutcomeConnectivityFailure {
		status.Active = true
		status.ErrorType = domain.MaintenanceErrorDatabase
	}
	g.cache.Store(status)
	metrics.SetMaintenanceActive(status.Active, string(status.ErrorType))
	return status
}

func (g *Gate) probe(ctx context.Context) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	// Caller cancellation is ignored; only the probe timeout applies.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.probeTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("maintenance probe panic: %v", r)
			}
		}()
		done <- g.prober.Probe(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	outcome := g.classifier.Classify(err)
	metrics.ObserveMaintenanceProbe(outcome.String(), time.Since(start))
	if err != nil {
		g.logger.Warn("maintenance probe failed",
			zap.Error(err),
			zap.String("outcome", outcome.String()),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return outcome
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"QuantAI/internal/domain/models"
	drepo "QuantAI/internal/domain/repository"
	applogger "QuantAI/pkg/logger"
)

// SignalGenerator produces one Outcome per form. Implemented by SignalContract.
type SignalGenerator interface {
	Generate(ctx context.Context, in models.UserInput) models.Outcome
}

// Controller owns session state. All mutations run load-modify-save under a per-session lock.
type Controller struct {
	store     drepo.SessionStore
	gen       SignalGenerator
	pub       drepo.SignalPublisher
	metrics   drepo.Metrics
	l         *applogger.Logger
	locks     *keyedMutex
	staleBusy time.Duration
	now       func() time.Time
}

// NewController creates a Controller. staleBusy releases a busy flag older than it; zero keeps it.
func NewController(
	store drepo.SessionStore,
	gen SignalGenerator,
	pub drepo.SignalPublisher,
	metrics drepo.Metrics,
	staleBusy time.Duration,
) *Controller {
	return &Controller{
		store:     store,
		gen:       gen,
		pub:       pub,
		metrics:   metrics,
		locks:     newKeyedMutex(),
		staleBusy: staleBusy,
		now:       time.Now,
	}
}

// SetLogger injects a structured logger.
func (c *Controller) SetLogger(l *applogger.Logger) { c.l = l }

// Snapshot returns the session state, or the default state for a new session.
func (c *Controller) Snapshot(ctx context.Context, sid string) (models.SessionState, error) {
	unlock := c.locks.Lock(sid)
	defer unlock()
	return c.load(ctx, sid)
}

// UpdateInput merges a partial form update.
func (c *Controller) UpdateInput(ctx context.Context, sid string, p models.UpdateInputRequest) (models.SessionState, error) {
	return c.mutate(ctx, sid, func(st models.SessionState) (models.SessionState, error) {
		return ApplyInput(st, p), nil
	})
}

// SelectMarket switches market type and resets the symbol.
func (c *Controller) SelectMarket(ctx context.Context, sid string, m models.MarketType) (models.SessionState, error) {
	if !models.IsValidMarketType(m) {
		return models.SessionState{}, fmt.Errorf("unknown market type %q", m)
	}
	return c.mutate(ctx, sid, func(st models.SessionState) (models.SessionState, error) {
		return ApplyMarket(st, m), nil
	})
}

// Clear empties the signal feed.
func (c *Controller) Clear(ctx context.Context, sid string) (models.SessionState, error) {
	return c.mutate(ctx, sid, func(st models.SessionState) (models.SessionState, error) {
		return ClearSignals(st), nil
	})
}

// Reset forgets the session. The next read starts from the default state.
func (c *Controller) Reset(ctx context.Context, sid string) (models.SessionState, error) {
	unlock := c.locks.Lock(sid)
	defer unlock()

	st, err := c.load(ctx, sid)
	if err != nil {
		return st, err
	}
	if st.Busy {
		return st, ErrBusy
	}
	if err := c.store.Delete(ctx, sid); err != nil {
		return st, fmt.Errorf("delete session: %w", err)
	}
	return models.NewSessionState(), nil
}

// Submit sends the current form to the backend and records the outcome.
// The lock is not held during the backend call; the persisted busy flag rejects overlaps.
func (c *Controller) Submit(ctx context.Context, sid string) (models.Outcome, models.SessionState, error) {
	var in models.UserInput
	_, err := c.mutate(ctx, sid, func(st models.SessionState) (models.SessionState, error) {
		st = releaseStale(st, c.now(), c.staleBusy)
		next, err := BeginSubmit(st, c.now())
		if err != nil {
			return st, err
		}
		in = next.Input
		return next, nil
	})
	if err != nil {
		return models.Outcome{}, models.SessionState{}, err
	}

	// in-flight calls finish even if the caller goes away
	callCtx := context.WithoutCancel(ctx)
	out := c.gen.Generate(callCtx, in)

	st, err := c.mutate(callCtx, sid, func(st models.SessionState) (models.SessionState, error) {
		return CompleteSubmit(st, out), nil
	})
	if err != nil {
		return out, models.SessionState{}, err
	}

	if c.l != nil {
		c.l.Info("signal.submit completed",
			applogger.String("session", sid),
			applogger.String("kind", string(out.Kind)),
			applogger.String("market", string(in.MarketType)),
			applogger.String("symbol", in.Symbol),
		)
	}
	c.publish(callCtx, sid, in, out)
	return out, st, nil
}

func (c *Controller) publish(ctx context.Context, sid string, in models.UserInput, out models.Outcome) {
	if c.pub == nil {
		return
	}
	ev := models.SignalEvent{
		SessionID:  sid,
		Kind:       out.Kind,
		MarketType: in.MarketType,
		Symbol:     in.Symbol,
		Signal:     out.Signal,
		Message:    out.Message,
		At:         c.now().UTC(),
	}
	err := c.pub.Publish(ctx, ev)
	if c.metrics != nil {
		c.metrics.RecordEventPublished(err == nil)
	}
	if err != nil && c.l != nil {
		c.l.Warn("signal.publish failed", applogger.String("session", sid), applogger.Error(err))
	}
}

func (c *Controller) mutate(
	ctx context.Context,
	sid string,
	fn func(models.SessionState) (models.SessionState, error),
) (models.SessionState, error) {
	unlock := c.locks.Lock(sid)
	defer unlock()

	st, err := c.load(ctx, sid)
	if err != nil {
		return st, err
	}
	next, err := fn(st)
	if err != nil {
		return st, err
	}
	if err := c.store.Save(ctx, sid, next); err != nil {
		return st, fmt.Errorf("save session: %w", err)
	}
	return next, nil
}

func (c *Controller) load(ctx context.Context, sid string) (models.SessionState, error) {
	st, found, err := c.store.Load(ctx, sid)
	if err != nil {
		return models.SessionState{}, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return models.NewSessionState(), nil
	}
	if st.Signals == nil {
		st.Signals = []models.TradingSignal{}
	}
	return st, nil
}

// keyedMutex hands out one mutex per key and forgets it when no one holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

package usecase

import (
	"context"
	"sync"

	"QuantAI/internal/domain/models"
)

type stubBackend struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []models.UserInput
	// block, when set, is read before returning
	block chan struct{}
}

func (b *stubBackend) Generate(ctx context.Context, in models.UserInput) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, in)
	b.mu.Unlock()
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return b.text, b.err
}

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type stubMetrics struct {
	mu       sync.Mutex
	outcomes map[models.OutcomeKind]int
	errs     map[string]int
	events   map[bool]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{
		outcomes: map[models.OutcomeKind]int{},
		errs:     map[string]int{},
		events:   map[bool]int{},
	}
}

func (m *stubMetrics) RecordOutcome(kind models.OutcomeKind, _ models.MarketType) {
	m.mu.Lock()
	m.outcomes[kind]++
	m.mu.Unlock()
}

func (m *stubMetrics) RecordBackendError(kind string) {
	m.mu.Lock()
	m.errs[kind]++
	m.mu.Unlock()
}

func (m *stubMetrics) RecordBackendLatency(float64) {}

func (m *stubMetrics) RecordEventPublished(ok bool) {
	m.mu.Lock()
	m.events[ok]++
	m.mu.Unlock()
}

type memStore struct {
	mu sync.Mutex
	m  map[string]models.SessionState
}

func newMemStore() *memStore { return &memStore{m: map[string]models.SessionState{}} }

func (s *memStore) Load(_ context.Context, sid string) (models.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[sid]
	return st, ok, nil
}

func (s *memStore) Save(_ context.Context, sid string, st models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = st
	return nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []models.SignalEvent
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, ev models.SignalEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *stubPublisher) Close() error { return nil }

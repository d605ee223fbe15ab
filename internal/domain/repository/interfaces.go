package repository

import (
	"context"

	"QuantAI/internal/domain/models"
)

// SessionStore keeps per-session state for the lifetime of the session.
// Load reports found=false for unknown or expired sessions.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (models.SessionState, bool, error)
	Save(ctx context.Context, sessionID string, st models.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// SignalPublisher fans out completed requests to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, ev models.SignalEvent) error
	Close() error
}

type Metrics interface {
	RecordOutcome(kind models.OutcomeKind, market models.MarketType)
	RecordBackendError(kind string)
	RecordBackendLatency(seconds float64)
	RecordEventPublished(ok bool)
}

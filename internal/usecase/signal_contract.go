package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"QuantAI/internal/domain/models"
	drepo "QuantAI/internal/domain/repository"
	domsvc "QuantAI/internal/domain/service"
	applogger "QuantAI/pkg/logger"
)

// GenericErrorMessage is shown for every backend fault. Details go to the log only.
const GenericErrorMessage = "I encountered an error processing the market data. This could be due to connectivity or symbol recognition issues."

// TimestampLayout is the human-readable receipt time shown on a signal card.
const TimestampLayout = "3:04:05 PM"

// A no-trade reason containing any of these asks the user for input.
var clarificationMarkers = []string{"?", "clarify", "please provide"}

// Backend error kinds, used as metric labels.
const (
	errKindTransport = "transport"
	errKindEmpty     = "empty_response"
	errKindSchema    = "schema_violation"
)

// ErrSchemaViolation marks backend text that is not the required JSON object.
var ErrSchemaViolation = errors.New("response does not match schema")

// SignalContract turns a form into an Outcome. It never returns an error: faults become
// ErrorOutcome, unusable text becomes a clarification.
type SignalContract struct {
	backend domsvc.SignalBackend
	metrics drepo.Metrics
	timeout time.Duration
	l       *applogger.Logger
	now     func() time.Time
}

// NewSignalContract creates the contract. timeout bounds one backend call; zero disables it.
func NewSignalContract(backend domsvc.SignalBackend, metrics drepo.Metrics, timeout time.Duration) *SignalContract {
	return &SignalContract{backend: backend, metrics: metrics, timeout: timeout, now: time.Now}
}

// SetLogger injects a structured logger.
func (c *SignalContract) SetLogger(l *applogger.Logger) { c.l = l }

// Generate runs one request/response negotiation with the backend.
func (c *SignalContract) Generate(ctx context.Context, in models.UserInput) models.Outcome {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.backend.Generate(ctx, in)
	c.metrics.RecordBackendLatency(time.Since(start).Seconds())

	var out models.Outcome
	switch {
	case err != nil:
		kind := errKindTransport
		if errors.Is(err, domsvc.ErrEmptyResponse) {
			kind = errKindEmpty
		}
		c.metrics.RecordBackendError(kind)
		if c.l != nil {
			c.l.Error("signal.generate backend error",
				applogger.String("kind", kind),
				applogger.String("symbol", in.Symbol),
				applogger.Error(err),
			)
		}
		out = models.ErrorOutcome(GenericErrorMessage)
	case strings.TrimSpace(text) == "":
		c.metrics.RecordBackendError(errKindEmpty)
		if c.l != nil {
			c.l.Error("signal.generate backend error", applogger.String("kind", errKindEmpty), applogger.String("symbol", in.Symbol))
		}
		out = models.ErrorOutcome(GenericErrorMessage)
	default:
		out = c.Normalize(text, in)
	}

	c.metrics.RecordOutcome(out.Kind, in.MarketType)
	return out
}

// Normalize classifies backend text as a signal or a clarification.
func (c *SignalContract) Normalize(text string, in models.UserInput) models.Outcome {
	sig, err := decodeSignal(text)
	if err != nil {
		c.metrics.RecordBackendError(errKindSchema)
		if c.l != nil {
			c.l.Warn("signal.normalize schema violation", applogger.String("symbol", in.Symbol), applogger.Error(err))
		}
		return models.ClarificationOutcome(strings.TrimSpace(text))
	}

	if sig.Direction == models.DirectionNoTrade && asksForInput(sig.Reason) {
		return models.ClarificationOutcome(sig.Reason)
	}
	if c.l != nil {
		c.l.Debug("signal.normalize decoded",
			applogger.String("symbol", in.Symbol),
			applogger.Any("targets", sig.Targets),
		)
	}

	now := c.now()
	sig.Timestamp = now.Format(TimestampLayout)
	sig.ReceivedAt = now
	sig.Symbol = in.Symbol
	return models.SignalOutcome(sig)
}

func asksForInput(reason string) bool {
	r := strings.ToLower(reason)
	for _, m := range clarificationMarkers {
		if strings.Contains(r, m) {
			return true
		}
	}
	return false
}

// wireSignal mirrors the response schema. Pointers detect missing keys.
type wireSignal struct {
	Direction        *string   `json:"direction"`
	EntryZone        *string   `json:"entry_zone"`
	Stoploss         *string   `json:"stoploss"`
	Targets          *[]string `json:"targets"`
	PositionSizeHint *string   `json:"position_size_hint"`
	RRRatio          *string   `json:"rr_ratio"`
	Reason           *string   `json:"reason"`
	Warnings         *string   `json:"warnings"`
}

// decodeSignal accepts exactly one object carrying all required keys. Other keys, such as
// an echoed symbol or timestamp, are ignored; the caller stamps its own.
func decodeSignal(text string) (models.TradingSignal, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var w wireSignal
	if err := dec.Decode(&w); err != nil {
		return models.TradingSignal{}, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.TradingSignal{}, fmt.Errorf("%w: trailing data after object", ErrSchemaViolation)
	}

	missing := make([]string, 0)
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("direction", w.Direction != nil)
	check("entry_zone", w.EntryZone != nil)
	check("stoploss", w.Stoploss != nil)
	check("targets", w.Targets != nil)
	check("position_size_hint", w.PositionSizeHint != nil)
	check("rr_ratio", w.RRRatio != nil)
	check("reason", w.Reason != nil)
	check("warnings", w.Warnings != nil)
	if len(missing) > 0 {
		return models.TradingSignal{}, fmt.Errorf("%w: missing %s", ErrSchemaViolation, strings.Join(missing, ", "))
	}

	dir := models.Direction(strings.ToLower(strings.TrimSpace(*w.Direction)))
	if !dir.IsValid() {
		return models.TradingSignal{}, fmt.Errorf("%w: direction %q", ErrSchemaViolation, *w.Direction)
	}

	return models.TradingSignal{
		Direction:        dir,
		EntryZone:        *w.EntryZone,
		Stoploss:         *w.Stoploss,
		Targets:          *w.Targets,
		PositionSizeHint: *w.PositionSizeHint,
		RRRatio:          *w.RRRatio,
		Reason:           *w.Reason,
		Warnings:         *w.Warnings,
	}, nil
}

package usecase

import (
	"errors"
	"strings"
	"time"

	"QuantAI/internal/domain/models"
)

// ErrBusy is returned when a submission is already in flight for the session.
var ErrBusy = errors.New("signal request already in progress")

// State transitions. Each returns a new state and never mutates its argument's slices.

// ApplyInput merges the non-nil fields of the patch into the form.
func ApplyInput(st models.SessionState, p models.UpdateInputRequest) models.SessionState {
	in := st.Input
	if p.MarketType != nil {
		m := models.MarketType(*p.MarketType)
		if m != in.MarketType && p.Symbol == nil {
			in.Symbol = models.DefaultSymbol(m)
		}
		in.MarketType = m
	}
	if p.Symbol != nil {
		in.Symbol = strings.ToUpper(*p.Symbol)
	}
	if p.Timeframe != nil {
		in.Timeframe = *p.Timeframe
	}
	if p.Capital != nil {
		in.Capital = *p.Capital
	}
	if p.Risk != nil {
		in.Risk = *p.Risk
	}
	if p.HTFTrend != nil {
		in.HTFTrend = *p.HTFTrend
	}
	st.Input = in
	return st
}

// ApplyMarket switches market and resets the symbol to the market's first preset.
func ApplyMarket(st models.SessionState, m models.MarketType) models.SessionState {
	st.Input.MarketType = m
	st.Input.Symbol = models.DefaultSymbol(m)
	return st
}

// BeginSubmit moves an idle session to busy and clears the clarification.
func BeginSubmit(st models.SessionState, now time.Time) (models.SessionState, error) {
	if st.Busy {
		return st, ErrBusy
	}
	st.Busy = true
	st.BusySince = &now
	st.Clarification = nil
	return st, nil
}

// CompleteSubmit applies the outcome and returns the session to idle.
func CompleteSubmit(st models.SessionState, out models.Outcome) models.SessionState {
	switch out.Kind {
	case models.OutcomeSignal:
		if out.Signal != nil {
			signals := make([]models.TradingSignal, 0, len(st.Signals)+1)
			signals = append(signals, *out.Signal)
			st.Signals = append(signals, st.Signals...)
		}
	case models.OutcomeClarification, models.OutcomeError:
		msg := out.Message
		st.Clarification = &msg
	}
	st.Busy = false
	st.BusySince = nil
	return st
}

// ClearSignals empties the feed. The clarification slot is left as is.
func ClearSignals(st models.SessionState) models.SessionState {
	st.Signals = []models.TradingSignal{}
	return st
}

// releaseStale drops a busy flag left behind by a request that never completed.
func releaseStale(st models.SessionState, now time.Time, after time.Duration) models.SessionState {
	if !st.Busy || after <= 0 || st.BusySince == nil {
		return st
	}
	if now.Sub(*st.BusySince) > after {
		st.Busy = false
		st.BusySince = nil
	}
	return st
}

package models

import "time"

// SessionState is everything one form session holds. Signals are newest first.
type SessionState struct {
	Input         UserInput       `json:"input"`
	Signals       []TradingSignal `json:"signals"`
	Clarification *string         `json:"clarification,omitempty"`
	Busy          bool            `json:"busy"`
	BusySince     *time.Time      `json:"busy_since,omitempty"`
}

// NewSessionState returns the state of a fresh session.
func NewSessionState() SessionState {
	return SessionState{Input: DefaultUserInput(), Signals: []TradingSignal{}}
}

// SignalEvent is the fan-out record emitted for every completed request.
type SignalEvent struct {
	SessionID  string         `json:"session_id"`
	Kind       OutcomeKind    `json:"kind"`
	MarketType MarketType     `json:"market_type"`
	Symbol     string         `json:"symbol"`
	Signal     *TradingSignal `json:"signal,omitempty"`
	Message    string         `json:"message,omitempty"`
	At         time.Time      `json:"at"`
}

package models

// OutcomeKind tags the result of one signal request.
type OutcomeKind string

const (
	OutcomeSignal        OutcomeKind = "signal"
	OutcomeClarification OutcomeKind = "clarification"
	OutcomeError         OutcomeKind = "error"
)

// Outcome is the single result type of a signal request. Signal is set only for
// OutcomeSignal; Message is set for the other two kinds.
type Outcome struct {
	Kind    OutcomeKind    `json:"kind"`
	Signal  *TradingSignal `json:"signal,omitempty"`
	Message string         `json:"message,omitempty"`
}

func SignalOutcome(s TradingSignal) Outcome {
	return Outcome{Kind: OutcomeSignal, Signal: &s}
}

func ClarificationOutcome(msg string) Outcome {
	return Outcome{Kind: OutcomeClarification, Message: msg}
}

func ErrorOutcome(msg string) Outcome {
	return Outcome{Kind: OutcomeError, Message: msg}
}

package api

import (
	"QuantAI/internal/domain/models"
	"QuantAI/internal/services/sizing"
)

// SignalCard is one feed entry as the presentation layer renders it.
type SignalCard struct {
	models.TradingSignal
	IsTrade   bool   `json:"is_trade"`
	LocalSize string `json:"local_size"`
}

// StateView is the session state as returned to clients.
type StateView struct {
	Input         models.UserInput `json:"input"`
	Signals       []SignalCard     `json:"signals"`
	Clarification *string          `json:"clarification"`
	Busy          bool             `json:"busy"`
}

// OutcomeView is the result of one submission.
type OutcomeView struct {
	Kind    models.OutcomeKind `json:"kind"`
	Signal  *SignalCard        `json:"signal,omitempty"`
	Message string             `json:"message,omitempty"`
}

type SubmitView struct {
	Outcome OutcomeView `json:"outcome"`
	State   StateView   `json:"state"`
}

type MarketView struct {
	MarketType models.MarketType `json:"market_type"`
	Presets    []string          `json:"presets"`
	Allowed    []string          `json:"allowed"`
}

type MarketsView struct {
	Markets     []MarketView `json:"markets"`
	Timeframes  []string     `json:"timeframes"`
	TrendBiases []string     `json:"trend_biases"`
}

// NewSignalCard blanks the trade fields of a no-trade signal.
func NewSignalCard(in models.UserInput, s models.TradingSignal) SignalCard {
	card := SignalCard{TradingSignal: s, IsTrade: s.IsTrade()}
	if !card.IsTrade {
		card.EntryZone = ""
		card.Stoploss = ""
		card.Targets = []string{}
		card.PositionSizeHint = ""
		card.RRRatio = ""
		return card
	}
	if card.Targets == nil {
		card.Targets = []string{}
	}
	card.LocalSize = sizing.EstimateForSignal(in, s)
	return card
}

func newStateView(st models.SessionState) StateView {
	cards := make([]SignalCard, 0, len(st.Signals))
	for _, s := range st.Signals {
		cards = append(cards, NewSignalCard(st.Input, s))
	}
	return StateView{
		Input:         st.Input,
		Signals:       cards,
		Clarification: st.Clarification,
		Busy:          st.Busy,
	}
}

func newOutcomeView(in models.UserInput, out models.Outcome) OutcomeView {
	v := OutcomeView{Kind: out.Kind, Message: out.Message}
	if out.Signal != nil {
		card := NewSignalCard(in, *out.Signal)
		v.Signal = &card
	}
	return v
}

func newMarketsView() MarketsView {
	markets := make([]MarketView, 0, len(models.MarketTypes))
	for _, m := range models.MarketTypes {
		markets = append(markets, MarketView{
			MarketType: m,
			Presets:    models.SymbolPresets[m],
			Allowed:    models.AllowedSymbols[m],
		})
	}
	return MarketsView{
		Markets:     markets,
		Timeframes:  models.Timeframes,
		TrendBiases: models.TrendBiases,
	}
}

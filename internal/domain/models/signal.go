package models

import "time"

// Direction of a trading signal.
type Direction string

const (
	DirectionBuy     Direction = "buy"
	DirectionSell    Direction = "sell"
	DirectionNoTrade Direction = "no-trade"
)

// IsValid reports whether d is one of the three known directions.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionBuy, DirectionSell, DirectionNoTrade:
		return true
	default:
		return false
	}
}

// UserInput is the form submitted for one signal request.
type UserInput struct {
	MarketType MarketType `json:"market_type"`
	Symbol     string     `json:"symbol"`
	Timeframe  string     `json:"timeframe"`
	Capital    string     `json:"capital"`
	Risk       string     `json:"risk"`
	HTFTrend   string     `json:"htf_trend"`
}

// DefaultUserInput is the form a new session starts with.
func DefaultUserInput() UserInput {
	return UserInput{
		MarketType: MarketCrypto,
		Symbol:     "BTCUSDT",
		Timeframe:  "1H",
		Capital:    "10000",
		Risk:       "1",
		HTFTrend:   "Bullish",
	}
}

// TradingSignal is a normalized backend recommendation.
// Symbol always comes from the request, never from the model.
type TradingSignal struct {
	Direction        Direction `json:"direction"`
	EntryZone        string    `json:"entry_zone"`
	Stoploss         string    `json:"stoploss"`
	Targets          []string  `json:"targets"`
	PositionSizeHint string    `json:"position_size_hint"`
	RRRatio          string    `json:"rr_ratio"`
	Reason           string    `json:"reason"`
	Warnings         string    `json:"warnings"`
	Timestamp        string    `json:"timestamp"`
	ReceivedAt       time.Time `json:"received_at"`
	Symbol           string    `json:"symbol"`
}

// IsTrade is false for no-trade signals, whose trade fields carry no meaning.
func (s TradingSignal) IsTrade() bool { return s.Direction != DirectionNoTrade }

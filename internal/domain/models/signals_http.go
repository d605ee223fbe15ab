package models

// Requests for the signal desk HTTP endpoints.

// UpdateInputRequest patches the session form. Nil fields are left untouched.
// Capital and risk are free text; the backend asks when they are missing.
type UpdateInputRequest struct {
	MarketType *string `json:"market_type" validate:"omitempty,oneof=Crypto Forex Commodity"`
	Symbol     *string `json:"symbol" validate:"omitempty,max=20"`
	Timeframe  *string `json:"timeframe" validate:"omitempty,max=10"`
	Capital    *string `json:"capital" validate:"omitempty,max=32"`
	Risk       *string `json:"risk" validate:"omitempty,max=16"`
	HTFTrend   *string `json:"htf_trend" validate:"omitempty,max=32"`
}

type SelectMarketRequest struct {
	MarketType string `json:"market_type" validate:"required,oneof=Crypto Forex Commodity"`
}

type ListSignalsRequest struct {
	Limit int `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=500"`
}

package models

// MarketType is the market cluster a symbol belongs to.
type MarketType string

const (
	MarketCrypto    MarketType = "Crypto"
	MarketForex     MarketType = "Forex"
	MarketCommodity MarketType = "Commodity"
)

// MarketTypes lists supported markets in display order.
var MarketTypes = []MarketType{MarketCrypto, MarketForex, MarketCommodity}

// SymbolPresets are the quick-pick symbols offered per market. The first entry is the
// symbol selected when the market changes.
var SymbolPresets = map[MarketType][]string{
	MarketCrypto:    {"BTCUSDT", "ETHUSDT", "SOLUSDT"},
	MarketForex:     {"EURUSD", "GBPUSD", "USDJPY"},
	MarketCommodity: {"XAUUSD", "XAGUSD", "USOIL"},
}

// AllowedSymbols is the per-market allow-list the backend policy enforces.
var AllowedSymbols = map[MarketType][]string{
	MarketCrypto:    {"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT"},
	MarketForex:     {"EURUSD", "GBPUSD", "USDJPY", "USDCAD", "AUDUSD", "NZDUSD"},
	MarketCommodity: {"XAUUSD", "XAGUSD", "UKOIL", "USOIL"},
}

// Timeframes offered by the form.
var Timeframes = []string{"15M", "1H", "4H", "1D"}

// TrendBiases offered by the form. Empty means no higher-timeframe filter.
var TrendBiases = []string{"Bullish", "Bearish", "Neutral", ""}

// IsValidMarketType returns true if m is a supported market.
func IsValidMarketType(m MarketType) bool {
	switch m {
	case MarketCrypto, MarketForex, MarketCommodity:
		return true
	default:
		return false
	}
}

// DefaultSymbol returns the canonical first preset for the market.
func DefaultSymbol(m MarketType) string {
	if p := SymbolPresets[m]; len(p) > 0 {
		return p[0]
	}
	return ""
}

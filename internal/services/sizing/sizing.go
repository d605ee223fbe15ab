package sizing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"QuantAI/internal/domain/models"
)

// NotAvailable is returned when a size cannot be computed.
const NotAvailable = "N/A"

// lotUnits is the size of one standard forex lot.
const lotUnits = 100000

// metalPriceFloor separates metals priced in the thousands (gold) from other commodities.
// A price proxy, not an instrument lookup.
const metalPriceFloor = 1000

var priceRe = regexp.MustCompile(`(\d+\.?\d*)`)

// CalculatePositionSize converts an account risk budget into a human-readable size.
func CalculatePositionSize(capital, riskPercent, entry, stopLoss float64, market models.MarketType) string {
	if math.IsNaN(entry) || math.IsNaN(stopLoss) || entry == stopLoss {
		return NotAvailable
	}

	riskAmount := capital * (riskPercent / 100)
	distance := math.Abs(entry - stopLoss)

	switch {
	case market == models.MarketForex:
		return fmt.Sprintf("%.2f Lots", riskAmount/(distance*lotUnits))
	case market == models.MarketCommodity && entry > metalPriceFloor:
		return fmt.Sprintf("%.2f Oz/Units", riskAmount/distance)
	default:
		return fmt.Sprintf("%.4f Units", riskAmount/distance)
	}
}

// ParsePrice extracts the first decimal number from loosely formatted text.
// Returns NaN if there is none.
func ParsePrice(text string) float64 {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// EstimateForSignal sizes a signal from the form's capital and risk strings.
// No-trade signals have no size.
func EstimateForSignal(in models.UserInput, sig models.TradingSignal) string {
	if !sig.IsTrade() {
		return ""
	}
	capital, err := strconv.ParseFloat(strings.TrimSpace(in.Capital), 64)
	if err != nil {
		return NotAvailable
	}
	risk, err := strconv.ParseFloat(strings.TrimSpace(in.Risk), 64)
	if err != nil {
		return NotAvailable
	}
	return CalculatePositionSize(capital, risk, ParsePrice(sig.EntryZone), ParsePrice(sig.Stoploss), in.MarketType)
}

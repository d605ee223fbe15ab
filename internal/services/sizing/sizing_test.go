package sizing

import (
	"math"
	"testing"

	"QuantAI/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePositionSizeNotAvailable(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name        string
		entry, stop float64
	}{
		{"entry nan", nan, 100},
		{"stop nan", 100, nan},
		{"both nan", nan, nan},
		{"equal", 100, 100},
	}
	for _, tc := range cases {
		for _, m := range models.MarketTypes {
			got := CalculatePositionSize(10000, 1, tc.entry, tc.stop, m)
			assert.Equal(t, NotAvailable, got, "%s/%s", tc.name, m)
		}
	}
}

func TestCalculatePositionSizeByMarket(t *testing.T) {
	cases := []struct {
		name   string
		market models.MarketType
		entry  float64
		stop   float64
		want   string
	}{
		{"forex lots", models.MarketForex, 1.1000, 1.0950, "0.20 Lots"},
		{"gold", models.MarketCommodity, 2350, 2340, "10.00 Oz/Units"},
		{"oil", models.MarketCommodity, 78.5, 77.5, "100.0000 Units"},
		{"commodity at floor", models.MarketCommodity, 1000, 990, "10.0000 Units"},
		{"crypto long", models.MarketCrypto, 91750, 91500, "0.4000 Units"},
		{"crypto short", models.MarketCrypto, 91500, 91750, "0.4000 Units"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculatePositionSize(10000, 1, tc.entry, tc.stop, tc.market))
		})
	}
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 91750.0, ParsePrice("91750 - 91850"))
	assert.Equal(t, 1.085, ParsePrice("around $1.085"))
	assert.Equal(t, 2345.5, ParsePrice("TP1 2345.5"))
	assert.True(t, math.IsNaN(ParsePrice("no number here")))
	assert.True(t, math.IsNaN(ParsePrice("")))
}

func TestEstimateForSignal(t *testing.T) {
	in := models.DefaultUserInput()
	sig := models.TradingSignal{
		Direction: models.DirectionBuy,
		EntryZone: "91750 - 91850",
		Stoploss:  "91500",
	}
	assert.Equal(t, "0.4000 Units", EstimateForSignal(in, sig))

	in.Capital = ""
	assert.Equal(t, NotAvailable, EstimateForSignal(in, sig))

	in = models.DefaultUserInput()
	sig.Stoploss = "n/a"
	assert.Equal(t, NotAvailable, EstimateForSignal(in, sig))

	sig.Direction = models.DirectionNoTrade
	assert.Equal(t, "", EstimateForSignal(in, sig))
}

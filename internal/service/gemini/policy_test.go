package gemini

import (
	"encoding/json"
	"testing"

	"QuantAI/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemInstructionCarriesContract(t *testing.T) {
	p, err := LoadPolicy(PolicyVersion)
	require.NoError(t, err)

	sys, err := p.SystemInstruction()
	require.NoError(t, err)

	for _, m := range models.MarketTypes {
		for _, s := range models.AllowedSymbols[m] {
			assert.Contains(t, sys, s, "allow-listed symbol %s/%s", m, s)
		}
	}
	for _, k := range ResponseKeys() {
		assert.Contains(t, sys, `"`+k+`"`)
	}
	assert.Contains(t, sys, "no-trade")
	assert.Contains(t, sys, "1:1.5")
	assert.Contains(t, sys, "win rate")
	assert.Contains(t, sys, "exactly one JSON object")
	assert.NotContains(t, sys, "{{")
}

func TestPromptEmbedsInput(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyVersion, p.Version())

	in := models.UserInput{
		MarketType: models.MarketForex,
		Symbol:     "GBPUSD",
		Timeframe:  "4H",
		Capital:    "2500",
		Risk:       "0.5",
		HTFTrend:   "Bearish",
	}
	prompt, err := p.Prompt(in)
	require.NoError(t, err)
	for _, want := range []string{"Forex", "GBPUSD", "4H", "2500 USD", "0.5%", "Bearish"} {
		assert.Contains(t, prompt, want)
	}

	in.HTFTrend = "  "
	prompt, err = p.Prompt(in)
	require.NoError(t, err)
	assert.Contains(t, prompt, "(optional): Not provided")
}

func TestLoadPolicyUnknownVersion(t *testing.T) {
	_, err := LoadPolicy("v0")
	assert.Error(t, err)
}

func TestResponseSchema(t *testing.T) {
	s := ResponseSchema()
	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, []string{
		"direction", "entry_zone", "stoploss", "targets",
		"position_size_hint", "rr_ratio", "reason", "warnings",
	}, s.Required)
	assert.Len(t, s.Properties, len(s.Required))
	assert.Equal(t, TypeArray, s.Properties["targets"].Type)
	assert.Equal(t, TypeString, s.Properties["targets"].Items.Type)
	assert.ElementsMatch(t, []string{"buy", "sell", "no-trade"}, s.Properties["direction"].Enum)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"required"`)
}

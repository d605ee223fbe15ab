package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"QuantAI/internal/domain/models"
	domsvc "QuantAI/internal/domain/service"
	applogger "QuantAI/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buyJSON = `{
  "direction": "BUY ",
  "entry_zone": "91750 - 91850",
  "stoploss": "91500",
  "targets": ["92200", "92600"],
  "position_size_hint": "0.40 BTC",
  "rr_ratio": "1:2",
  "reason": "Breakout retest on 1H with bullish HTF bias.",
  "warnings": "FOMC later today."
}`

func newContract(b *stubBackend, m *stubMetrics) *SignalContract {
	c := NewSignalContract(b, m, time.Second)
	c.now = func() time.Time { return time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC) }
	return c
}

func TestContractValidSignal(t *testing.T) {
	b := &stubBackend{text: buyJSON}
	m := newStubMetrics()
	in := models.DefaultUserInput()
	in.Symbol = "ETHUSDT"

	out := newContract(b, m).Generate(context.Background(), in)

	require.Equal(t, models.OutcomeSignal, out.Kind)
	require.NotNil(t, out.Signal)
	s := out.Signal
	assert.Equal(t, models.DirectionBuy, s.Direction)
	assert.Equal(t, "ETHUSDT", s.Symbol, "symbol comes from the request")
	assert.Equal(t, "2:05:09 PM", s.Timestamp)
	assert.Equal(t, []string{"92200", "92600"}, s.Targets)
	assert.Equal(t, "1:2", s.RRRatio)
	assert.Equal(t, 1, m.outcomes[models.OutcomeSignal])
	assert.Equal(t, []models.UserInput{in}, b.calls)
}

func TestContractNoTradeWithoutQuestionIsSignal(t *testing.T) {
	b := &stubBackend{text: `{"direction":"no-trade","entry_zone":"","stoploss":"","targets":[],
		"position_size_hint":"","rr_ratio":"","reason":"Choppy range, no edge.","warnings":""}`}
	out := newContract(b, newStubMetrics()).Generate(context.Background(), models.DefaultUserInput())

	require.Equal(t, models.OutcomeSignal, out.Kind)
	assert.False(t, out.Signal.IsTrade())
	assert.Equal(t, "BTCUSDT", out.Signal.Symbol)
}

func TestContractNoTradeAskingForInputIsClarification(t *testing.T) {
	cases := map[string]string{
		"question":       "Which exchange do you trade on?",
		"clarify":        "Please CLARIFY the timeframe.",
		"please provide": "Please provide your capital in USD.",
		"capital":        "Could you please provide your account capital?",
	}
	for name, reason := range cases {
		t.Run(name, func(t *testing.T) {
			b := &stubBackend{text: `{"direction":"no-trade","entry_zone":"","stoploss":"","targets":[],
				"position_size_hint":"","rr_ratio":"","reason":"` + reason + `","warnings":""}`}
			m := newStubMetrics()
			out := newContract(b, m).Generate(context.Background(), models.DefaultUserInput())

			assert.Equal(t, models.OutcomeClarification, out.Kind)
			assert.Equal(t, reason, out.Message)
			assert.Nil(t, out.Signal)
			assert.Equal(t, 1, m.outcomes[models.OutcomeClarification])
		})
	}
}

func TestContractEchoedSymbolAndTimestampAreOverwritten(t *testing.T) {
	b := &stubBackend{text: `{"direction":"buy","entry_zone":"91750","stoploss":"91500","targets":["92200"],
		"position_size_hint":"0.4 BTC","rr_ratio":"1:2","reason":"Retest.","warnings":"",
		"symbol":"ETHUSDT","timestamp":"yesterday","confidence":"high"}`}
	m := newStubMetrics()
	var buf bytes.Buffer
	l, err := applogger.NewWithWriter(&applogger.Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	c := newContract(b, m)
	c.SetLogger(l)

	out := c.Generate(context.Background(), models.DefaultUserInput())

	require.Equal(t, models.OutcomeSignal, out.Kind)
	require.NotNil(t, out.Signal)
	assert.Equal(t, "BTCUSDT", out.Signal.Symbol)
	assert.Equal(t, "2:05:09 PM", out.Signal.Timestamp)
	assert.Zero(t, m.errs[errKindSchema])
	assert.Contains(t, buf.String(), `"targets":["92200"]`)
}

func TestContractBuyWithQuestionStaysSignal(t *testing.T) {
	b := &stubBackend{text: `{"direction":"sell","entry_zone":"1.0850","stoploss":"1.0880","targets":["1.0800"],
		"position_size_hint":"0.3 lots","rr_ratio":"1:1.7","reason":"Rejection at supply? Yes.","warnings":"None"}`}
	out := newContract(b, newStubMetrics()).Generate(context.Background(), models.DefaultUserInput())
	assert.Equal(t, models.OutcomeSignal, out.Kind)
}

func TestContractSchemaViolationIsClarification(t *testing.T) {
	cases := map[string]string{
		"prose":          "  I need more context about your account size.  ",
		"missing key":    `{"direction":"buy","entry_zone":"1","stoploss":"0.9","targets":["1.2"],"position_size_hint":"x","rr_ratio":"1:2","reason":"r"}`,
		"bad direction":  `{"direction":"hold","entry_zone":"1","stoploss":"0.9","targets":["1.2"],"position_size_hint":"x","rr_ratio":"1:2","reason":"r","warnings":""}`,
		"trailing data":  buyJSON + ` {}`,
		"targets string": `{"direction":"buy","entry_zone":"1","stoploss":"0.9","targets":"1.2","position_size_hint":"x","rr_ratio":"1:2","reason":"r","warnings":""}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			m := newStubMetrics()
			out := newContract(&stubBackend{text: text}, m).Generate(context.Background(), models.DefaultUserInput())

			assert.Equal(t, models.OutcomeClarification, out.Kind)
			assert.NotEmpty(t, out.Message)
			assert.Equal(t, strings.TrimSpace(text), out.Message)
			assert.Equal(t, 1, m.errs[errKindSchema])
		})
	}
}

func TestContractBackendFaults(t *testing.T) {
	cases := map[string]*stubBackend{
		"transport":  {err: errors.New("dial tcp: connection refused")},
		"empty":      {err: domsvc.ErrEmptyResponse},
		"whitespace": {text: "  \n "},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			m := newStubMetrics()
			out := newContract(b, m).Generate(context.Background(), models.DefaultUserInput())

			assert.Equal(t, models.OutcomeError, out.Kind)
			assert.Equal(t, GenericErrorMessage, out.Message)
			assert.Equal(t, 1, m.outcomes[models.OutcomeError])
		})
	}
}

func TestContractTimeout(t *testing.T) {
	b := &stubBackend{block: make(chan struct{})}
	m := newStubMetrics()
	c := NewSignalContract(b, m, 20*time.Millisecond)

	out := c.Generate(context.Background(), models.DefaultUserInput())
	assert.Equal(t, models.OutcomeError, out.Kind)
	assert.Equal(t, 1, m.errs[errKindTransport])
}

func TestDecodeSignalErrorsWrap(t *testing.T) {
	_, err := decodeSignal("not json")
	assert.ErrorIs(t, err, ErrSchemaViolation)
}

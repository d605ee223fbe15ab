package metrics

import (
	"testing"

	"QuantAI/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWithRegistry(prometheus.NewRegistry())

	r.RecordOutcome(models.OutcomeSignal, models.MarketCrypto)
	r.RecordOutcome(models.OutcomeSignal, models.MarketCrypto)
	r.RecordOutcome(models.OutcomeError, models.MarketForex)
	r.RecordBackendError("transport")
	r.RecordEventPublished(true)
	r.RecordEventPublished(false)
	r.RecordBackendLatency(1.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.outcomes.WithLabelValues("signal", "Crypto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("error", "Forex")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backendErrors.WithLabelValues("transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.eventsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.eventsTotal.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.backendLatency))
}

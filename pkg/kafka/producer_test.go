package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
	assert.Equal(t, kafka.Zstd, parseCompression("zstd"))
	assert.Equal(t, kafka.Gzip, parseCompression("unknown"))
}

func TestPublishUnreachableBroker(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"127.0.0.1:1"}),
		WithMaxAttempts(1),
		WithTimeouts(100*time.Millisecond, 100*time.Millisecond),
	)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = p.Publish(ctx, "quantai.signals", []byte("BTCUSDT"), map[string]string{"k": "v"})
	assert.Error(t, err)
}

package repository

import (
	"context"
	"testing"
	"time"

	"QuantAI/internal/domain/models"
	"QuantAI/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSessionStore(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	store := NewCacheSessionStore(mc, time.Minute)
	ctx := context.Background()

	_, found, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)

	st := models.NewSessionState()
	msg := "Which timeframe?"
	st.Clarification = &msg
	st.Signals = []models.TradingSignal{{Direction: models.DirectionSell, Symbol: "EURUSD", Targets: []string{"1.08"}}}
	require.NoError(t, store.Save(ctx, "abc", st))

	var raw string
	require.NoError(t, mc.Get(ctx, "session:abc", &raw))
	assert.Contains(t, raw, `"EURUSD"`)

	got, found, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, st.Input, got.Input)
	require.NotNil(t, got.Clarification)
	assert.Equal(t, msg, *got.Clarification)
	require.Len(t, got.Signals, 1)
	assert.Equal(t, "EURUSD", got.Signals[0].Symbol)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, found, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheSessionStoreExpires(t *testing.T) {
	mc := cache.NewMemoryCache()
	defer mc.Close()
	store := NewCacheSessionStore(mc, 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", models.NewSessionState()))
	time.Sleep(20 * time.Millisecond)

	_, found, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.False(t, found)
}

type recordingProducer struct {
	topic  string
	key    []byte
	value  interface{}
	closed bool
}

func (r *recordingProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	r.topic, r.key, r.value = topic, key, value
	return nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

func TestKafkaPublisherKeysBySymbol(t *testing.T) {
	prod := &recordingProducer{}
	pub := NewKafkaPublisher(prod, "quantai.signals")

	ev := models.SignalEvent{SessionID: "s1", Kind: models.OutcomeSignal, Symbol: "XAUUSD"}
	require.NoError(t, pub.Publish(context.Background(), ev))
	assert.Equal(t, "quantai.signals", prod.topic)
	assert.Equal(t, []byte("XAUUSD"), prod.key)
	assert.Equal(t, ev, prod.value)

	require.NoError(t, pub.Close())
	assert.True(t, prod.closed)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.Publish(context.Background(), models.SignalEvent{}))
	assert.NoError(t, pub.Close())
}

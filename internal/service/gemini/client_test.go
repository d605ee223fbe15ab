package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"QuantAI/internal/domain/models"
	domsvc "QuantAI/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := LoadPolicy(PolicyVersion)
	require.NoError(t, err)
	c, err := New("test-key", p, WithBaseURL(srv.URL+"/"), WithModel("test-model"), WithHTTPTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func TestGenerateSendsContract(t *testing.T) {
	var got GenerateContentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(GenerateContentResponse{Candidates: []Candidate{{
			Content: Content{Parts: []Part{{Text: `{"direction":`}, {Text: `"buy"}`}}},
		}}})
	})

	text, err := c.Generate(context.Background(), models.DefaultUserInput())
	require.NoError(t, err)
	assert.Equal(t, `{"direction":"buy"}`, text)

	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "BTCUSDT")
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "Symbol: BTCUSDT")
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	require.NotNil(t, got.GenerationConfig.ResponseSchema)
	assert.Equal(t, ResponseKeys(), got.GenerationConfig.ResponseSchema.Required)
}

func TestGenerateEmptyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	_, err := c.Generate(context.Background(), models.DefaultUserInput())
	assert.ErrorIs(t, err, domsvc.ErrEmptyResponse)
}

func TestGenerateBackendFault(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})
	_, err := c.Generate(context.Background(), models.DefaultUserInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domsvc.ErrEmptyResponse)
}

func TestNewRequiresPolicy(t *testing.T) {
	_, err := New("k", nil)
	assert.Error(t, err)
}

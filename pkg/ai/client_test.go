package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "Arsenal vs Chelsea")

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: reply}})
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestEstimate(t *testing.T) {
	server := chatServer(t, `{"probability": 62.5, "confidence": 70}`)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	estimate, err := client.Estimate(context.Background(), "Arsenal", "Chelsea", "")
	require.NoError(t, err)
	assert.InDelta(t, 62.5, estimate.Probability, 1e-9)
	assert.InDelta(t, 70.0, estimate.Confidence, 1e-9)
}

func TestEstimateToleratesProseAroundJSON(t *testing.T) {
	server := chatServer(t, "Sure, here is my read:\n```json\n{\"probability\": 48, \"confidence\": 55}\n```")
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	estimate, err := client.Estimate(context.Background(), "Arsenal", "Chelsea", "preview text")
	require.NoError(t, err)
	assert.InDelta(t, 48.0, estimate.Probability, 1e-9)
}

func TestEstimateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Estimate(context.Background(), "Arsenal", "Chelsea", "")
	assert.Error(t, err)
}

func TestEstimateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "test-model")
	_, err := client.Estimate(context.Background(), "Arsenal", "Chelsea", "")
	assert.Error(t, err)
}

func TestParseEstimate(t *testing.T) {
	_, err := parseEstimate("no json here")
	assert.Error(t, err)

	_, err = parseEstimate(`{"probability": "high"}`)
	assert.Error(t, err)

	estimate, err := parseEstimate(`{"probability": 71, "confidence": 60, "reasoning": "ignored"}`)
	require.NoError(t, err)
	assert.InDelta(t, 71.0, estimate.Probability, 1e-9)
}

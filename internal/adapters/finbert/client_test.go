package finbert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/sentibot/internal/domain"
)

func TestEstimate_ParsesResponse(t *testing.T) {
	var gotBody estimateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sentiment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"probability": 0.9995,
			"sentiment":   "positive",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Estimate(context.Background(), []string{"beat", "raise"})
	require.NoError(t, err)

	assert.Equal(t, []string{"beat", "raise"}, gotBody.Headlines)
	assert.Equal(t, 0.9995, res.Probability)
	assert.Equal(t, domain.LabelPositive, res.Label)
	assert.False(t, res.Degraded)
}

func TestEstimate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Estimate(context.Background(), []string{"x"})
	assert.Error(t, err)
}

func TestEstimate_RejectsOutOfRangeProbability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"probability": 1.7, "sentiment": "positive"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Estimate(context.Background(), []string{"x"})
	assert.Error(t, err)
}

func TestEstimate_UnknownLabelMapsToNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"probability": 0.6, "sentiment": "mixed"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Estimate(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, domain.LabelNeutral, res.Label)
}

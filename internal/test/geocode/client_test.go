package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findit-backend/internal/geocode"
)

func TestClient_ReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "32.08", r.URL.Query().Get("lat"))
		assert.Equal(t, "34.78", r.URL.Query().Get("lon"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Write([]byte(`{"display_name": "Dizengoff St 1, Tel Aviv"}`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)
	address, err := client.ReverseGeocode(context.Background(), 32.08, 34.78)

	require.NoError(t, err)
	assert.Equal(t, "Dizengoff St 1, Tel Aviv", address)
}

func TestClient_ReverseGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)
	_, err := client.ReverseGeocode(context.Background(), 0, 0)

	assert.ErrorIs(t, err, geocode.ErrNoResults)
}

func TestClient_ReverseGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)
	_, err := client.ReverseGeocode(context.Background(), 32.08, 34.78)

	assert.Error(t, err)
}

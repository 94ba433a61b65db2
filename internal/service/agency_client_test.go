package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velodz/backoffice/internal/domain"
)

func TestHTTPAgencyClient_FetchStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Known parcel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/parcels/trk-1", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"tracking": "trk-1", "status": "out_for_delivery"}`))
		}))
		defer server.Close()

		client := NewAgencyClient(server.URL, "")
		status, err := client.FetchStatus(ctx, "trk-1")
		require.NoError(t, err)
		assert.Equal(t, "out_for_delivery", status)
	})

	t.Run("API token is sent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Token sekret", r.Header.Get("Authorization"))
			w.Write([]byte(`{"tracking": "trk-1", "status": "pending"}`))
		}))
		defer server.Close()

		client := NewAgencyClient(server.URL, "sekret")
		_, err := client.FetchStatus(ctx, "trk-1")
		require.NoError(t, err)
	})

	t.Run("Unknown parcel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewAgencyClient(server.URL, "")
		_, err := client.FetchStatus(ctx, "trk-missing")
		assert.ErrorIs(t, err, domain.ErrShipmentNotFound)
	})

	t.Run("Rate limit carries Retry-After", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewAgencyClient(server.URL, "")
		_, err := client.FetchStatus(ctx, "trk-1")

		var rateLimitErr *RateLimitError
		require.True(t, errors.As(err, &rateLimitErr))
		assert.Equal(t, 30*time.Second, rateLimitErr.RetryAfter)
	})

	t.Run("Server error after retries", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewAgencyClient(server.URL, "")
		client.httpClient.RetryWaitMin = time.Millisecond
		client.httpClient.RetryWaitMax = time.Millisecond

		_, err := client.FetchStatus(ctx, "trk-1")
		assert.Error(t, err)
		assert.Equal(t, agencyRetryMax+1, calls)
	})
}

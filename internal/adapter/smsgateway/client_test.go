package smsgateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
)

const testToken = "test-token"

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		token:      testToken,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testAlert() domain.CriticalAlert {
	return domain.CriticalAlert{
		BundleID: "current-abc",
		FarmerID: "farmer-7",
		District: "Jhenaidah",
		Crop:     "আলু",
		Risk:     domain.RiskCritical,
		Message:  "SMS ALERT: আলু গুদামে পচা ঝুঁকি, দ্রুত ব্যবস্থা নিন।",
	}
}

func TestClient_SendAlert_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req sendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "farmer-7", req.Recipient)
		assert.Equal(t, "আলু", req.Crop)
		assert.Equal(t, "Critical", req.Risk)
		assert.Equal(t, "current-abc", req.Reference)
		assert.Contains(t, req.Message, "SMS ALERT")

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(sendResponse{MessageID: "msg-1", Status: "queued"}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	err := c.SendAlert(context.Background(), testAlert())

	require.NoError(t, err)
}

func TestClient_SendAlert_AcceptedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(sendResponse{MessageID: "msg-2", Status: "accepted"}) //nolint:errcheck
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendAlert(context.Background(), testAlert())

	require.NoError(t, err)
}

func TestClient_SendAlert_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendAlert(context.Background(), testAlert())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClient_SendAlert_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json")) //nolint:errcheck
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendAlert(context.Background(), testAlert())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode sms response")
}

func TestClient_SendAlert_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse all connections

	err := testClient(srv.URL).SendAlert(context.Background(), testAlert())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sms gateway request")
}

func TestClient_SendAlert_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect;
		// otherwise r.Context() is never cancelled and Close deadlocks.
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := testClient(srv.URL).SendAlert(ctx, testAlert())

	require.Error(t, err)
}

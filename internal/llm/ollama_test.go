package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastro/sortify/internal/common"
	"github.com/tomastro/sortify/internal/model"
	"github.com/tomastro/sortify/internal/service"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func newTestClient(attempts int) *OllamaClient {
	return NewOllamaClient(Options{
		Timeout:   5 * time.Second,
		RateLimit: 10000,
		Retry:     fastRetry(attempts),
	})
}

func request(url string) model.ClassificationRequest {
	return model.ClassificationRequest{
		BatchID: "batch-1",
		Prompt:  "classify these",
		Model:   "test-model",
		APIURL:  url,
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotBody ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: `{"a.pdf": "Documents"}`})
	}))
	defer server.Close()

	client := newTestClient(3)
	defer client.Close()

	raw, err := client.Generate(context.Background(), request(server.URL))
	require.NoError(t, err)
	assert.Equal(t, `{"a.pdf": "Documents"}`, raw)

	// Wire contract: streaming disabled, JSON format requested.
	assert.Equal(t, "test-model", gotBody.Model)
	assert.Equal(t, "classify these", gotBody.Prompt)
	assert.False(t, gotBody.Stream)
	assert.Equal(t, "json", gotBody.Format)
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "{}"})
	}))
	defer server.Close()

	client := newTestClient(3)
	defer client.Close()

	raw, err := client.Generate(context.Background(), request(server.URL))
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerateRetriesEmptyResponse(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "   \n"})
	}))
	defer server.Close()

	client := newTestClient(2)
	defer client.Close()

	_, err := client.Generate(context.Background(), request(server.URL))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, int32(2), calls.Load(), "degenerate responses are retried until exhaustion")
}

func TestGenerateExhaustsRetriesOnConnectionError(t *testing.T) {
	// Point at a closed server to simulate connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(2)
	defer client.Close()

	_, err := client.Generate(context.Background(), request(url))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
}

func TestGenerateContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can observe the client disconnect and
		// cancel the request context; otherwise Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(3)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Generate(ctx, request(server.URL))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, common.ErrMaxRetries))
}

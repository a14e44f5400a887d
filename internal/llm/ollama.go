package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tomastro/sortify/internal/common"
	"github.com/tomastro/sortify/internal/model"
	"github.com/tomastro/sortify/internal/service"
)

// ollamaRequest is the wire format for the /api/generate endpoint.
// format=json asks the server to constrain output to JSON; the response is
// still treated as untrusted text downstream.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format"`
	Stream bool   `json:"stream"`
}

// ollamaResponse carries the single generated-text field we consume.
type ollamaResponse struct {
	Response string `json:"response"`
}

// OllamaClient sends classification prompts to a local Ollama server.
type OllamaClient struct {
	httpClient  *http.Client
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// Options configures an OllamaClient.
type Options struct {
	Retry     service.RetryOptions
	Timeout   time.Duration
	RateLimit int
}

// NewOllamaClient creates a client for a local Ollama endpoint.
func NewOllamaClient(opts Options) *OllamaClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &OllamaClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: newRateLimiter(opts.RateLimit),
		retryOpts:   opts.Retry,
	}
}

// Generate sends the rendered request and returns the raw completion text.
// Connection errors, non-2xx statuses and empty generations are retried with
// exponential backoff; once attempts are exhausted the batch is failed and
// the error is returned. One batch failing never affects another: each call
// is independent and holds no shared state beyond the rate limiter.
func (c *OllamaClient) Generate(ctx context.Context, req model.ClassificationRequest) (string, error) {
	var raw string

	operation := func() error {
		if err := c.rateLimiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		text, err := c.send(ctx, req)
		if err != nil {
			return err
		}

		raw = text
		return nil
	}

	if err := common.WithRetry(ctx, operation, c.retryOpts); err != nil {
		return "", fmt.Errorf("batch %s: %w", req.BatchID, err)
	}

	return raw, nil
}

// send performs a single request attempt.
func (c *OllamaClient) send(ctx context.Context, req model.ClassificationRequest) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return "", &common.RetryableError{Err: fmt.Errorf("failed to marshal request: %w", err), Retryable: false}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference endpoint error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var generated ollamaResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", fmt.Errorf("failed to parse response body: %w", err)
	}

	if strings.TrimSpace(generated.Response) == "" {
		return "", common.ErrEmptyResponse
	}

	return generated.Response, nil
}

// Close releases the client's background resources.
func (c *OllamaClient) Close() {
	c.rateLimiter.stop()
}

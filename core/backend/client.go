// Package backend implements the Generator interface.
// It calls the remote ArchGenie generation service, which turns an
// application description into a diagram, Terraform, a cost breakdown,
// and documentation.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/archgenie/core"
)

const (
	defaultTimeout  = 60 * time.Second
	defaultProvider = "azure"
	apiKeyHeader    = "X-API-Key"
)

// retryable are the statuses worth a retry with backoff, matching the
// generation service's own transient-failure set.
var retryable = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusConflict:            true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// APIError is a non-2xx response from the generation service. Body holds
// the response body as readable text, shown to the user verbatim.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generation service returned %d: %s", e.Status, e.Body)
}

// Client calls the generation service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client

	maxRetries  int
	backoffBase time.Duration
	backoffCap  time.Duration
}

// New creates a Client for the given service URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		client:      &http.Client{Timeout: defaultTimeout},
		maxRetries:  3,
		backoffBase: 500 * time.Millisecond,
		backoffCap:  8 * time.Second,
	}
}

// Generate posts the request to /mcp/<provider>/diagram-tf and decodes
// the response. Missing response fields decode to empty values; callers
// degrade those to placeholder display rather than treating them as
// errors.
func (c *Client) Generate(ctx context.Context, req core.GenerateRequest) (*core.GenerateResult, error) {
	provider := req.Provider
	if provider == "" {
		provider = defaultProvider
	}
	url := fmt.Sprintf("%s/mcp/%s/diagram-tf", c.baseURL, provider)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.post(ctx, url, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			Status: resp.StatusCode,
			Body:   readableBody(resp.Header.Get("Content-Type"), raw),
		}
	}

	var result core.GenerateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding generation response: %w", err)
	}
	return &result, nil
}

// post sends the request, retrying transient statuses and transport
// errors with exponential backoff. The last response (or error) wins.
func (c *Client) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if retryable[resp.StatusCode] && attempt < c.maxRetries {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("calling generation service: %w", lastErr)
}

// backoff returns the sleep before retry n, jittered to avoid lockstep.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.backoffBase << attempt
	if d > c.backoffCap {
		d = c.backoffCap
	}
	return time.Duration(float64(d) * (0.5 + rand.Float64()/2))
}

// readableBody turns an error response body into display text. Proxies
// and gateways often answer with HTML pages; those are converted to
// markdown so the message stays legible in a terminal.
func readableBody(contentType string, raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if !strings.Contains(contentType, "text/html") {
		return body
	}
	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return body
	}
	return strings.TrimSpace(md)
}

// Package ai implements the conversation with a local Ollama-compatible
// inference server: prompt construction, the /api/generate request with
// retry and backoff, and fragment streams over both response modes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/chatty-go/internal/domain"
	"github.com/doeshing/chatty-go/internal/ports"
)

const (
	generatePath = "/api/generate"
	tagsPath     = "/api/tags"

	maxErrorBodyBytes = 1 << 16
)

// defaultBackoff is the retry schedule for transient connection failures.
// The number of retries equals the schedule length.
var defaultBackoff = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

// generateRequest is the /api/generate request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateChunk is one NDJSON object of a streaming response, and also the
// whole body of a non-streaming one.
type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client talks to the local inference server. One Client (and its underlying
// connection pool) is shared for the process lifetime; a connection is never
// shared between two in-flight requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    []time.Duration
	logger     ports.Logger
}

// NewClient builds a Client for the configured server. The connect timeout
// only bounds dialing; the total-response deadline is the caller's context
// deadline, so long-running generation is never killed by the dial timeout.
func NewClient(server domain.ServerSettings, log ports.Logger) *Client {
	dialer := &net.Dialer{Timeout: server.ConnectTimeout()}
	transport := &http.Transport{
		DialContext:     dialer.DialContext,
		MaxIdleConns:    4,
		IdleConnTimeout: 90 * time.Second,
	}
	return &Client{
		baseURL:    strings.TrimSuffix(server.BaseURL, "/"),
		httpClient: &http.Client{Transport: transport},
		backoff:    defaultBackoff,
		logger:     log,
	}
}

// Send serializes the prompt and dispatches it, retrying transient
// connection failures over the backoff schedule. Server rejections and
// timeouts surface immediately. The returned stream owns the response body;
// closing it early closes the connection without waiting for the server.
func (c *Client) Send(ctx context.Context, doc domain.PromptDocument, model string, streaming bool) (ports.FragmentStream, error) {
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: doc.Serialize(),
		Stream: streaming,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		stream, err := c.dispatch(ctx, body, streaming)
		if err == nil {
			return stream, nil
		}
		if domain.KindOf(err) != domain.ErrKindConnection || attempt >= len(c.backoff) {
			return nil, err
		}
		c.logger.Warn("connection failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"backoff": c.backoff[attempt].String(),
			"error":   err.Error(),
		})
		select {
		case <-time.After(c.backoff[attempt]):
		case <-ctx.Done():
			return nil, classifyTransport(ctx.Err())
		}
	}
}

func (c *Client) dispatch(ctx context.Context, body []byte, streaming bool) (ports.FragmentStream, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, serverError(resp)
	}

	if streaming {
		return newNDJSONStream(resp.Body), nil
	}

	defer resp.Body.Close()
	var decoded generateChunk
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		// The server answered 2xx, so a garbled body is its fault, not a
		// transient connection failure worth retrying.
		return nil, domain.WrapError(domain.ErrKindServer, "malformed response body", err)
	}
	return newValueStream(decoded.Response), nil
}

// ListModels fetches the names of models the server has available.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tagsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, serverError(resp)
	}

	var decoded struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, classifyTransport(err)
	}

	names := make([]string, 0, len(decoded.Models))
	for _, model := range decoded.Models {
		names = append(names, model.Name)
	}
	return names, nil
}

// classifyTransport maps a transport-level error to the domain taxonomy.
// Deadline expiry and cancellation are terminal; everything else is a
// transient connection failure eligible for retry.
func classifyTransport(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.WrapError(domain.ErrKindTimeout, "inference request timed out", err)
	case errors.Is(err, context.Canceled):
		return domain.WrapError(domain.ErrKindInterrupted, "inference request cancelled", err)
	default:
		return domain.WrapError(domain.ErrKindConnection, "cannot reach inference server", err)
	}
}

// serverError converts a non-2xx response into a ServerError carrying the
// server's own message verbatim when the body has one.
func serverError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return domain.NewError(domain.ErrKindServer, payload.Error)
	}
	if detail := strings.TrimSpace(string(raw)); detail != "" {
		return domain.NewError(domain.ErrKindServer, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, detail))
	}
	return domain.NewError(domain.ErrKindServer, "HTTP "+resp.Status)
}

var _ ports.InferenceClient = (*Client)(nil)

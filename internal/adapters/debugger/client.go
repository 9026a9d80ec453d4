// Package debugger talks to the REST VM debugger and supervises the process
// that serves it.
package debugger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/metrics"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Client implements usecase.DebuggerClient
type Client struct {
	baseURL   string
	http      *http.Client
	server    serverSpec
	publisher usecase.EventPublisher
	log       *slog.Logger

	// emitMu serializes bus emissions coming from the pump goroutines
	emitMu sync.Mutex

	mu      sync.Mutex
	process *serverProcess
}

// NewClient creates a debugger client for the configured endpoint
func NewClient(cfg *config.RuntimeConfig, publisher usecase.EventPublisher, log *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.Debugger.URL,
		http:    &http.Client{Timeout: cfg.Debugger.Timeout},
		server: serverSpec{
			binary: cfg.Debugger.Binary,
			args:   cfg.Debugger.Args,
			dir:    cfg.ProjectRoot,
		},
		publisher: publisher,
		log:       log.With("component", "DebuggerClient"),
	}
}

type deployRequest struct {
	Impersonated string `json:"impersonated"`
	Code         string `json:"code"`
}

// response is the envelope of every debugger endpoint
type response struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Deploy uploads hex-encoded bytecode on behalf of sender and returns the
// address the debugger assigned.
func (c *Client) Deploy(ctx context.Context, sender string, hexCode string) (string, error) {
	data, err := c.post(ctx, "deploy", deployRequest{Impersonated: sender, Code: hexCode})
	if err != nil {
		return "", err
	}

	var address string
	if err := json.Unmarshal(data, &address); err != nil {
		return "", &domain.DebuggerError{Op: "deploy", Reason: fmt.Sprintf("unexpected address payload: %s", string(data))}
	}
	if address == "" {
		return "", &domain.DebuggerError{Op: "deploy", Reason: "empty address in response"}
	}
	return address, nil
}

// Run invokes a function of a deployed contract and returns the VM output.
func (c *Client) Run(ctx context.Context, options domain.RunOptions) (domain.VMOutput, error) {
	data, err := c.post(ctx, "run", options)
	if err != nil {
		return nil, err
	}

	output := domain.VMOutput{}
	if len(data) == 0 || string(data) == "null" {
		return output, nil
	}
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, &domain.DebuggerError{Op: "run", Reason: fmt.Sprintf("unexpected output payload: %v", err)}
	}
	return output, nil
}

// post sends body to {url}/{op} and unwraps the response envelope
func (c *Client) post(ctx context.Context, op string, body any) (json.RawMessage, error) {
	start := time.Now()
	defer func() {
		metrics.DebuggerRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	url := c.baseURL + "/" + op
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &domain.DebuggerError{Op: op, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("debugger request", "op", op, "url", url)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.DebuggerError{Op: op, Reason: err.Error()}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &domain.DebuggerError{Op: op, Status: httpResp.StatusCode, Reason: fmt.Sprintf("failed to read response: %v", err)}
	}

	var resp response
	decodeErr := json.Unmarshal(raw, &resp)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		reason := http.StatusText(httpResp.StatusCode)
		if decodeErr == nil && resp.Error != "" {
			reason = resp.Error
		}
		return nil, &domain.DebuggerError{Op: op, Status: httpResp.StatusCode, Reason: reason}
	}
	if decodeErr != nil {
		return nil, &domain.DebuggerError{Op: op, Reason: fmt.Sprintf("failed to decode response: %v", decodeErr)}
	}
	if resp.Error != "" {
		return nil, &domain.DebuggerError{Op: op, Reason: resp.Error}
	}

	return resp.Data, nil
}

// emit publishes one lifecycle event; calls never interleave
func (c *Client) emit(topic domain.Topic, payload any) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.publisher.Publish(topic, payload)
}

// Ensure the client implements the interface
var _ usecase.DebuggerClient = (*Client)(nil)

// Package remote carries backend operations to a job board API over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.Transport against a server built by api.NewRouter.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient targets baseURL. A nil httpClient gets a default with a timeout.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Do resolves req.Operation through the endpoint registry and performs the
// round trip. Non-2xx responses come back as *domain.APIError.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) error {
	ep, ok := mockapi.Lookup(req.Operation)
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", domain.ErrValidation, req.Operation)
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", req.Operation, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, ep.Method, c.baseURL+ep.Expand(req.Params), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", req.Operation, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ep.Method, httpReq.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("operation", req.Operation).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend round trip")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", req.Operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env errorEnvelope
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		return domain.NewAPIError(resp.StatusCode, msg)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Operation, err)
	}
	return nil
}

package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type responseBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// check sends c and returns a non-empty reason when the response is wrong.
func (h *HTTPClient) check(ctx context.Context, runID string, c Case) (string, error) {
	method := c.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+c.Path, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", runID)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s %s: %w", method, c.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return verify(c, resp.StatusCode, raw), nil
}

// verify compares a response against c.
func verify(c Case, status int, raw []byte) string {
	if status != c.WantStatus {
		return fmt.Sprintf("status %d, want %d", status, c.WantStatus)
	}
	var body responseBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Sprintf("invalid JSON body: %v", err)
	}
	if c.WantMessage != "" && body.Message != c.WantMessage {
		return fmt.Sprintf("message %q, want %q", body.Message, c.WantMessage)
	}
	if c.WantDetail != "" {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err != nil || detail != c.WantDetail {
			return fmt.Sprintf("detail %s, want %q", body.Detail, c.WantDetail)
		}
	}
	if c.WantFields > 0 {
		var fields []json.RawMessage
		if err := json.Unmarshal(body.Detail, &fields); err != nil || len(fields) != c.WantFields {
			return fmt.Sprintf("detail %s, want %d validation errors", body.Detail, c.WantFields)
		}
	}
	return ""
}

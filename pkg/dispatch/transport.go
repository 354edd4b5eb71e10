package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport delivers an encoded JSON body to path.
type Transport interface {
	Post(ctx context.Context, path string, body []byte) error
}

// TransportFunc adapts a function into a Transport. The server-rendered
// wizard uses it to call the API handlers in process.
type TransportFunc func(ctx context.Context, path string, body []byte) error

// Post calls the underlying function.
func (fn TransportFunc) Post(ctx context.Context, path string, body []byte) error {
	return fn(ctx, path, body)
}

// ResponseError is returned when the endpoint answers with a non-2xx status.
type ResponseError struct {
	Path    string
	Code    int
	Message string
}

func (e *ResponseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("dispatch: %s returned %d", e.Path, e.Code)
	}
	return fmt.Sprintf("dispatch: %s returned %d: %s", e.Path, e.Code, e.Message)
}

// StatusCode exposes the HTTP status.
func (e *ResponseError) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.Code
}

// HTTPTransport posts JSON to BaseURL joined with the request path.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
	Header  http.Header
}

// NewHTTPTransport returns a transport for baseURL using client, or
// http.DefaultClient when client is nil.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	return &HTTPTransport{BaseURL: baseURL, Client: client}
}

// Post sends body and maps non-2xx responses to *ResponseError.
func (t *HTTPTransport) Post(ctx context.Context, path string, body []byte) error {
	if t == nil {
		return ErrNoTransport
	}
	endpoint := strings.TrimRight(t.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dispatch: build request: %w", err)
	}
	for key, values := range t.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch: post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var payload struct {
		Error string `json:"error"`
	}
	message := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		message = payload.Error
	}
	return &ResponseError{Path: path, Code: resp.StatusCode, Message: message}
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// backendClient is the thin HTTP client the query commands use against a
// running pensum backend.
type backendClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBackendClient() *backendClient {
	return &backendClient{
		baseURL: strings.TrimRight(backendURL, "/"),
		// QA requests wait on the LLM
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// apiError mirrors the backend's error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (c *backendClient) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *backendClient) post(path string, payload, out any) error {
	return c.do(http.MethodPost, path, payload, out)
}

func (c *backendClient) do(method, path string, payload, out any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return fmt.Errorf("could not connect to the pensum backend at %s\nMake sure it is running: pensum serve", c.baseURL)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

// statusError turns an error response into the friendly message the
// terminal user sees.
func (c *backendClient) statusError(resp *http.Response) error {
	var apiErr apiError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	switch resp.StatusCode {
	case http.StatusServiceUnavailable:
		return fmt.Errorf("backend is not ready, the vector database might still be initializing\nTry: pensum refresh")
	case http.StatusPaymentRequired:
		return fmt.Errorf("API quota exceeded, check the billing settings of your provider account")
	case http.StatusUnauthorized:
		return fmt.Errorf("API key invalid or missing, check OPENAI_API_KEY in your .env file")
	}

	if apiErr.Message != "" {
		return fmt.Errorf("%s", apiErr.Message)
	}
	return fmt.Errorf("backend returned %s", resp.Status)
}

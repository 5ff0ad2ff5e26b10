package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperjump/nasari/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client queries a running nasari server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Vector fetches the vector for key.
func (c *Client) Vector(ctx context.Context, key string) (*models.VectorResult, error) {
	var resp models.VectorResponse
	if err := c.get(ctx, "/nasari/vector", url.Values{"key": {key}}, &resp); err != nil {
		return nil, err
	}
	return &models.VectorResult{Key: key, Vector: resp.Vector}, nil
}

// Similarity fetches the cosine similarity of key1 and key2.
func (c *Client) Similarity(ctx context.Context, key1, key2 string) (*models.SimilarityResult, error) {
	var resp models.SimilarityResponse
	if err := c.get(ctx, "/nasari/cosine", url.Values{"key1": {key1}, "key2": {key2}}, &resp); err != nil {
		return nil, err
	}
	return &models.SimilarityResult{Key1: key1, Key2: key2, Similarity: resp.Similarity}, nil
}

// Status fetches the server status.
func (c *Client) Status(ctx context.Context) (*models.StatusResponse, error) {
	var resp models.StatusResponse
	if err := c.get(ctx, "/api/v1/status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		var e models.ErrorResponse
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: e.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

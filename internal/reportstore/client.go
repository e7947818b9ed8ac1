// Package reportstore talks to an optional remote archive service that
// keeps exported report blobs per project. The service is a plain
// JSON-over-HTTP key/value API with Bearer auth; when no base URL is
// configured the application runs with local storage only.
package reportstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with the archive HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Record is a stored report blob with its archive metadata.
type Record struct {
	ProjectID string          `json:"project_id"`
	Blob      json.RawMessage `json:"blob"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// Put stores or replaces the blob archived under a project id.
func (c *Client) Put(ctx context.Context, projectID string, blob []byte) error {
	body, err := json.Marshal(Record{ProjectID: projectID, Blob: blob})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/reports/"+url.PathEscape(projectID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put report %s: status %d: %s", projectID, resp.StatusCode, string(respBody))
	}
	return nil
}

// Get retrieves the blob for a project. Returns nil, nil when the
// project has no archived report.
func (c *Client) Get(ctx context.Context, projectID string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reports/"+url.PathEscape(projectID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get report %s: status %d: %s", projectID, resp.StatusCode, string(respBody))
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

// Delete removes the archived blob for a project.
func (c *Client) Delete(ctx context.Context, projectID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/reports/"+url.PathEscape(projectID), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete report %s: status %d: %s", projectID, resp.StatusCode, string(respBody))
	}
	return nil
}

// Entry is one project listed by the archive.
type Entry struct {
	ProjectID string `json:"project_id"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// List returns the archived projects, newest first per the service.
func (c *Client) List(ctx context.Context, limit int) ([]Entry, error) {
	u := c.baseURL + "/reports"
	if limit > 0 {
		u += fmt.Sprintf("?limit=%d", limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list reports: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Reports []Entry `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return result.Reports, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

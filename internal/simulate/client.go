package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
	"github.com/kestrelrobotics/matchbook/internal/domain/stats"
)

const clientTimeout = 15 * time.Second

// Client talks to a running matchbookd over its HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a simulator client for the given base URL, e.g.
// "http://localhost:9080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: clientTimeout},
	}
}

// Submit posts one submission. Duplicates count as success; backpressure
// (429) is reported so the runner can retry.
func (c *Client) Submit(ctx context.Context, sub model.Submission) (accepted bool, err error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submissions", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		return true, nil
	case http.StatusTooManyRequests:
		return false, nil
	default:
		return false, fmt.Errorf("%w: status %d", ErrSubmit, resp.StatusCode)
	}
}

// TeamStats fetches the aggregated stats for one team.
func (c *Client) TeamStats(ctx context.Context, teamNumber int) (stats.TeamStats, error) {
	url := c.baseURL + "/teams/" + strconv.Itoa(teamNumber) + "/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return stats.TeamStats{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return stats.TeamStats{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stats.TeamStats{}, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	var ts stats.TeamStats
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		return stats.TeamStats{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return ts, nil
}

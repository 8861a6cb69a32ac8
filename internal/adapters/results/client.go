// Package results provides access to the official match-results API
// (TBA-style). The per-season breakdown schema is opaque here; only the
// season's field mappings give it meaning.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelrobotics/matchbook/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// AllianceResult is one alliance's official outcome for a match.
type AllianceResult struct {
	TeamNumbers []int
	Breakdown   map[string]any
}

// Match is the official result for one match.
type Match struct {
	Key       string
	Alliances map[model.Alliance]AllianceResult
}

// Rosters returns the team numbers per alliance color.
func (m Match) Rosters() map[model.Alliance][]int {
	rosters := make(map[model.Alliance][]int, len(m.Alliances))
	for color, a := range m.Alliances {
		rosters[color] = a.TeamNumbers
	}
	return rosters
}

// Provider fetches official match results.
type Provider interface {
	Match(ctx context.Context, matchKey string) (Match, error)
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// Client implements Provider against an HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a results client. The API key is sent on every request
// via the X-TBA-Auth-Key header.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// matchResponse mirrors the provider's match payload. The score breakdown
// stays an opaque map by design.
type matchResponse struct {
	Key            string                    `json:"key"`
	ScoreBreakdown map[string]map[string]any `json:"score_breakdown"`
	Alliances      map[string]struct {
		TeamKeys []string `json:"team_keys"`
	} `json:"alliances"`
}

// Match fetches the official result for matchKey.
func (c *Client) Match(ctx context.Context, matchKey string) (Match, error) {
	url := c.baseURL + "/match/" + matchKey
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("X-TBA-Auth-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, matchKey)
	case resp.StatusCode != http.StatusOK:
		return Match{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Match{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return convert(payload), nil
}

func convert(payload matchResponse) Match {
	m := Match{
		Key:       payload.Key,
		Alliances: make(map[model.Alliance]AllianceResult, 2),
	}
	for _, color := range []model.Alliance{model.AllianceRed, model.AllianceBlue} {
		res := AllianceResult{
			Breakdown: payload.ScoreBreakdown[string(color)],
		}
		if a, ok := payload.Alliances[string(color)]; ok {
			for _, key := range a.TeamKeys {
				if n, ok := parseTeamKey(key); ok {
					res.TeamNumbers = append(res.TeamNumbers, n)
				}
			}
		}
		m.Alliances[color] = res
	}
	return m
}

// parseTeamKey converts provider team keys like "frc254" to 254.
func parseTeamKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "frc"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

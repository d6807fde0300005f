// Package search queries the GitHub repository search API for candidate
// repositories matching the harvest criteria.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"time"

	"reposcout/internal/config"
	"reposcout/internal/logging"
	"reposcout/pkg/models"
)

const (
	// defaultEndpoint is the GitHub repository search API.
	defaultEndpoint = "https://api.github.com/search/repositories"

	// fixedQuery expresses the harvest criteria: Java projects built with
	// Maven on Java 8 using JUnit 5, matched in readme and description.
	fixedQuery = "language:Java maven junit5 java 8 in:readme,description"

	// pageSize is the number of results requested per page.
	pageSize = 30

	requestTimeout = 30 * time.Second
	bodyLimit      = 4 << 20
)

// Client pages through the search endpoint and collects candidates.
// Results keep the endpoint's own ranking (stars, descending).
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	pageDelay  time.Duration
	log        *logging.Logger
}

// NewClient creates a search client from the given configuration.
// The token and page delay come from cfg; the client never reads
// ambient environment itself.
func NewClient(cfg *config.Config, log *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   defaultEndpoint,
		token:      config.GetToken(cfg),
		pageDelay:  cfg.Search.PageDelay,
		log:        log,
	}
}

// searchResponse mirrors the fields of the endpoint's JSON we rely on.
// Message carries the structured error text on failures such as rate limits.
type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
	Message    string       `json:"message"`
}

type searchItem struct {
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	Stars    int    `json:"stargazers_count"`
}

// Search pages through the endpoint and returns at most maxResults
// candidates, unique by clone URL, in the endpoint's ranked order.
//
// Pagination stops early on: an empty page, maxResults reached,
// maxPages exceeded, or a rate-limit condition. None of these are
// errors. A page that fails at the transport level is logged and
// skipped; Search only fails outright when pagination produced nothing
// and at least one page request errored.
func (c *Client) Search(ctx context.Context, maxResults, maxPages int) ([]models.Candidate, error) {
	if maxResults <= 0 || maxPages <= 0 {
		return nil, nil
	}

	var candidates []models.Candidate
	seen := make(map[string]bool)
	var lastErr error

	for page := 1; page <= maxPages; page++ {
		if len(candidates) >= maxResults {
			break
		}
		if page > 1 && c.pageDelay > 0 {
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				return candidates, ctx.Err()
			}
		}

		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return candidates, ctx.Err()
			}
			c.log.Warnf("search: page %d failed, skipping: %v", page, err)
			lastErr = err
			continue
		}

		if IsRateLimited(resp.Message) {
			c.log.Warnf("search: rate limited on page %d, stopping pagination", page)
			break
		}
		if len(resp.Items) == 0 {
			break
		}

		for _, item := range resp.Items {
			if item.CloneURL == "" || seen[item.CloneURL] {
				continue
			}
			seen[item.CloneURL] = true
			candidates = append(candidates, models.Candidate{
				Name:     item.FullName,
				CloneURL: item.CloneURL,
			})
		}
	}

	if len(candidates) == 0 && lastErr != nil {
		return nil, fmt.Errorf("search produced no results: %w", lastErr)
	}

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// fetchPage requests a single result page. The response body is decoded
// even on non-2xx statuses because the endpoint reports conditions like
// rate limiting through the message field, not the status code alone.
func (c *Client) fetchPage(ctx context.Context, page int) (*searchResponse, error) {
	u, err := neturl.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", fixedQuery)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page %d: %w", page, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, bodyLimit))
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode page %d (status %d): %w", page, httpResp.StatusCode, err)
	}

	if httpResp.StatusCode >= 400 && !IsRateLimited(resp.Message) {
		return nil, fmt.Errorf("page %d: status %d: %s", page, httpResp.StatusCode, resp.Message)
	}
	return &resp, nil
}

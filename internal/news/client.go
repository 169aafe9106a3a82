// Package news fetches top headlines from the remote news source.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/newskeeper/newskeeper/internal/apperr"
	"github.com/newskeeper/newskeeper/internal/domain"
)

const (
	DefaultPageSize = 25
	DefaultCountry  = "us"

	defaultTimeout = 10 * time.Second
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithRateLimit bounds outbound calls so a hot refresh loop cannot burn
// the API key quota.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(limit, burst)
	}
}

func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// headlinesResponse mirrors the news API payload shape.
type headlinesResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URLToImage  string `json:"urlToImage"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// TopHeadlines fetches one page of headlines. There is no cursor
// management: the remote source is read one fixed page at a time.
func (c *Client) TopHeadlines(ctx context.Context, country string, pageSize int) ([]domain.Headline, error) {
	if country == "" {
		country = DefaultCountry
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("country", country)
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.NewUpstreamWrap("news source unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewUpstreamWrap("news source unavailable", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.NewUpstreamWrap("news source returned malformed response", err)
	}

	headlines := make([]domain.Headline, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		headlines = append(headlines, domain.Headline{
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    a.URLToImage,
			URL:         a.URL,
		})
	}

	return headlines, nil
}

package regwatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client fetches regulatory bulletin pages with rate limiting, so polling
// never hammers a regulator's site.
type Client struct {
	httpClient  *http.Client
	rateLimiter chan struct{}
	userAgent   string
}

// NewClient creates a new bulletin client limited to requestsPerSecond
func NewClient(requestsPerSecond int) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	rateLimiter := make(chan struct{}, requestsPerSecond)
	for i := 0; i < requestsPerSecond; i++ {
		rateLimiter <- struct{}{}
	}

	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(requestsPerSecond))
		defer ticker.Stop()

		for range ticker.C {
			select {
			case rateLimiter <- struct{}{}:
			default:
			}
		}
	}()

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		rateLimiter: rateLimiter,
		userAgent:   "Mozilla/5.0 (compatible; AIRisk-RegWatch/1.0)",
	}
}

// Get performs a rate-limited HTTP GET request and returns a goquery document
func (c *Client) Get(ctx context.Context, url string) (*goquery.Document, error) {
	select {
	case <-c.rateLimiter:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// Close cleans up the client resources
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

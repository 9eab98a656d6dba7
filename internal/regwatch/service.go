// Package regwatch tracks published regulatory updates relevant to AI
// governance, scraped from a configured bulletin page.
package regwatch

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
)

// Update is one published regulatory change notice
type Update struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// cacheTTL bounds how stale served updates may be before a refetch
const cacheTTL = 15 * time.Minute

// Service fetches and caches regulatory updates from the configured feed
type Service struct {
	client  *Client
	feedURL string
	log     logger.Logger

	mu        sync.RWMutex
	cached    []Update
	fetchedAt time.Time
}

// NewService creates a regulatory watch service for the given bulletin URL
func NewService(feedURL string, log logger.Logger) *Service {
	return &Service{
		client:  NewClient(1),
		feedURL: feedURL,
		log:     log,
	}
}

// Updates returns the current regulatory updates, serving from cache when it
// is fresh enough. A fetch failure with a warm cache falls back to the stale
// copy.
func (s *Service) Updates(ctx context.Context) ([]Update, error) {
	s.mu.RLock()
	if time.Since(s.fetchedAt) < cacheTTL && s.cached != nil {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	doc, err := s.client.Get(ctx, s.feedURL)
	if err != nil {
		s.mu.RLock()
		cached := s.cached
		s.mu.RUnlock()
		if cached != nil {
			s.log.Warn("Serving stale regulatory updates after fetch failure", "error", err.Error())
			return cached, nil
		}
		return nil, err
	}

	updates := parseUpdates(doc, s.feedURL)
	s.log.Info("Fetched regulatory updates", "count", len(updates))

	s.mu.Lock()
	s.cached = updates
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return updates, nil
}

// parseUpdates extracts update entries from a bulletin page. Bulletin markup
// varies between regulators, so matching is selector-tolerant: any article or
// list item carrying a linked heading counts as an entry.
func parseUpdates(doc *goquery.Document, baseURL string) []Update {
	var updates []Update
	seen := make(map[string]bool)

	doc.Find("article, li.update, div.bulletin, div.update-item").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h1, h2, h3, h4").First().Text())
		link := sel.Find("a[href]").First()
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" {
			return
		}

		href, _ := link.Attr("href")
		resolved := resolveURL(baseURL, href)
		if seen[title+resolved] {
			return
		}
		seen[title+resolved] = true

		updates = append(updates, Update{
			Title:       title,
			URL:         resolved,
			Summary:     strings.TrimSpace(sel.Find("p").First().Text()),
			PublishedAt: parsePublished(sel),
		})
	})

	return updates
}

func parsePublished(sel *goquery.Selection) time.Time {
	raw, ok := sel.Find("time").First().Attr("datetime")
	if !ok {
		raw = strings.TrimSpace(sel.Find("time, .date, .published").First().Text())
	}
	if raw == "" {
		return time.Time{}
	}

	layouts := []string{time.RFC3339, "2006-01-02", "January 2, 2006", "2 January 2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func resolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	baseParsed, err := url.Parse(base)
	if err != nil {
		return href
	}
	hrefParsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseParsed.ResolveReference(hrefParsed).String()
}

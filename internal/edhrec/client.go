// Package edhrec fetches commander recommendation data from the
// EDHREC JSON endpoints.
package edhrec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches pages from json.edhrec.com.
type Client struct {
	httpClient *http.Client
	baseURL    string
	siteURL    string
	limiter    *rate.Limiter
	cacheTTL   time.Duration

	mu    sync.Mutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	page      *Page
	fetchedAt time.Time
}

// Config configures the EDHREC client.
type Config struct {
	// BaseURL is the JSON endpoint root.
	BaseURL string

	// SiteURL is the human-facing site, used for page links.
	SiteURL string

	// CacheTTL is how long fetched pages stay valid.
	CacheTTL time.Duration

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout time.Duration

	// RequestsPerSecond caps the request rate.
	RequestsPerSecond float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://json.edhrec.com",
		SiteURL:           "https://edhrec.com",
		CacheTTL:          4 * time.Hour,
		RequestTimeout:    30 * time.Second,
		RequestsPerSecond: 2,
	}
}

// NewClient creates an EDHREC client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		siteURL:    strings.TrimRight(config.SiteURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cacheTTL:   config.CacheTTL,
		cache:      make(map[string]*cacheEntry),
	}
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9\- ]`)

// Slug converts a card name into the EDHREC URL slug. Double-faced
// names use the front face only.
func Slug(name string) string {
	if i := strings.Index(name, " // "); i >= 0 {
		name = name[:i]
	}
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "+", "plus ")
	s = slugStripRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	return s
}

// CommanderURL returns the edhrec.com page for a commander.
func (c *Client) CommanderURL(name string) string {
	return c.siteURL + "/commanders/" + Slug(name)
}

// CommanderPage fetches a commander's page, served from cache when
// fresh.
func (c *Client) CommanderPage(ctx context.Context, name string) (*Page, error) {
	return c.page(ctx, "/pages/commanders/"+Slug(name)+".json")
}

// CommanderOverview fetches deck count and page link for a commander.
func (c *Client) CommanderOverview(ctx context.Context, name string) (*Overview, error) {
	page, err := c.CommanderPage(ctx, name)
	if err != nil {
		return nil, err
	}
	display := page.Container.JSONDict.Card.Name
	if display == "" {
		display = name
	}
	return &Overview{
		Name:     display,
		NumDecks: page.NumDecks(),
		URL:      c.CommanderURL(name),
	}, nil
}

// Combos fetches the combo cardlists for a commander.
func (c *Client) Combos(ctx context.Context, name string) ([]CardList, error) {
	page, err := c.page(ctx, "/pages/combos/"+Slug(name)+".json")
	if err != nil {
		return nil, err
	}
	return page.Sections(), nil
}

// AverageDeck fetches the average decklist for a commander.
func (c *Client) AverageDeck(ctx context.Context, name string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var page averageDeckPage
	if err := c.fetchJSON(ctx, "/pages/average-decks/"+Slug(name)+".json", &page); err != nil {
		return nil, err
	}
	return page.decklist(), nil
}

func (c *Client) page(ctx context.Context, path string) (*Page, error) {
	if page := c.fromCache(path); page != nil {
		return page, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var page Page
	if err := c.fetchJSON(ctx, path, &page); err != nil {
		return nil, err
	}
	c.store(path, &page)
	return &page, nil
}

func (c *Client) fetchJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("edhrec request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("edhrec has no page at %s (check the commander name)", path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("edhrec returned %d for %s", resp.StatusCode, path)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read edhrec response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode edhrec response: %w", err)
	}
	return nil
}

func (c *Client) fromCache(path string) *Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[path]
	if !ok || time.Since(entry.fetchedAt) > c.cacheTTL {
		return nil
	}
	return entry.page
}

func (c *Client) store(path string, page *Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[path] = &cacheEntry{page: page, fetchedAt: time.Now()}
}

// Package moxfield is a client for the Moxfield deck API and the sync
// engine that keeps local decklists and remote decks aligned.
package moxfield

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// AuthError reports a rejected bearer token. The token expires
// periodically and must be re-extracted from a browser session.
type AuthError struct {
	StatusCode int
	Operation  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("moxfield auth failed (%d) on %s: bearer token may be expired or invalid", e.StatusCode, e.Operation)
}

// Config configures the Moxfield client.
type Config struct {
	// BaseURL is the Moxfield API base URL.
	BaseURL string

	// BearerToken authenticates write operations.
	BearerToken string

	// Username owns the decks listed by ListUserDecks.
	Username string

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout time.Duration

	// RequestsPerSecond throttles outgoing calls.
	RequestsPerSecond float64
}

// DefaultConfig returns default configuration for a token and user.
func DefaultConfig(token, username string) *Config {
	return &Config{
		BaseURL:           "https://api2.moxfield.com",
		BearerToken:       token,
		Username:          username,
		RequestTimeout:    30 * time.Second,
		RequestsPerSecond: 2,
	}
}

// clientVersion is sent as x-moxfield-version with every request.
const clientVersion = "2026.02.16.1"

// Client talks to the Moxfield REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	username   string
	limiter    *rate.Limiter
}

// NewClient creates a Moxfield API client.
func NewClient(config *Config) *Client {
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 30 * time.Second
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.BearerToken,
		username:   config.Username,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Username returns the configured deck owner.
func (c *Client) Username() string {
	return c.username
}

func (c *Client) do(ctx context.Context, method, path string, body any, extraHeaders map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-moxfield-version", clientVersion)
	req.Header.Set("Origin", "https://moxfield.com")
	req.Header.Set("Referer", "https://moxfield.com/")
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{StatusCode: resp.StatusCode, Operation: method + " " + path}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("moxfield %s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListUserDecks returns the configured user's deck summaries.
func (c *Client) ListUserDecks(ctx context.Context) ([]DeckSummary, error) {
	var resp deckListResponse
	path := fmt.Sprintf("/v2/users/%s/decks?pageNumber=1&pageSize=200", c.username)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetDeck returns the full deck object by public ID.
func (c *Client) GetDeck(ctx context.Context, publicID string) (*Deck, error) {
	var deck Deck
	if err := c.do(ctx, http.MethodGet, "/v3/decks/all/"+publicID, nil, nil, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// CreateDeck creates an empty public deck so it shows up in user
// listings.
func (c *Client) CreateDeck(ctx context.Context, name, format string) (*Deck, error) {
	var deck Deck
	body := map[string]string{"name": name, "format": format, "visibility": "public"}
	if err := c.do(ctx, http.MethodPost, "/v3/decks", body, nil, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// BulkEdit replaces the deck's boards wholesale with newline-delimited
// card lists. The version header implements optimistic concurrency.
func (c *Client) BulkEdit(ctx context.Context, publicID string, version int, commanderText, mainboardText string) error {
	headers := map[string]string{
		"x-deck-version":   strconv.Itoa(version),
		"x-public-deck-id": publicID,
	}
	body := map[string]map[string]string{
		"boards": {
			"commanders": commanderText,
			"mainboard":  mainboardText,
		},
	}
	return c.do(ctx, http.MethodPut, "/v3/decks/"+publicID+"/bulk-edit", body, headers, nil)
}

// addToCommanders posts a card into the commanders zone. Moxfield
// keys this endpoint on the deck's internal ID, not its public ID.
func (c *Client) addToCommanders(ctx context.Context, internalID, publicID string, version int, cardID string) error {
	headers := map[string]string{
		"x-deck-version":   strconv.Itoa(version),
		"x-public-deck-id": publicID,
	}
	body := map[string]any{"cardId": cardID, "quantity": 1}
	return c.do(ctx, http.MethodPost, "/v2/decks/"+internalID+"/cards/commanders", body, headers, nil)
}

// MoveToCommanders moves the named card from the mainboard into the
// commanders zone, then strips any mainboard copy. It is a no-op when
// the card already sits in the right zone.
func (c *Client) MoveToCommanders(ctx context.Context, publicID, commanderName string) error {
	full, err := c.GetDeck(ctx, publicID)
	if err != nil {
		return fmt.Errorf("failed to fetch deck for commander assignment: %w", err)
	}

	inZone := false
	for _, entry := range full.Boards["commanders"].Cards {
		if strings.EqualFold(entry.Card.Name, commanderName) {
			inZone = true
			break
		}
	}

	var cardID string
	inMainboard := false
	for _, entry := range full.Boards["mainboard"].Cards {
		if strings.EqualFold(entry.Card.Name, commanderName) {
			cardID = entry.Card.ID
			inMainboard = true
			break
		}
	}

	if !inMainboard {
		if inZone {
			return nil
		}
		return fmt.Errorf("commander %q not found in deck %s", commanderName, publicID)
	}

	if !inZone {
		if cardID == "" {
			return fmt.Errorf("commander %q has no card id in mainboard", commanderName)
		}
		if err := c.addToCommanders(ctx, full.ID, publicID, full.Version, cardID); err != nil {
			return fmt.Errorf("failed to move commander: %w", err)
		}
		full, err = c.GetDeck(ctx, publicID)
		if err != nil {
			// The move itself succeeded.
			return nil
		}
	}

	// Rewrite the mainboard without the commander. Moxfield usually
	// removes the moved copy itself, but not reliably.
	var lines []string
	for _, entry := range full.Boards["mainboard"].Cards {
		if !strings.EqualFold(entry.Card.Name, commanderName) {
			lines = append(lines, formatLine(entry.Quantity, entry.Card.Name))
		}
	}
	sort.Strings(lines)
	if len(lines) == len(full.Boards["mainboard"].Cards) {
		return nil
	}
	if err := c.BulkEdit(ctx, publicID, full.Version, "", strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to strip commander from mainboard: %w", err)
	}
	return nil
}

func formatLine(qty int, name string) string {
	return fmt.Sprintf("%d %s", qty, name)
}

package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matheuskafuri/dexterm/internal/catalog"
	"go.uber.org/zap"
)

// ErrMalformed is returned when a response decodes but lacks the fields the
// endpoint promises.
var ErrMalformed = errors.New("malformed response")

const (
	DefaultBaseURL      = "https://pokeapi.co/api/v2"
	DefaultListingLimit = 1300
	defaultTimeout      = 15 * time.Second
)

// Client talks to the listing, category and detail endpoints.
type Client struct {
	baseURL string
	limit   int
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithListingLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		baseURL: base,
		limit:   DefaultListingLimit,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listingPayload struct {
	Results *[]struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// ListEntries fetches the whole catalog in one request. IDs are left zero;
// the store numbers entries by arrival order.
func (c *Client) ListEntries(ctx context.Context) ([]catalog.Entry, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.limit))
	q.Set("offset", "0")
	endpoint := c.baseURL + "/pokemon?" + q.Encode()

	var payload listingPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("fetching listing: %w: missing results", ErrMalformed)
	}

	entries := make([]catalog.Entry, 0, len(*payload.Results))
	for _, r := range *payload.Results {
		entries = append(entries, catalog.Entry{Name: r.Name, URL: r.URL})
	}
	c.logger.Debug("listing fetched", zap.Int("count", len(entries)))
	return entries, nil
}

type typePayload struct {
	Pokemon *[]struct {
		Slot    int `json:"slot"`
		Pokemon struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"pokemon"`
	} `json:"pokemon"`
}

// TypeMembers returns the detail URLs whose slot-1 type is category.
func (c *Client) TypeMembers(ctx context.Context, category string) (catalog.MembershipSet, error) {
	endpoint, err := url.JoinPath(c.baseURL, "type", category)
	if err != nil {
		return nil, err
	}

	var payload typePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetching type %s: %w", category, err)
	}
	if payload.Pokemon == nil {
		return nil, fmt.Errorf("fetching type %s: %w: missing pokemon", category, ErrMalformed)
	}

	set := catalog.MembershipSet{}
	for _, m := range *payload.Pokemon {
		if m.Slot != 1 || m.Pokemon.URL == "" {
			continue
		}
		set[m.Pokemon.URL] = struct{}{}
	}
	return set, nil
}

type detailPayload struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// Detail fetches the full record behind an entry URL.
func (c *Client) Detail(ctx context.Context, detailURL string) (*catalog.Detail, error) {
	var payload detailPayload
	if err := c.getJSON(ctx, detailURL, &payload); err != nil {
		return nil, fmt.Errorf("fetching detail: %w", err)
	}
	if payload.Name == "" {
		return nil, fmt.Errorf("fetching detail %s: %w: missing name", detailURL, ErrMalformed)
	}

	d := &catalog.Detail{
		ID:      payload.ID,
		Name:    payload.Name,
		URL:     detailURL,
		Artwork: deref(payload.Sprites.Other.OfficialArtwork.FrontDefault),
		Sprite:  deref(payload.Sprites.FrontDefault),
	}
	for _, t := range payload.Types {
		d.Types = append(d.Types, catalog.TypeSlot{Slot: t.Slot, Name: t.Type.Name})
	}
	return d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("GET",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: status %d: %s", endpoint, resp.StatusCode, drainError(resp.Body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}

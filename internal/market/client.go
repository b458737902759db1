// Package market talks to the CoinGecko HTTP API: the coin catalog,
// spot prices, the global market snapshot, and trending coins.
// Per-turn lookups (price, global, trending) never return errors to the
// caller; a failed fetch is logged and reported as absent so the
// conversation degrades instead of aborting.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/coinbuddy/backend/internal/model/coin"
)

// ErrBadCatalogShape reports an upstream /coins/list body that is not a
// JSON array. Such a response is never cached.
var ErrBadCatalogShape = errors.New("coin catalog response is not a list")

const trendingLimit = 3

// Client is the CoinGecko API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client against the given API base URL, e.g.
// "https://api.coingecko.com/api/v3".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// LoadCatalog fetches the full coin list.
func (c *Client) LoadCatalog(ctx context.Context) ([]coin.Coin, error) {
	raw, err := c.get(ctx, "/coins/list", nil)
	if err != nil {
		return nil, fmt.Errorf("load coin catalog: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s", ErrBadCatalogShape, snippet(trimmed))
	}

	var coins []coin.Coin
	if err := json.Unmarshal(trimmed, &coins); err != nil {
		return nil, fmt.Errorf("decode coin catalog: %w", err)
	}
	return coins, nil
}

// Price returns the formatted USD spot price for a coin id, or false
// when the id is empty, the fetch fails, or the usd field is missing.
func (c *Client) Price(ctx context.Context, coinID string) (string, bool) {
	if coinID == "" {
		return "", false
	}

	raw, err := c.get(ctx, "/simple/price", url.Values{
		"ids":           {coinID},
		"vs_currencies": {"usd"},
	})
	if err != nil {
		log.Printf("[market] price fetch for %s failed: %v", coinID, err)
		return "", false
	}

	var body map[string]struct {
		USD *float64 `json:"usd"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		log.Printf("[market] price decode for %s failed: %v", coinID, err)
		return "", false
	}

	entry, ok := body[coinID]
	if !ok || entry.USD == nil {
		return "", false
	}
	return FormatPrice(*entry.USD), true
}

// GlobalMarketCap returns the total crypto market cap in USD.
func (c *Client) GlobalMarketCap(ctx context.Context) (float64, bool) {
	raw, err := c.get(ctx, "/global", nil)
	if err != nil {
		log.Printf("[market] global fetch failed: %v", err)
		return 0, false
	}

	var body struct {
		Data struct {
			TotalMarketCap map[string]float64 `json:"total_market_cap"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		log.Printf("[market] global decode failed: %v", err)
		return 0, false
	}

	cap, ok := body.Data.TotalMarketCap["usd"]
	if !ok {
		return 0, false
	}
	return cap, true
}

// Trending returns the names of up to three currently trending coins.
func (c *Client) Trending(ctx context.Context) ([]string, bool) {
	raw, err := c.get(ctx, "/search/trending", nil)
	if err != nil {
		log.Printf("[market] trending fetch failed: %v", err)
		return nil, false
	}

	var body struct {
		Coins []struct {
			Item struct {
				Name string `json:"name"`
			} `json:"item"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		log.Printf("[market] trending decode failed: %v", err)
		return nil, false
	}

	names := make([]string, 0, trendingLimit)
	for _, entry := range body.Coins {
		if len(names) == trendingLimit {
			break
		}
		names = append(names, entry.Item.Name)
	}
	return names, true
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func snippet(raw []byte) string {
	const max = 120
	if len(raw) > max {
		raw = raw[:max]
	}
	return string(raw)
}

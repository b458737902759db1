package stream

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinbuddy/backend/internal/model/coin"
	"github.com/coinbuddy/backend/internal/model/intent"
	convoservice "github.com/coinbuddy/backend/internal/service/convo"
	"github.com/coinbuddy/backend/internal/service/resolver"
)

type staticCatalog struct{ coins []coin.Coin }

func (s staticCatalog) Catalog(_ context.Context) ([]coin.Coin, error) { return s.coins, nil }

type staticPrices map[string]string

func (p staticPrices) Price(_ context.Context, coinID string) (string, bool) {
	v, ok := p[coinID]
	return v, ok
}

type noMarket struct{}

func (noMarket) GlobalMarketCap(_ context.Context) (float64, bool) { return 0, false }

type noTrending struct{}

func (noTrending) Trending(_ context.Context) ([]string, bool) { return nil, false }

func setupHandler(t *testing.T) (*Handler, convoservice.Store) {
	t.Helper()

	table, err := intent.NewTable(intent.Seed())
	if err != nil {
		t.Fatalf("NewTable err: %v", err)
	}

	catalog := staticCatalog{coins: []coin.Coin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}}
	store := convoservice.NewMemoryStore()
	engine := convoservice.NewEngine(store, table, resolver.New(catalog), catalog, convoservice.Providers{
		Prices:   staticPrices{"bitcoin": "$65,000.00"},
		Market:   noMarket{},
		Trending: noTrending{},
	}, convoservice.WithPickFn(func(int) int { return 0 }))

	return New(engine), store
}

func TestHandleStreamRequest(t *testing.T) {
	h, store := setupHandler(t)
	session := store.Create()

	resp := httptest.NewRecorder()
	if err := h.HandleStreamRequest(context.Background(), resp, session.ID, "price of bitcoin"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := resp.Body.String()
	if !strings.Contains(body, "The current price of Bitcoin is $65,000.00.") {
		t.Fatalf("expected bot reply in stream, got %q", body)
	}
	if !strings.Contains(body, "event: done") {
		t.Fatalf("expected done event, got %q", body)
	}
	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestHandleStreamRequestUnknownSession(t *testing.T) {
	h, _ := setupHandler(t)

	resp := httptest.NewRecorder()
	if err := h.HandleStreamRequest(context.Background(), resp, "missing", "hello"); err == nil {
		t.Fatal("expected error for unknown session")
	}
	if !strings.Contains(resp.Body.String(), "event: error") {
		t.Fatalf("expected error event, got %q", resp.Body.String())
	}
}

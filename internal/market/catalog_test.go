package market

import (
	"context"
	"errors"
	"testing"

	"github.com/coinbuddy/backend/internal/model/coin"
)

type countingLoader struct {
	calls int
	coins []coin.Coin
	err   error
}

func (l *countingLoader) LoadCatalog(_ context.Context) ([]coin.Coin, error) {
	l.calls++
	return l.coins, l.err
}

func TestCatalogLoadsOnce(t *testing.T) {
	loader := &countingLoader{coins: []coin.Coin{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}}
	catalog := NewCatalog(loader)

	for i := 0; i < 3; i++ {
		coins, err := catalog.Catalog(context.Background())
		if err != nil {
			t.Fatalf("Catalog err: %v", err)
		}
		if len(coins) != 1 || coins[0].ID != "bitcoin" {
			t.Fatalf("unexpected coins: %+v", coins)
		}
	}

	if loader.calls != 1 {
		t.Fatalf("expected a single upstream load, got %d", loader.calls)
	}
}

func TestCatalogDoesNotCacheFailures(t *testing.T) {
	loader := &countingLoader{err: errors.New("boom")}
	catalog := NewCatalog(loader)

	if _, err := catalog.Catalog(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	loader.err = nil
	loader.coins = []coin.Coin{{ID: "eth", Symbol: "eth", Name: "Ether"}}

	coins, err := catalog.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog err after recovery: %v", err)
	}
	if len(coins) != 1 || coins[0].ID != "eth" {
		t.Fatalf("unexpected coins: %+v", coins)
	}
	if loader.calls != 2 {
		t.Fatalf("expected exactly two upstream loads, got %d", loader.calls)
	}
}

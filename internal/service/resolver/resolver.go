// Package resolver maps free-text coin references onto catalog entries.
package resolver

import (
	"context"
	"strings"

	"github.com/coinbuddy/backend/internal/model/coin"
)

// CatalogSource supplies the coin list the resolver searches.
type CatalogSource interface {
	Catalog(ctx context.Context) ([]coin.Coin, error)
}

// Resolver finds the best catalog match for a query. Matching is pure
// over the catalog snapshot; the only error path is a failed catalog
// load.
type Resolver struct {
	catalog CatalogSource
}

// New builds a Resolver on top of a catalog source.
func New(catalog CatalogSource) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns the best-matching coin for the query, trying in
// order: the btc→bitcoin shortcut, exact id, exact symbol (shortest id
// wins ties, then shortest name), exact name, then the first coin whose
// id, symbol, or name contains the query. Wrapped "binance-peg" tokens
// are excluded up front.
func (r *Resolver) Resolve(ctx context.Context, query string) (coin.Coin, bool, error) {
	list, err := r.catalog.Catalog(ctx)
	if err != nil {
		return coin.Coin{}, false, err
	}

	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]coin.Coin, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.ID), "binance-peg") {
			continue
		}
		filtered = append(filtered, c)
	}

	// "btc" always means bitcoin when the catalog has it.
	if q == "btc" {
		for _, c := range filtered {
			if c.ID == "bitcoin" {
				return c, true, nil
			}
		}
	}

	for _, c := range filtered {
		if strings.ToLower(c.ID) == q {
			return c, true, nil
		}
	}

	var symbolMatches []coin.Coin
	for _, c := range filtered {
		if strings.ToLower(c.Symbol) == q {
			symbolMatches = append(symbolMatches, c)
		}
	}
	if len(symbolMatches) > 0 {
		best := symbolMatches[0]
		for _, c := range symbolMatches[1:] {
			if len(c.ID) < len(best.ID) ||
				(len(c.ID) == len(best.ID) && len(c.Name) < len(best.Name)) {
				best = c
			}
		}
		return best, true, nil
	}

	for _, c := range filtered {
		if strings.ToLower(c.Name) == q {
			return c, true, nil
		}
	}

	for _, c := range filtered {
		if strings.Contains(strings.ToLower(c.ID), q) ||
			strings.Contains(strings.ToLower(c.Symbol), q) ||
			strings.Contains(strings.ToLower(c.Name), q) {
			return c, true, nil
		}
	}

	return coin.Coin{}, false, nil
}

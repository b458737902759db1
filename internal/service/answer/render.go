// Package answer fills placeholder markers in answer templates.
//
// The template mini-grammar has four markers, matched case-insensitively
// and optionally wrapped in single '*' emphasis characters (which are
// consumed along with the marker):
//
//	[CRYPTO_NAME]                         resolved coin name
//	[API_CALL:COINGECKO_PRICE]            live price (a suffix before the
//	                                      closing bracket is tolerated)
//	[API_CALL:COINGECKO_MARKET_UPDATE]    global market cap line
//	[API_CALL:COINGECKO_TRENDING]         trending coin names
//
// Every occurrence is replaced independently; a template without
// markers passes through unchanged.
package answer

import "regexp"

// Fallback strings substituted when a value is absent.
const (
	FallbackCoinName     = "the coin"
	FallbackPrice        = "not in my database Sorry"
	FallbackMarketUpdate = "[market update unavailable]"
	FallbackTrending     = "[trending info unavailable]"
)

var (
	nameMarker     = regexp.MustCompile(`(?i)\*?\[CRYPTO_NAME\]\*?`)
	priceMarker    = regexp.MustCompile(`(?i)\*?\[API_CALL:COINGECKO_PRICE(?:[^\]]*)?\]\*?`)
	marketMarker   = regexp.MustCompile(`(?i)\*?\[API_CALL:COINGECKO_MARKET_UPDATE\]\*?`)
	trendingMarker = regexp.MustCompile(`(?i)\*?\[API_CALL:COINGECKO_TRENDING\]\*?`)
)

// Values carries the dynamic content for one rendering. Empty fields
// mean "absent" and substitute the documented fallback text.
type Values struct {
	CoinName     string
	Price        string
	MarketUpdate string
	Trending     string
}

// Render substitutes every marker occurrence in the template.
func Render(template string, v Values) string {
	out := nameMarker.ReplaceAllLiteralString(template, orElse(v.CoinName, FallbackCoinName))
	out = priceMarker.ReplaceAllLiteralString(out, orElse(v.Price, FallbackPrice))
	out = marketMarker.ReplaceAllLiteralString(out, orElse(v.MarketUpdate, FallbackMarketUpdate))
	return trendingMarker.ReplaceAllLiteralString(out, orElse(v.Trending, FallbackTrending))
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

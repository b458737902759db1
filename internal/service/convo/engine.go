// Package convo is the conversation engine: it owns per-session
// context, routes each message through the active guided flow or the
// intent classifier, and produces the outgoing bot messages.
package convo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/coinbuddy/backend/internal/market"
	"github.com/coinbuddy/backend/internal/model/coin"
	convomodel "github.com/coinbuddy/backend/internal/model/convo"
	"github.com/coinbuddy/backend/internal/model/intent"
	"github.com/coinbuddy/backend/internal/service/answer"
	"github.com/coinbuddy/backend/internal/service/classify"
)

// ErrSessionNotFound reports a message for a session id the store does
// not know.
var ErrSessionNotFound = errors.New("session not found")

// Fixed reply text.
const (
	msgFallback   = "Didn't catch that. Could you rephrase?"
	msgReset      = "Let's reset. What would you like to know?"
	msgAskBudget  = "Sure! What's your total budget in USD?"
	platformOffer = "Want help choosing a platform?"
	maxFallbacks  = 3
)

// Literal marker strings checked (case-sensitively) on the chosen
// answer to decide which live lookups to perform.
const (
	markerPrice    = "[API_CALL:COINGECKO_PRICE]"
	markerMarket   = "[API_CALL:COINGECKO_MARKET_UPDATE]"
	markerTrending = "[API_CALL:COINGECKO_TRENDING]"
)

// helpTriggers are the utterances that, matched exactly after
// trim/lowercase, make the engine emit every answer variant of the
// classified intent instead of one random pick.
var helpTriggers = map[string]bool{
	"help": true, "what can u do": true, "how to": true,
	"how does this work": true, "commands": true, "what can you do": true,
	"assist me": true, "functions": true, "how do you work": true,
	"options": true, "features": true, "list": true, "support": true,
	"start": true,
}

// CoinResolver resolves free text to a catalog coin.
type CoinResolver interface {
	Resolve(ctx context.Context, query string) (coin.Coin, bool, error)
}

// CatalogSource supplies the raw catalog, used by the portfolio flow to
// validate preference input.
type CatalogSource interface {
	Catalog(ctx context.Context) ([]coin.Coin, error)
}

// PriceProvider returns a formatted spot price, or false when the
// lookup fails.
type PriceProvider interface {
	Price(ctx context.Context, coinID string) (string, bool)
}

// MarketProvider returns the global crypto market cap in USD.
type MarketProvider interface {
	GlobalMarketCap(ctx context.Context) (float64, bool)
}

// TrendingProvider returns the names of currently trending coins.
type TrendingProvider interface {
	Trending(ctx context.Context) ([]string, bool)
}

// Providers bundles the live-data dependencies of the engine.
type Providers struct {
	Prices   PriceProvider
	Market   MarketProvider
	Trending TrendingProvider
}

// Engine is the per-message state machine.
type Engine struct {
	store      Store
	intents    *intent.Table
	classifier *classify.Classifier
	resolver   CoinResolver
	catalog    CatalogSource
	providers  Providers
	pick       func(n int) int
}

// Option customizes engine construction.
type Option func(*Engine)

// WithPickFn replaces the random answer selection, for deterministic
// tests.
func WithPickFn(pick func(n int) int) Option {
	return func(e *Engine) { e.pick = pick }
}

// NewEngine wires the engine. The table is read-only after startup and
// shared across sessions.
func NewEngine(store Store, table *intent.Table, res CoinResolver, catalog CatalogSource, p Providers, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		intents:    table,
		classifier: classify.New(table),
		resolver:   res,
		catalog:    catalog,
		providers:  p,
		pick:       rand.Intn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one inbound utterance for a session and returns the
// outgoing messages, in order. At most one message per session may be
// in flight at a time; callers serialize per session.
func (e *Engine) Handle(ctx context.Context, sessionID, text string) ([]string, error) {
	sess, ok := e.store.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	msg := strings.TrimSpace(text)

	// An active portfolio flow takes absolute precedence over intent
	// classification.
	if sess.ActiveFlow == convomodel.FlowPortfolioBuilder {
		return e.handlePortfolioStep(ctx, sess, msg), nil
	}

	def, matched := e.classifier.Classify(msg)

	var (
		coinID   string
		coinName string
		haveCoin bool
	)

	if matched && classify.IsCoinIntent(def.Tag) {
		candidate := classify.ExtractCoinName(msg)
		c, found, err := e.resolver.Resolve(ctx, candidate)
		if err != nil {
			log.Printf("[convo] coin resolution for %q failed: %v", candidate, err)
		} else if found {
			coinID, coinName, haveCoin = c.ID, c.Name, true
			sess.LastCoinMentioned = c.ID
		}
	} else if !matched && sess.LastIntentTag == intent.TagCryptoNameOnly && sess.LastCoinMentioned != "" {
		// A bare follow-up after a coin mention inherits the coin and
		// is re-routed as a market question.
		if d, ok := e.intents.Find(intent.TagMarketAndTrends); ok {
			def, matched = d, true
		}
		coinID, haveCoin = sess.LastCoinMentioned, true
	}

	if matched {
		sess.LastIntentTag = def.Tag
	}

	// Context-only shortcut: coin remembered but nothing classified.
	// On price failure this intentionally falls through to the
	// fallback counter below.
	if !matched && haveCoin {
		if price, ok := e.providers.Prices.Price(ctx, coinID); ok {
			return []string{fmt.Sprintf("The current price of %s is %s.", coinID, price)}, nil
		}
	}

	if !matched {
		sess.FallbackCount++
		if sess.FallbackCount >= maxFallbacks {
			sess.ResetContext()
			return []string{msgReset}, nil
		}
		return []string{msgFallback}, nil
	}
	sess.FallbackCount = 0

	if def.Tag == intent.TagPortfolioBuilder {
		sess.ActiveFlow = convomodel.FlowPortfolioBuilder
		sess.FlowStep = convomodel.StepAskBudget
		return []string{msgAskBudget}, nil
	}

	if def.Tag == intent.TagCryptoAdvice && offersPlatformHelp(def.Answers) {
		sess.ActiveFlow = convomodel.FlowPlatformRecommendation
		return []string{def.Answers[0]}, nil
	}

	if sess.ActiveFlow == convomodel.FlowPlatformRecommendation {
		if strings.Contains(strings.ToLower(msg), "yes") {
			sess.ActiveFlow = convomodel.FlowNone
			if d, ok := e.intents.Find(intent.TagCryptoPlatforms); ok {
				return []string{d.Answers[0]}, nil
			}
			return nil, nil
		}
		// Not affirmative: leave the flow armed and answer normally.
	}

	raw := def.Answers[e.pick(len(def.Answers))]

	vals := answer.Values{CoinName: coinName}
	if haveCoin && (strings.Contains(raw, markerPrice) || strings.Contains(raw, markerMarket)) {
		vals.Price, _ = e.providers.Prices.Price(ctx, coinID)
	}
	if strings.Contains(raw, markerMarket) {
		if capUSD, ok := e.providers.Market.GlobalMarketCap(ctx); ok {
			vals.MarketUpdate = "Global crypto market cap is $" + market.FormatAmount(capUSD)
		}
	}
	if strings.Contains(raw, markerTrending) {
		if names, ok := e.providers.Trending.Trending(ctx); ok {
			vals.Trending = strings.Join(names, ", ")
		}
	}

	if helpTriggers[strings.ToLower(msg)] {
		out := make([]string, 0, len(def.Answers))
		for _, a := range def.Answers {
			out = append(out, answer.Render(a, vals))
		}
		return out, nil
	}

	return []string{answer.Render(raw, vals)}, nil
}

func offersPlatformHelp(answers []string) bool {
	for _, a := range answers {
		if strings.Contains(a, platformOffer) {
			return true
		}
	}
	return false
}

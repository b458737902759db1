// Package classify detects which intent an utterance belongs to and
// pulls coin-name candidates out of price questions.
package classify

import (
	"regexp"
	"strings"

	"github.com/coinbuddy/backend/internal/model/intent"
)

// coinQuestion captures the trailing coin token in phrasings like
// "price of X", "price for X", "what's the price of X".
var coinQuestion = regexp.MustCompile(`(?i)(?:price of|price for|what(?:'s| is) the price of)\s+([a-z0-9\-]+)`)

// coinTags are the intents for which a coin reference is extracted and
// resolved before answering.
var coinTags = map[string]bool{
	intent.TagCryptoNameOnly:  true,
	intent.TagCryptoPrice:     true,
	intent.TagMarketAndTrends: true,
}

// Classifier matches utterances against the intent table.
type Classifier struct {
	table *intent.Table
}

// New builds a classifier over a table.
func New(table *intent.Table) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the first intent, in declared order, with a keyword
// contained in the lowercased utterance. No scoring: first match wins.
func (c *Classifier) Classify(utterance string) (intent.Definition, bool) {
	lower := strings.ToLower(utterance)
	for _, def := range c.table.All() {
		for _, kw := range def.Keywords {
			if strings.Contains(lower, kw) {
				return def, true
			}
		}
	}
	return intent.Definition{}, false
}

// IsCoinIntent reports whether the tag is one of the coin-related
// intents.
func IsCoinIntent(tag string) bool {
	return coinTags[tag]
}

// ExtractCoinName pulls the coin candidate out of a price question, or
// falls back to the whole trimmed message.
func ExtractCoinName(message string) string {
	if m := coinQuestion.FindStringSubmatch(strings.ToLower(message)); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(message)
}

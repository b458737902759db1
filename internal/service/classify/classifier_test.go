package classify_test

import (
	"testing"

	"github.com/coinbuddy/backend/internal/model/intent"
	"github.com/coinbuddy/backend/internal/service/classify"
)

func seedClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	table, err := intent.NewTable(intent.Seed())
	if err != nil {
		t.Fatalf("NewTable err: %v", err)
	}
	return classify.New(table)
}

func TestClassifyPriceQuestion(t *testing.T) {
	c := seedClassifier(t)

	def, ok := c.Classify("what's the price of dogecoin?")
	if !ok || def.Tag != intent.TagCryptoPrice {
		t.Fatalf("expected crypto_price, got %q (ok=%v)", def.Tag, ok)
	}
}

func TestClassifyFirstDefinedWins(t *testing.T) {
	c := seedClassifier(t)

	// "help me choose an exchange" matches both help and crypto
	// platforms; help is declared first.
	def, ok := c.Classify("help me choose an exchange")
	if !ok || def.Tag != "help" {
		t.Fatalf("expected help, got %q (ok=%v)", def.Tag, ok)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := seedClassifier(t)

	def, ok := c.Classify("PRICE OF BITCOIN")
	if !ok || def.Tag != intent.TagCryptoPrice {
		t.Fatalf("expected crypto_price, got %q (ok=%v)", def.Tag, ok)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	c := seedClassifier(t)

	if def, ok := c.Classify("qwerty zzzz"); ok {
		t.Fatalf("expected no intent, got %q", def.Tag)
	}
}

func TestExtractCoinName(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"price of bitcoin", "bitcoin"},
		{"price for eth", "eth"},
		{"what's the price of shiba-inu today", "shiba-inu"},
		{"what is the price of DOGE", "doge"},
		{"tell me about solana", "tell me about solana"},
		{"  cardano  ", "cardano"},
	}

	for _, tc := range cases {
		if got := classify.ExtractCoinName(tc.message); got != tc.want {
			t.Errorf("ExtractCoinName(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestIsCoinIntent(t *testing.T) {
	for _, tag := range []string{intent.TagCryptoPrice, intent.TagCryptoNameOnly, intent.TagMarketAndTrends} {
		if !classify.IsCoinIntent(tag) {
			t.Errorf("expected %q to be coin related", tag)
		}
	}
	if classify.IsCoinIntent("greeting") {
		t.Error("greeting should not be coin related")
	}
}

package intent

// Tags the conversation engine gives special treatment to.
const (
	TagCryptoPrice      = "crypto_price"
	TagCryptoNameOnly   = "crypto_name_only"
	TagMarketAndTrends  = "market_and_trends"
	TagPortfolioBuilder = "portfolio builder"
	TagCryptoAdvice     = "crypto advice"
	TagCryptoPlatforms  = "crypto platforms"
)

// Seed provides the built-in intent table. Order matters: the
// classifier returns the first definition whose keyword appears in the
// utterance, so broader keywords sit lower in the list.
func Seed() []Definition {
	return []Definition{
		{
			Tag: "help",
			Keywords: []string{
				"help", "what can u do", "what can you do", "how does this work",
				"how do you work", "how to", "commands", "assist me", "functions",
				"options", "features", "list", "support", "start",
			},
			Answers: []string{
				"I can look up live prices: try 'price of bitcoin'.",
				"I can report the market: ask 'how is the market doing?' or what's trending.",
				"I can sketch a starter portfolio: just say 'build me a portfolio'.",
			},
		},
		{
			Tag:      "greeting",
			Keywords: []string{"hello", "hey", "good morning", "good evening", "howdy"},
			Answers: []string{
				"Hey there! Ask me about any coin, the market, or say 'build me a portfolio'.",
				"Hello! I can check live prices, market trends, and help plan a portfolio.",
			},
		},
		{
			Tag:      TagPortfolioBuilder,
			Keywords: []string{"portfolio", "build me a portfolio", "allocate", "invest my"},
			Answers: []string{
				"Sure! What's your total budget in USD?",
			},
		},
		{
			Tag:      TagCryptoAdvice,
			Keywords: []string{"should i buy", "advice", "recommend", "worth investing", "good investment"},
			Answers: []string{
				"I can't give financial advice, but I can show you live data so you can decide. Want help choosing a platform?",
				"Crypto is volatile, so do your own research. Want help choosing a platform?",
			},
		},
		{
			Tag:      TagCryptoPlatforms,
			Keywords: []string{"exchange", "platform", "where to buy", "coinbase", "binance", "kraken"},
			Answers: []string{
				"Popular platforms include Coinbase, Kraken, and Binance. Compare fees and supported coins before committing.",
				"Coinbase is beginner friendly; Kraken and Binance offer more advanced trading.",
			},
		},
		{
			Tag:      TagCryptoPrice,
			Keywords: []string{"price of", "price for", "how much is", "current price", "price"},
			Answers: []string{
				"The current price of *[CRYPTO_NAME]* is *[API_CALL:COINGECKO_PRICE]*.",
				"*[CRYPTO_NAME]* is trading at *[API_CALL:COINGECKO_PRICE]* right now.",
			},
		},
		{
			Tag:      TagMarketAndTrends,
			Keywords: []string{"market", "trending", "trends", "bull", "bear", "hot right now"},
			Answers: []string{
				"*[API_CALL:COINGECKO_MARKET_UPDATE]*. *[CRYPTO_NAME]* is at *[API_CALL:COINGECKO_PRICE]*.",
				"Trending right now: *[API_CALL:COINGECKO_TRENDING]*.",
				"*[API_CALL:COINGECKO_MARKET_UPDATE]*.",
			},
		},
		{
			Tag: TagCryptoNameOnly,
			Keywords: []string{
				"bitcoin", "btc", "ethereum", "eth", "dogecoin", "solana", "cardano",
				"ripple", "xrp", "litecoin", "bnb", "shiba",
			},
			Answers: []string{
				"*[CRYPTO_NAME]* — want its price, or a look at the market?",
				"Tracking *[CRYPTO_NAME]*. Ask me for its price or what's trending.",
			},
		},
		{
			Tag:      "confirmation",
			Keywords: []string{"yes", "yeah", "yep", "sure thing", "okay"},
			Answers: []string{
				"Okay!",
				"Got it.",
			},
		},
		{
			Tag:      "thanks",
			Keywords: []string{"thank", "thx", "appreciated"},
			Answers: []string{
				"Anytime!",
				"Happy to help.",
			},
		},
		{
			Tag:      "goodbye",
			Keywords: []string{"bye", "goodbye", "see you", "later"},
			Answers: []string{
				"Bye! Come back when you're curious about the market.",
				"See you around!",
			},
		},
	}
}

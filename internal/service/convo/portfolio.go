package convo

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	convomodel "github.com/coinbuddy/backend/internal/model/convo"
)

// Portfolio flow reply text.
const (
	msgBadBudget     = "Please enter a valid number for your budget."
	msgBadRisk       = "Please enter a valid risk tolerance: high, low, or mixed."
	msgBadPreference = "Please enter valid coin names or say 'no preference'."
	msgAskRisk       = "Got it. Your budget is $%s. What's your risk tolerance? (high / low / mixed)"
	msgAskPreference = "Any specific coin preferences? If not, say 'no preference'."
)

const defaultBudget = 100

// Preset pick lists keyed by risk tolerance.
var riskPresets = map[string][]string{
	"high":  {"pepe", "dogecoin", "shiba", "solaxy", "centrifuge"},
	"low":   {"bitcoin", "ethereum", "bnb"},
	"mixed": {"bitcoin", "ethereum", "solana", "dogecoin"},
}

// paddingCoins are added when the user names exactly one valid coin, to
// avoid a single-coin "portfolio".
var paddingCoins = []string{"bitcoin", "ethereum"}

// handlePortfolioStep advances the budget → risk → preference dialogue.
// Invalid input reprompts the same step without advancing.
func (e *Engine) handlePortfolioStep(ctx context.Context, sess *convomodel.Session, msg string) []string {
	switch sess.FlowStep {
	case convomodel.StepAskBudget:
		budget, ok := parseBudget(msg)
		if !ok {
			return []string{msgBadBudget}
		}
		sess.FlowTempData["budget"] = budget
		sess.FlowStep = convomodel.StepAskRiskLevel
		return []string{fmt.Sprintf(msgAskRisk, formatNumber(budget))}

	case convomodel.StepAskRiskLevel:
		risk := strings.ToLower(strings.TrimSpace(msg))
		if _, ok := riskPresets[risk]; !ok {
			return []string{msgBadRisk}
		}
		sess.FlowTempData["risk"] = risk
		sess.FlowStep = convomodel.StepAskPreference
		return []string{msgAskPreference}

	case convomodel.StepAskPreference:
		return e.finishPortfolio(ctx, sess, strings.ToLower(msg))
	}

	// Unreachable with well-formed state; drop the flow to recover.
	sess.ResetContext()
	return []string{msgReset}
}

func (e *Engine) finishPortfolio(ctx context.Context, sess *convomodel.Session, pref string) []string {
	risk, _ := sess.FlowTempData["risk"].(string)
	if risk == "" {
		risk = "mixed"
	}

	var picks []string
	if strings.Contains(pref, "no") {
		picks = riskPresets[risk]
	} else {
		valid := e.validPreferences(ctx, pref)
		if len(valid) == 0 {
			return []string{msgBadPreference}
		}
		if len(valid) == 1 {
			picks = valid
			for _, extra := range paddingCoins {
				if extra != valid[0] {
					picks = append(picks, extra)
				}
			}
		} else {
			picks = valid
		}
	}

	budget, _ := sess.FlowTempData["budget"].(float64)
	if budget == 0 {
		budget = defaultBudget
	}
	perCoin := math.Floor(budget / float64(len(picks)))

	parts := make([]string, 0, len(picks))
	for _, c := range picks {
		parts = append(parts, "$"+formatNumber(perCoin)+" in "+c)
	}

	sess.ActiveFlow = convomodel.FlowNone
	sess.FlowStep = convomodel.StepNone
	sess.FlowTempData = make(map[string]any)

	return []string{"Here's a suggestion: " + strings.Join(parts, ", ")}
}

// validPreferences splits the reply on commas and whitespace and keeps
// the tokens that exactly match a catalog id, symbol, or name. The
// unfiltered catalog is used here.
func (e *Engine) validPreferences(ctx context.Context, pref string) []string {
	list, err := e.catalog.Catalog(ctx)
	if err != nil {
		log.Printf("[convo] catalog load for preference validation failed: %v", err)
		return nil
	}

	entered := strings.FieldsFunc(pref, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	var valid []string
	for _, name := range entered {
		q := strings.ToLower(strings.TrimSpace(name))
		for _, c := range list {
			if strings.ToLower(c.ID) == q || strings.ToLower(c.Symbol) == q || strings.ToLower(c.Name) == q {
				valid = append(valid, name)
				break
			}
		}
	}
	return valid
}

// parseBudget strips everything but digits and dots, then reads the
// leading numeric run, so "$1,500" and "500 usd" both parse.
func parseBudget(msg string) (float64, bool) {
	var b strings.Builder
	for _, r := range msg {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	stripped := b.String()
	// Keep only the leading number: digits, at most one dot, digits.
	end, dotSeen := 0, false
	for end < len(stripped) {
		ch := stripped[end]
		if ch == '.' {
			if dotSeen {
				break
			}
			dotSeen = true
		}
		end++
	}
	lead := stripped[:end]
	if lead == "" || lead == "." {
		return 0, false
	}

	budget, err := strconv.ParseFloat(lead, 64)
	if err != nil {
		return 0, false
	}
	return budget, true
}

// formatNumber prints a float the way a chat message should read: no
// exponent, no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package convo

import "time"

// Flow identifies a multi-turn guided interaction that overrides normal
// intent classification until it completes.
type Flow string

const (
	FlowNone                   Flow = ""
	FlowPortfolioBuilder       Flow = "portfolio_builder"
	FlowPlatformRecommendation Flow = "platform_recommendation"
)

// Step is the current position inside an active flow.
type Step string

const (
	StepNone          Step = ""
	StepAskBudget     Step = "ask_budget"
	StepAskRiskLevel  Step = "ask_risk_level"
	StepAskPreference Step = "ask_preference"
)

// Session holds the per-connection conversation context. It is created
// when a connection opens, mutated only while that connection's current
// message is being handled, and discarded on close.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	LastCoinMentioned string         `json:"-"`
	LastIntentTag     string         `json:"-"`
	FallbackCount     int            `json:"-"`
	ActiveFlow        Flow           `json:"-"`
	FlowStep          Step           `json:"-"`
	FlowTempData      map[string]any `json:"-"`
}

// ResetContext returns every conversation field to its default, keeping
// the session identity intact.
func (s *Session) ResetContext() {
	s.LastCoinMentioned = ""
	s.LastIntentTag = ""
	s.FallbackCount = 0
	s.ActiveFlow = FlowNone
	s.FlowStep = StepNone
	s.FlowTempData = make(map[string]any)
}

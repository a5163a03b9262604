// Package recommend orchestrates the full pipeline: window validation,
// consent gate, signal computation, persona assignment, content selection,
// guardrails and final assembly.
package recommend

import (
	"time"

	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// SignalsSummary is the snapshot echoed back in the result so callers can see
// the evidence behind the recommendations.
type SignalsSummary = signals.BehaviorSignals

// Recommendation is one assembled education recommendation.
type Recommendation struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"` // "article", "video", "tool"
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	CTA       string  `json:"cta,omitempty"`
	Source    string  `json:"source,omitempty"`
	Rationale string  `json:"rationale"`
	Relevance int     `json:"relevance"` // tier 1..5
	Score     float64 `json:"score"`
}

// OfferRecommendation is one assembled partner offer.
type OfferRecommendation struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Provider   string   `json:"provider"`
	OfferType  string   `json:"offer_type"`
	Summary    string   `json:"summary"`
	Benefits   []string `json:"benefits,omitempty"`
	CTA        string   `json:"cta,omitempty"`
	CTAURL     string   `json:"cta_url,omitempty"`
	Disclaimer string   `json:"disclaimer,omitempty"` // offer-specific, on top of the global one
	Rationale  string   `json:"rationale"`
	Relevance  int      `json:"relevance"`
	Score      float64  `json:"score"`
}

// TraceEntry is one audit record of a pipeline decision: a degraded signal, a
// suppressed item, an override applied. The trace explains what the result
// does not show.
type TraceEntry struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail"`
}

// Trace stage names.
const (
	StageSignals     = "signals"
	StagePersist     = "persist"
	StageEligibility = "eligibility"
	StageOverride    = "override"
	StageTone        = "tone"
)

// Result is the full response for one user and window. When ConsentRequired
// is set every content field is empty: nothing was computed.
type Result struct {
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	WindowDays  int       `json:"window_days"`
	GeneratedAt time.Time `json:"generated_at"`

	ConsentRequired bool `json:"consent_required,omitempty"`

	Persona          domain.PersonaType `json:"persona_type,omitempty"`
	Confidence       float64            `json:"confidence,omitempty"`
	PersonaRationale string             `json:"persona_rationale,omitempty"`

	Education []Recommendation      `json:"education"`
	Offers    []OfferRecommendation `json:"offers"`

	Signals    *SignalsSummary `json:"signals_summary,omitempty"`
	Disclaimer string          `json:"disclaimer,omitempty"`
	Trace      []TraceEntry    `json:"decision_trace,omitempty"`
}

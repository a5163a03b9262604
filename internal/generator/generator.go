// Package generator selects catalog content and produces rationales. The
// ContentGenerator interface keeps ranking logic independent from the text
// strategy, so the deterministic template generator and the LLM-backed one
// are interchangeable behind constructor injection.
package generator

import (
	"context"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// ScoredEducation is an education item with its computed relevance.
type ScoredEducation struct {
	Item         catalog.EducationItem
	Score        float64 // raw match score in [0,1]
	Relevance    int     // discrete tier 1..5
	CatalogIndex int     // declared order, deterministic tie-break
}

// ScoredOffer is a partner offer with its computed relevance. Eligibility is
// checked downstream by the guardrail chain, not here.
type ScoredOffer struct {
	Offer        catalog.PartnerOffer
	Score        float64
	Relevance    int
	CatalogIndex int
}

// ContentGenerator produces candidate content and explanation text.
// Implementations must be deterministic in selection; only rationale text
// may vary between strategies.
type ContentGenerator interface {
	// Education returns up to limit education items scoring above zero,
	// ranked by score with catalog order breaking ties. limit <= 0 returns
	// every scoring item.
	Education(persona domain.PersonaType, snapshot signals.BehaviorSignals, activeTags []string, limit int) []ScoredEducation

	// Offers returns every persona-tagged offer scoring above zero, ranked
	// the same way. The caller applies eligibility and truncation.
	Offers(persona domain.PersonaType, snapshot signals.BehaviorSignals, activeTags []string) []ScoredOffer

	// PersonaRationale explains the persona assignment with concrete cited
	// values from the snapshot.
	PersonaRationale(ctx context.Context, persona domain.PersonaType, snapshot signals.BehaviorSignals) string

	// ContentRationale explains why one selected item fits the user,
	// citing at least one concrete signal value.
	ContentRationale(ctx context.Context, title string, persona domain.PersonaType, snapshot signals.BehaviorSignals) string
}

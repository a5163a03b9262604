// Package persona assigns a financial persona from a behavioral signal
// snapshot. Personas are checked in fixed priority order; the first matching
// predicate wins and "balanced" is the always-true fallback.
package persona

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// Classifier evaluates the ordered persona rule list.
type Classifier struct {
	log zerolog.Logger
}

// NewClassifier creates a persona classifier.
func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{log: log}
}

// Classify walks the rules in priority order and returns the assignment for
// the first matching persona. It never fails: the balanced fallback always
// matches.
func (c *Classifier) Classify(userID string, window domain.Window, snapshot signals.BehaviorSignals) domain.PersonaAssignment {
	for _, r := range rules {
		if !r.match(snapshot) {
			continue
		}
		confidence := r.confidence(snapshot, r.base, r.ceiling)
		c.log.Info().
			Str("user_id", userID).
			Str("persona", string(r.persona)).
			Float64("confidence", confidence).
			Msg("Assigned persona")

		return domain.PersonaAssignment{
			ID:         uuid.New().String(),
			UserID:     userID,
			Window:     window,
			Persona:    r.persona,
			Confidence: confidence,
			AssignedAt: time.Now().UTC(),
		}
	}

	// Unreachable: the balanced rule matches everything. Kept so the
	// function has a defined result even if the rule table is misedited.
	return domain.PersonaAssignment{
		ID:         uuid.New().String(),
		UserID:     userID,
		Window:     window,
		Persona:    domain.PersonaBalanced,
		Confidence: BalancedConfidence,
		AssignedAt: time.Now().UTC(),
	}
}

package guardrails

import (
	"github.com/dvloznov/spendsense/internal/domain"
)

// OverrideDecision is the resolved operator stance on one recommendation id.
type OverrideDecision struct {
	Action domain.OverrideAction
	Reason string
}

// ResolveOverrides collapses a user's override records into one decision per
// recommendation id. Approve always wins over a conflicting flag for the
// same id.
func ResolveOverrides(overrides []domain.OperatorOverride) map[string]OverrideDecision {
	resolved := make(map[string]OverrideDecision)
	for _, o := range overrides {
		existing, ok := resolved[o.RecommendationID]
		if ok && existing.Action == domain.OverrideApprove {
			continue
		}
		if !ok || o.Action == domain.OverrideApprove {
			resolved[o.RecommendationID] = OverrideDecision{Action: o.Action, Reason: o.Reason}
		}
	}
	return resolved
}

// Flagged reports whether the id is force-excluded.
func Flagged(decisions map[string]OverrideDecision, id string) bool {
	d, ok := decisions[id]
	return ok && d.Action == domain.OverrideFlag
}

// Approved reports whether the id is force-included.
func Approved(decisions map[string]OverrideDecision, id string) bool {
	d, ok := decisions[id]
	return ok && d.Action == domain.OverrideApprove
}

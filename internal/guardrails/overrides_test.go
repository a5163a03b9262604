package guardrails

import (
	"testing"

	"github.com/dvloznov/spendsense/internal/domain"
)

func override(id string, action domain.OverrideAction) domain.OperatorOverride {
	return domain.OperatorOverride{
		UserID:           "user1",
		RecommendationID: id,
		Action:           action,
		OperatorID:       "op1",
	}
}

func TestResolveOverrides_ApproveBeatsFlag(t *testing.T) {
	tests := []struct {
		name      string
		overrides []domain.OperatorOverride
	}{
		{
			name: "flag then approve",
			overrides: []domain.OperatorOverride{
				override("item1", domain.OverrideFlag),
				override("item1", domain.OverrideApprove),
			},
		},
		{
			name: "approve then flag",
			overrides: []domain.OperatorOverride{
				override("item1", domain.OverrideApprove),
				override("item1", domain.OverrideFlag),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions := ResolveOverrides(tt.overrides)
			if !Approved(decisions, "item1") {
				t.Error("approve must win over a conflicting flag")
			}
			if Flagged(decisions, "item1") {
				t.Error("item must not remain flagged after approval")
			}
		})
	}
}

func TestResolveOverrides_IndependentIDs(t *testing.T) {
	decisions := ResolveOverrides([]domain.OperatorOverride{
		override("keep", domain.OverrideApprove),
		override("drop", domain.OverrideFlag),
	})

	if !Approved(decisions, "keep") {
		t.Error("keep should be approved")
	}
	if !Flagged(decisions, "drop") {
		t.Error("drop should be flagged")
	}
	if Approved(decisions, "absent") || Flagged(decisions, "absent") {
		t.Error("unknown id should have no decision")
	}
}

func TestResolveOverrides_Empty(t *testing.T) {
	if got := ResolveOverrides(nil); len(got) != 0 {
		t.Errorf("ResolveOverrides(nil) = %v, want empty", got)
	}
}

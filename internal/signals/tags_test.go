package signals

import (
	"reflect"
	"testing"
)

func TestActiveTags(t *testing.T) {
	tests := []struct {
		name     string
		snapshot BehaviorSignals
		want     []string
	}{
		{
			name:     "zero snapshot activates low emergency fund only",
			snapshot: Zero(),
			want:     []string{TagLowEmergencyFund},
		},
		{
			name: "credit trouble",
			snapshot: BehaviorSignals{
				Credit: CreditSignals{
					UtilizationFlag:    FlagUtilization80,
					MonthlyInterest:    5000,
					Overdue:            true,
					MinimumPaymentOnly: true,
				},
				Savings: SavingsSignals{Unbounded: true},
				Income:  zeroIncome(),
			},
			want: []string{TagUtilization80, TagInterestCharges, TagOverdue, TagMinimumPaymentOnly},
		},
		{
			name: "healthy saver",
			snapshot: BehaviorSignals{
				Savings: SavingsSignals{MonthlyInflow: 40000, EmergencyFundMonths: 6.0},
				Income:  IncomeSignals{Frequency: FrequencyBiweekly, Stability: StabilityStable, MedianGapDays: 14},
			},
			want: []string{TagStableIncome, TagPositiveSavings},
		},
		{
			name: "variable income and heavy subscriptions",
			snapshot: BehaviorSignals{
				Subscriptions: SubscriptionSignals{Count: 4},
				Savings:       SavingsSignals{EmergencyFundMonths: 1.2},
				Income:        IncomeSignals{Frequency: FrequencyVariable, Stability: StabilityVariable, MedianGapDays: 52},
			},
			want: []string{TagSubscriptionHeavy, TagVariableIncome, TagLowEmergencyFund},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveTags(tt.snapshot)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ActiveTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActiveTags_Deterministic(t *testing.T) {
	snapshot := BehaviorSignals{
		Subscriptions: SubscriptionSignals{Count: 5},
		Credit:        CreditSignals{UtilizationFlag: FlagUtilization50, MonthlyInterest: 100, Overdue: true},
		Savings:       SavingsSignals{MonthlyInflow: 1000, EmergencyFundMonths: 1.0},
		Income:        IncomeSignals{Frequency: FrequencyVariable, MedianGapDays: 60},
	}

	first := ActiveTags(snapshot)
	for i := 0; i < 10; i++ {
		if got := ActiveTags(snapshot); !reflect.DeepEqual(got, first) {
			t.Fatalf("ActiveTags not deterministic: %v vs %v", got, first)
		}
	}
}

func TestHasTag(t *testing.T) {
	tags := []string{TagOverdue, TagStableIncome}
	if !HasTag(tags, TagOverdue) {
		t.Error("HasTag should find present tag")
	}
	if HasTag(tags, TagSubscriptionHeavy) {
		t.Error("HasTag should not find absent tag")
	}
}

package persona

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

func classify(t *testing.T, snapshot signals.BehaviorSignals) domain.PersonaAssignment {
	t.Helper()
	c := NewClassifier(zerolog.Nop())
	return c.Classify("user1", domain.Window30, snapshot)
}

func highUtilSnapshot() signals.BehaviorSignals {
	s := signals.Zero()
	s.Credit = signals.CreditSignals{
		OverallUtilization: 86.0,
		TotalBalance:       430000,
		TotalLimit:         500000,
		UtilizationFlag:    signals.FlagUtilization80,
		MonthlyInterest:    8600,
		PerCard:            []signals.CardUtilization{{AccountID: "c1", Utilization: 86.0, Balance: 430000, Limit: 500000}},
	}
	return s
}

func TestClassify_Personas(t *testing.T) {
	consolidator := signals.Zero()
	consolidator.Credit = signals.CreditSignals{
		OverallUtilization: 45.0,
		MonthlyInterest:    4000,
		PerCard: []signals.CardUtilization{
			{AccountID: "c1", Balance: 200000, Limit: 400000},
			{AccountID: "c2", Balance: 70000, Limit: 200000},
		},
	}
	consolidator.Income.Frequency = signals.FrequencyMonthly

	variable := signals.Zero()
	variable.Income = signals.IncomeSignals{
		Frequency:     signals.FrequencyVariable,
		Stability:     signals.StabilityVariable,
		MedianGapDays: 52,
		BufferMonths:  0.4,
	}

	subscriber := signals.Zero()
	subscriber.Subscriptions = signals.SubscriptionSignals{Count: 5, MonthlySpend: 9000, PercentOfSpend: 12.0}

	saver := signals.Zero()
	saver.Savings = signals.SavingsSignals{GrowthRate: 4.0, MonthlyInflow: 45000, TotalBalance: 1000000}
	saver.Credit = signals.CreditSignals{OverallUtilization: 12.0}

	tests := []struct {
		name     string
		snapshot signals.BehaviorSignals
		want     domain.PersonaType
	}{
		{"high utilization", highUtilSnapshot(), domain.PersonaHighUtilization},
		{"debt consolidator", consolidator, domain.PersonaDebtConsolidator},
		{"variable income", variable, domain.PersonaVariableIncome},
		{"subscription heavy", subscriber, domain.PersonaSubscriptionHeavy},
		{"savings builder", saver, domain.PersonaSavingsBuilder},
		{"balanced fallback on zero data", signals.Zero(), domain.PersonaBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.snapshot)
			if got.Persona != tt.want {
				t.Errorf("persona = %q, want %q", got.Persona, tt.want)
			}
			if !got.Persona.Valid() {
				t.Errorf("persona %q is not a member of the enum", got.Persona)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("confidence %.2f outside [0,1]", got.Confidence)
			}
		})
	}
}

// A user matching both high utilization and subscription heavy must get the
// higher-priority persona.
func TestClassify_PriorityOrder(t *testing.T) {
	snapshot := highUtilSnapshot()
	snapshot.Subscriptions = signals.SubscriptionSignals{Count: 6, MonthlySpend: 12000, PercentOfSpend: 20.0}

	got := classify(t, snapshot)
	if got.Persona != domain.PersonaHighUtilization {
		t.Errorf("persona = %q, want high_utilization to win on priority", got.Persona)
	}
}

// Confidence must stay inside each persona's band so no score can be
// mistaken for a neighboring persona's.
func TestClassify_ConfidenceBands(t *testing.T) {
	for _, r := range rules {
		// Strongest plausible snapshot for each rule: high everything.
		snapshot := signals.BehaviorSignals{
			Subscriptions: signals.SubscriptionSignals{Count: 9, MonthlySpend: 50000, PercentOfSpend: 40.0},
			Savings:       signals.SavingsSignals{GrowthRate: 10.0, MonthlyInflow: 80000},
			Credit: signals.CreditSignals{
				OverallUtilization: 95.0,
				Overdue:            true,
				MonthlyInterest:    10000,
				PerCard: []signals.CardUtilization{
					{AccountID: "c1", Balance: 1, Limit: 2},
					{AccountID: "c2", Balance: 1, Limit: 2},
					{AccountID: "c3", Balance: 1, Limit: 2},
				},
			},
			Income: signals.IncomeSignals{Frequency: signals.FrequencyVariable, MedianGapDays: 95, BufferMonths: 0.1},
		}
		conf := r.confidence(snapshot, r.base, r.ceiling)
		if conf < r.base || conf > r.ceiling {
			t.Errorf("%s: confidence %.3f outside band [%.2f, %.2f]", r.persona, conf, r.base, r.ceiling)
		}
	}
}

func TestClassify_BalancedConfidenceFixed(t *testing.T) {
	got := classify(t, signals.Zero())
	if got.Confidence != BalancedConfidence {
		t.Errorf("balanced confidence = %.2f, want %.2f", got.Confidence, BalancedConfidence)
	}
}

func TestClassify_AssignmentMetadata(t *testing.T) {
	got := classify(t, signals.Zero())
	if got.ID == "" {
		t.Error("assignment ID should be set")
	}
	if got.UserID != "user1" {
		t.Errorf("UserID = %q, want user1", got.UserID)
	}
	if got.Window != domain.Window30 {
		t.Errorf("Window = %v, want 30", got.Window)
	}
	if got.AssignedAt.IsZero() {
		t.Error("AssignedAt should be set")
	}
}

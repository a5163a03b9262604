package persona

import (
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// Matching thresholds. Amounts are cents, utilization is percent.
const (
	highUtilizationPct = 50.0

	variableIncomeGapDays   = 45
	variableIncomeBufferMax = 1.0

	consolidatorUtilMin  = 30.0
	consolidatorUtilMax  = 70.0
	consolidatorMinCards = 2

	subscriptionMinCount    = 3
	subscriptionMinSpend    = 5000 // $50/month
	subscriptionMinSpendPct = 10.0

	savingsMinGrowthPct = 2.0
	savingsMinInflow    = 20000 // $200/month
	savingsMaxUtilPct   = 30.0
)

// rule pairs a persona with its predicate and its confidence function.
// Rules are evaluated strictly in slice order; the first predicate that
// returns true wins. Confidence functions only run for the winning rule and
// must stay inside the rule's band.
type rule struct {
	persona    domain.PersonaType
	base       float64
	ceiling    float64
	match      func(signals.BehaviorSignals) bool
	confidence func(signals.BehaviorSignals, float64, float64) float64
}

// rules is the fixed priority order: the most urgent financial situation
// wins when several predicates hold at once. The final balanced rule is the
// only non-predicated fallback.
var rules = []rule{
	{
		persona: domain.PersonaHighUtilization,
		base:    0.95,
		ceiling: 0.98,
		match: func(s signals.BehaviorSignals) bool {
			return s.Credit.OverallUtilization >= highUtilizationPct ||
				s.Credit.Overdue ||
				s.Credit.MinimumPaymentOnly
		},
		confidence: highUtilizationConfidence,
	},
	{
		persona: domain.PersonaVariableIncome,
		base:    0.90,
		ceiling: 0.93,
		match: func(s signals.BehaviorSignals) bool {
			return s.Income.MedianGapDays > variableIncomeGapDays &&
				s.Income.BufferMonths < variableIncomeBufferMax
		},
		confidence: variableIncomeConfidence,
	},
	{
		persona: domain.PersonaDebtConsolidator,
		base:    0.88,
		ceiling: 0.89,
		match: func(s signals.BehaviorSignals) bool {
			if s.Credit.OverallUtilization < consolidatorUtilMin ||
				s.Credit.OverallUtilization >= consolidatorUtilMax {
				return false
			}
			if cardsWithBalance(s.Credit) < consolidatorMinCards {
				return false
			}
			if s.Credit.MonthlyInterest <= 0 || s.Credit.Overdue {
				return false
			}
			// Consolidation needs a predictable repayment source.
			return s.Income.Frequency != signals.FrequencyUnknown
		},
		confidence: debtConsolidatorConfidence,
	},
	{
		persona: domain.PersonaSubscriptionHeavy,
		base:    0.85,
		ceiling: 0.87,
		match: func(s signals.BehaviorSignals) bool {
			if s.Subscriptions.Count < subscriptionMinCount {
				return false
			}
			return s.Subscriptions.MonthlySpend >= subscriptionMinSpend ||
				s.Subscriptions.PercentOfSpend >= subscriptionMinSpendPct
		},
		confidence: subscriptionHeavyConfidence,
	},
	{
		persona: domain.PersonaSavingsBuilder,
		base:    0.80,
		ceiling: 0.84,
		match: func(s signals.BehaviorSignals) bool {
			if s.Savings.GrowthRate < savingsMinGrowthPct &&
				s.Savings.MonthlyInflow < savingsMinInflow {
				return false
			}
			return s.Credit.OverallUtilization < savingsMaxUtilPct
		},
		confidence: savingsBuilderConfidence,
	},
	{
		persona: domain.PersonaBalanced,
		base:    BalancedConfidence,
		ceiling: BalancedConfidence,
		match:   func(signals.BehaviorSignals) bool { return true },
		confidence: func(_ signals.BehaviorSignals, base, _ float64) float64 {
			return base
		},
	},
}

// BalancedConfidence is the fixed confidence of the default persona.
const BalancedConfidence = 0.60

func cardsWithBalance(c signals.CreditSignals) int {
	n := 0
	for _, card := range c.PerCard {
		if card.Balance > 0 {
			n++
		}
	}
	return n
}

// Confidence functions nudge the base score by signal strength but never
// leave the [base, ceiling] band, so a stronger match can never be mistaken
// for a different persona.

func highUtilizationConfidence(s signals.BehaviorSignals, base, ceiling float64) float64 {
	conf := base
	if s.Credit.OverallUtilization >= 90.0 {
		conf += 0.02
	} else if s.Credit.OverallUtilization >= 80.0 {
		conf += 0.01
	}
	if s.Credit.Overdue {
		conf += 0.01
	}
	return clamp(conf, base, ceiling)
}

func variableIncomeConfidence(s signals.BehaviorSignals, base, ceiling float64) float64 {
	conf := base
	if s.Income.MedianGapDays >= 90 {
		conf += 0.02
	} else if s.Income.MedianGapDays >= 60 {
		conf += 0.01
	}
	if s.Income.BufferMonths < 0.25 {
		conf += 0.01
	}
	return clamp(conf, base, ceiling)
}

func debtConsolidatorConfidence(s signals.BehaviorSignals, base, ceiling float64) float64 {
	conf := base
	if cardsWithBalance(s.Credit) >= 3 {
		conf += 0.01
	}
	return clamp(conf, base, ceiling)
}

func subscriptionHeavyConfidence(s signals.BehaviorSignals, base, ceiling float64) float64 {
	conf := base
	if s.Subscriptions.Count >= 7 {
		conf += 0.02
	} else if s.Subscriptions.Count >= 5 {
		conf += 0.01
	}
	return clamp(conf, base, ceiling)
}

func savingsBuilderConfidence(s signals.BehaviorSignals, base, ceiling float64) float64 {
	conf := base
	if s.Savings.GrowthRate >= 5.0 {
		conf += 0.03
	} else if s.Savings.GrowthRate >= 3.0 {
		conf += 0.02
	}
	if s.Savings.MonthlyInflow >= 50000 {
		conf += 0.01
	}
	return clamp(conf, base, ceiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package signals

// Signal tags are the vocabulary shared with the content catalog: catalog
// items declare which tags they address, and the selector matches them
// against the tags active in a snapshot.
const (
	TagUtilization80      = string(FlagUtilization80)
	TagUtilization50      = string(FlagUtilization50)
	TagUtilization30      = string(FlagUtilization30)
	TagInterestCharges    = "interest_charges"
	TagOverdue            = "overdue"
	TagMinimumPaymentOnly = "minimum_payment_only"
	TagSubscriptionHeavy  = "subscription_heavy"
	TagVariableIncome     = "variable_income"
	TagStableIncome       = "stable_income"
	TagPositiveSavings    = "positive_savings"
	TagLowEmergencyFund   = "low_emergency_fund"
)

// Thresholds for tag activation.
const (
	subscriptionHeavyCount = 3
	variableIncomeGapDays  = 45
	lowEmergencyFundMonths = 3.0
)

// ActiveTags derives the set of active signal tags from a snapshot, in a
// fixed order so downstream scoring is deterministic.
func ActiveTags(s BehaviorSignals) []string {
	var tags []string

	if s.Credit.UtilizationFlag != "" {
		tags = append(tags, string(s.Credit.UtilizationFlag))
	}
	if s.Credit.MonthlyInterest > 0 {
		tags = append(tags, TagInterestCharges)
	}
	if s.Credit.Overdue {
		tags = append(tags, TagOverdue)
	}
	if s.Credit.MinimumPaymentOnly {
		tags = append(tags, TagMinimumPaymentOnly)
	}

	if s.Subscriptions.Count >= subscriptionHeavyCount {
		tags = append(tags, TagSubscriptionHeavy)
	}

	if s.Income.MedianGapDays > variableIncomeGapDays {
		tags = append(tags, TagVariableIncome)
	}
	if s.Income.Stability == StabilityStable {
		tags = append(tags, TagStableIncome)
	}

	if s.Savings.MonthlyInflow > 0 {
		tags = append(tags, TagPositiveSavings)
	}
	if !s.Savings.Unbounded && s.Savings.EmergencyFundMonths < lowEmergencyFundMonths {
		tags = append(tags, TagLowEmergencyFund)
	}

	return tags
}

// HasTag reports whether tag is present in tags.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

package guardrails

import (
	"strings"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// Predatory product categories are never offered, regardless of any other
// criteria. maxOfferAPR mirrors the common state usury cap.
var predatoryOfferTypes = map[string]bool{
	"payday_loan": true,
	"title_loan":  true,
	"rent_to_own": true,
}

const maxOfferAPR = 36.0

// IsPredatory reports whether the offer falls in a banned product category or
// exceeds the APR cap. This gate is absolute: operator approval cannot
// override it.
func IsPredatory(offer catalog.PartnerOffer) bool {
	return predatoryOfferTypes[strings.ToLower(offer.OfferType)] || offer.APR > maxOfferAPR
}

// Pay periods per month by detected income frequency, used to turn the
// average payment into a monthly income estimate for the income floor.
var payPeriodsPerMonth = map[signals.IncomeFrequency]float64{
	signals.FrequencyWeekly:   4.33,
	signals.FrequencyBiweekly: 2.17,
	signals.FrequencyMonthly:  1.0,
	signals.FrequencyVariable: 1.0,
	signals.FrequencyUnknown:  1.0,
}

// MonthlyIncomeEstimate derives a monthly income figure in cents from the
// income signals. Conservative: unknown or variable cadence assumes one
// payment per month.
func MonthlyIncomeEstimate(income signals.IncomeSignals) int64 {
	return int64(float64(income.AverageAmount) * payPeriodsPerMonth[income.Frequency])
}

// CheckOfferEligibility runs every eligibility gate for one offer. The
// checks are independent and combined with AND logic; the first failing gate
// is returned as the reason. An empty reason means the offer is eligible.
func CheckOfferEligibility(
	offer catalog.PartnerOffer,
	snapshot signals.BehaviorSignals,
	accounts []domain.Account,
	activeTags []string,
) (bool, string) {
	if predatoryOfferTypes[strings.ToLower(offer.OfferType)] {
		return false, "predatory product category: " + offer.OfferType
	}
	if offer.APR > maxOfferAPR {
		return false, "APR above cap"
	}

	rules := offer.Eligibility

	if rules.MinMonthlyIncome > 0 {
		if MonthlyIncomeEstimate(snapshot.Income) < rules.MinMonthlyIncome {
			return false, "income below offer minimum"
		}
	}

	held := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		held[acc.Subtype] = true
	}
	for _, subtype := range rules.ExcludedSubtypes {
		if held[subtype] {
			return false, "already holds " + subtype + " account"
		}
	}

	util := snapshot.Credit.OverallUtilization
	if rules.MinUtilization != nil && util < *rules.MinUtilization {
		return false, "utilization below offer range"
	}
	if rules.MaxUtilization != nil && util > *rules.MaxUtilization {
		return false, "utilization above offer range"
	}

	for _, required := range rules.RequiredSignals {
		if !signals.HasTag(activeTags, required) {
			return false, "missing required signal: " + required
		}
	}
	for _, excluded := range rules.ExcludedSignals {
		if signals.HasTag(activeTags, excluded) {
			return false, "excluded signal active: " + excluded
		}
	}

	return true, ""
}

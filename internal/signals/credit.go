package signals

import (
	"math"

	"github.com/dvloznov/spendsense/internal/domain"
)

// Utilization thresholds in percent, highest priority first. Exactly one
// flag is emitted, at the highest threshold crossed.
const (
	utilizationHigh     = 80.0
	utilizationElevated = 50.0
	utilizationModerate = 30.0

	// minPaymentTolerance allows rounding and small fees when deciding
	// whether a payment was minimum-only.
	minPaymentTolerance = 1.1
)

// AnalyzeCredit computes utilization, interest estimates and risk flags over
// the user's credit accounts. Pure; no credit accounts yields the zero
// record.
func AnalyzeCredit(accounts []domain.Account) CreditSignals {
	var credit []domain.Account
	for _, acc := range accounts {
		if acc.IsCredit() {
			credit = append(credit, acc)
		}
	}
	if len(credit) == 0 {
		return CreditSignals{}
	}

	var totalBalance, totalLimit int64
	var monthlyInterest float64
	perCard := make([]CardUtilization, 0, len(credit))
	out := CreditSignals{}

	for _, acc := range credit {
		var limit int64
		if acc.Limit != nil {
			limit = *acc.Limit
		}
		totalBalance += acc.CurrentBalance
		totalLimit += limit

		var cardUtil float64
		if limit > 0 {
			cardUtil = float64(acc.CurrentBalance) / float64(limit) * 100
		}
		perCard = append(perCard, CardUtilization{
			AccountID:   acc.ID,
			Utilization: round2(cardUtil),
			Balance:     acc.CurrentBalance,
			Limit:       limit,
		})

		if acc.APR != nil {
			// Assumes the full balance carries over uninterrupted:
			// balance * APR / 12.
			monthlyInterest += float64(acc.CurrentBalance) * *acc.APR / 100 / 12
		}

		if acc.IsOverdue {
			out.Overdue = true
		}

		if acc.MinPayment != nil && acc.LastPaymentAmount != nil {
			min := float64(*acc.MinPayment)
			paid := float64(*acc.LastPaymentAmount)
			if min > 0 && paid > 0 && paid <= min*minPaymentTolerance {
				out.MinimumPaymentOnly = true
			}
		}
	}

	var overall float64
	if totalLimit > 0 {
		overall = float64(totalBalance) / float64(totalLimit) * 100
	}

	out.OverallUtilization = round2(overall)
	out.TotalBalance = totalBalance
	out.TotalLimit = totalLimit
	out.MonthlyInterest = int64(math.Round(monthlyInterest))
	out.PerCard = perCard

	switch {
	case overall >= utilizationHigh:
		out.UtilizationFlag = FlagUtilization80
	case overall >= utilizationElevated:
		out.UtilizationFlag = FlagUtilization50
	case overall >= utilizationModerate:
		out.UtilizationFlag = FlagUtilization30
	}

	return out
}

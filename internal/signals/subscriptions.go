package signals

import (
	"sort"

	"github.com/dvloznov/spendsense/internal/domain"
)

// Cadence tolerance bands in days, applied to the mean gap between
// consecutive charges. Gaps outside both bands are irregular and excluded.
const (
	monthlyGapMin = 28
	monthlyGapMax = 35
	weeklyGapMin  = 6
	weeklyGapMax  = 8

	// weeksPerMonth converts a weekly charge to a monthly estimate.
	weeksPerMonth = 4.33

	// minOccurrences is the floor for a merchant to count as recurring.
	minOccurrences = 3
)

// DetectSubscriptions finds recurring merchants in the user's debit
// transactions. Pure and side-effect free; empty or insufficient input
// yields the zero record.
func DetectSubscriptions(transactions []domain.Transaction, window domain.Window) SubscriptionSignals {
	if len(transactions) < minOccurrences {
		return SubscriptionSignals{}
	}

	// Non-income debits only. Income deposits and refunds are not
	// subscription candidates.
	var totalSpend int64
	byMerchant := make(map[string][]domain.Transaction)
	for _, txn := range transactions {
		if !txn.IsDebit() || txn.IsIncome() {
			continue
		}
		totalSpend += txn.Amount
		if txn.MerchantName == "" {
			continue
		}
		byMerchant[txn.MerchantName] = append(byMerchant[txn.MerchantName], txn)
	}
	if totalSpend == 0 {
		return SubscriptionSignals{}
	}

	// Deterministic merchant order regardless of map iteration.
	names := make([]string, 0, len(byMerchant))
	for name := range byMerchant {
		names = append(names, name)
	}
	sort.Strings(names)

	var merchants []RecurringMerchant
	var monthlySpend int64

	for _, name := range names {
		txns := byMerchant[name]
		if len(txns) < minOccurrences {
			continue
		}

		sort.Slice(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })

		var gapSum float64
		for i := 1; i < len(txns); i++ {
			gapSum += txns[i].Date.Sub(txns[i-1].Date).Hours() / 24
		}
		meanGap := gapSum / float64(len(txns)-1)

		var cadence Cadence
		switch {
		case meanGap >= monthlyGapMin && meanGap <= monthlyGapMax:
			cadence = CadenceMonthly
		case meanGap >= weeklyGapMin && meanGap <= weeklyGapMax:
			cadence = CadenceWeekly
		default:
			continue // irregular
		}

		var amountSum int64
		for _, txn := range txns {
			amountSum += txn.Amount
		}
		avgAmount := amountSum / int64(len(txns))

		estimate := avgAmount
		if cadence == CadenceWeekly {
			estimate = int64(float64(avgAmount) * weeksPerMonth)
		}
		monthlySpend += estimate

		merchants = append(merchants, RecurringMerchant{
			Name:      name,
			Cadence:   cadence,
			AvgAmount: avgAmount,
			Count:     len(txns),
		})
	}

	// monthlySpend is per month; scale to the window before comparing with
	// the window's total spend.
	recurringInWindow := float64(monthlySpend) * window.Months()
	percent := recurringInWindow / float64(totalSpend) * 100

	return SubscriptionSignals{
		RecurringMerchants: merchants,
		Count:              len(merchants),
		MonthlySpend:       monthlySpend,
		PercentOfSpend:     percent,
	}
}

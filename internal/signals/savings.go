package signals

import (
	"math"

	"github.com/dvloznov/spendsense/internal/domain"
)

// AnalyzeSavings sums savings-like balances and the window's net inflow into
// them, then derives a monthly rate, a growth rate, and emergency-fund
// coverage. Pure; no savings accounts yields the zero record.
func AnalyzeSavings(accounts []domain.Account, transactions []domain.Transaction, window domain.Window) SavingsSignals {
	savingsIDs := make(map[string]bool)
	var totalBalance int64
	for _, acc := range accounts {
		if acc.IsSavingsLike() {
			savingsIDs[acc.ID] = true
			totalBalance += acc.CurrentBalance
		}
	}
	if len(savingsIDs) == 0 {
		return SavingsSignals{}
	}

	// Net inflow on savings accounts: credits (negative amounts) are money
	// in, debits are money out.
	var netInflow int64
	// Expenses are taken over all accounts, since users also spend directly
	// from savings.
	var totalExpenses int64
	for _, txn := range transactions {
		if savingsIDs[txn.AccountID] {
			if txn.Amount < 0 {
				netInflow += -txn.Amount
			} else {
				netInflow -= txn.Amount
			}
		}
		if txn.IsDebit() && !txn.IsIncome() {
			totalExpenses += txn.Amount
		}
	}

	monthlyInflow := int64(float64(netInflow) / window.Months())
	monthlyExpenses := int64(float64(totalExpenses) / window.Months())

	var growthRate float64
	if totalBalance > 0 {
		growthRate = float64(netInflow) / float64(totalBalance) * 100
	}

	out := SavingsSignals{
		TotalBalance:  totalBalance,
		NetInflow:     netInflow,
		MonthlyInflow: monthlyInflow,
		GrowthRate:    round2(growthRate),
	}

	switch {
	case monthlyExpenses > 0:
		out.EmergencyFundMonths = round2(float64(totalBalance) / float64(monthlyExpenses))
	case totalBalance > 0:
		// Balance with no tracked expenses: coverage is effectively
		// unlimited, flagged rather than divided.
		out.Unbounded = true
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package signals

import (
	"math"
	"sort"

	"github.com/dvloznov/spendsense/internal/domain"
)

// Income frequency bands over the median gap in days, and the coefficient of
// variation threshold below which amounts count as stable.
const (
	biweeklyGapMin      = 13
	biweeklyGapMax      = 16
	incomeMonthlyGapMin = 28
	incomeMonthlyGapMax = 32
	incomeWeeklyGapMin  = 6
	incomeWeeklyGapMax  = 8

	stabilityCVThreshold = 0.15
)

// AnalyzeIncome classifies income frequency and stability and computes the
// cash-flow buffer. Pure; fewer than two income transactions yields the
// unknown record.
func AnalyzeIncome(transactions []domain.Transaction, window domain.Window) IncomeSignals {
	var income []domain.Transaction
	for _, txn := range transactions {
		if txn.IsIncome() {
			income = append(income, txn)
		}
	}
	if len(income) < 2 {
		return zeroIncome()
	}

	sort.Slice(income, func(i, j int) bool { return income[i].Date.Before(income[j].Date) })

	// Income arrives as credits; work with magnitudes.
	amounts := make([]float64, len(income))
	var totalIncome float64
	for i, txn := range income {
		amounts[i] = math.Abs(float64(txn.Amount))
		totalIncome += amounts[i]
	}
	if totalIncome == 0 {
		return zeroIncome()
	}

	gaps := make([]int, 0, len(income)-1)
	for i := 1; i < len(income); i++ {
		gaps = append(gaps, int(income[i].Date.Sub(income[i-1].Date).Hours()/24))
	}
	medianGap := medianInt(gaps)

	var frequency IncomeFrequency
	switch {
	case medianGap >= biweeklyGapMin && medianGap <= biweeklyGapMax:
		frequency = FrequencyBiweekly
	case medianGap >= incomeMonthlyGapMin && medianGap <= incomeMonthlyGapMax:
		frequency = FrequencyMonthly
	case medianGap >= incomeWeeklyGapMin && medianGap <= incomeWeeklyGapMax:
		frequency = FrequencyWeekly
	default:
		frequency = FrequencyVariable
	}

	mean := totalIncome / float64(len(amounts))
	var variance float64
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	// Sample standard deviation, matching two or more data points.
	stdev := math.Sqrt(variance / float64(len(amounts)-1))

	var cv float64
	if mean > 0 {
		cv = stdev / mean
	}
	stability := StabilityVariable
	if cv < stabilityCVThreshold {
		stability = StabilityStable
	}

	var totalExpenses float64
	for _, txn := range transactions {
		if txn.IsDebit() && !txn.IsIncome() {
			totalExpenses += float64(txn.Amount)
		}
	}
	monthlyExpenses := totalExpenses / window.Months()

	var bufferMonths float64
	if monthlyExpenses > 0 {
		bufferMonths = (totalIncome - totalExpenses) / monthlyExpenses
	}

	return IncomeSignals{
		Frequency:              frequency,
		Stability:              stability,
		AverageAmount:          int64(mean),
		CoefficientOfVariation: round4(cv),
		BufferMonths:           round2(bufferMonths),
		MedianGapDays:          medianGap,
	}
}

func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

package signals

import (
	"testing"
	"time"

	"github.com/dvloznov/spendsense/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// txn builds a debit transaction for a merchant on a date.
func txn(id, merchant string, date time.Time, amount int64) domain.Transaction {
	return domain.Transaction{
		ID:           id,
		AccountID:    "acc1",
		Date:         date,
		Amount:       amount,
		MerchantName: merchant,
		Category:     "GENERAL",
	}
}

func TestDetectSubscriptions_MonthlyCadence(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Streamflix", day(2026, time.May, 5), 1599),
		txn("t2", "Streamflix", day(2026, time.June, 5), 1599),
		txn("t3", "Streamflix", day(2026, time.July, 5), 1599),
		// One-off purchase, not recurring.
		txn("t4", "Hardware Store", day(2026, time.June, 12), 8500),
	}

	got := DetectSubscriptions(txns, domain.Window90)

	if got.Count != 1 {
		t.Fatalf("Count = %d, want 1", got.Count)
	}
	m := got.RecurringMerchants[0]
	if m.Name != "Streamflix" {
		t.Errorf("merchant name = %q, want Streamflix", m.Name)
	}
	if m.Cadence != CadenceMonthly {
		t.Errorf("cadence = %q, want monthly", m.Cadence)
	}
	if m.AvgAmount != 1599 {
		t.Errorf("avg amount = %d, want 1599", m.AvgAmount)
	}
	if got.MonthlySpend != 1599 {
		t.Errorf("monthly spend = %d, want 1599", got.MonthlySpend)
	}
}

func TestDetectSubscriptions_WeeklyCadenceScaled(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Meal Kits Co", day(2026, time.July, 1), 4000),
		txn("t2", "Meal Kits Co", day(2026, time.July, 8), 4000),
		txn("t3", "Meal Kits Co", day(2026, time.July, 15), 4000),
		txn("t4", "Meal Kits Co", day(2026, time.July, 22), 4000),
	}

	got := DetectSubscriptions(txns, domain.Window30)

	if got.Count != 1 {
		t.Fatalf("Count = %d, want 1", got.Count)
	}
	if got.RecurringMerchants[0].Cadence != CadenceWeekly {
		t.Errorf("cadence = %q, want weekly", got.RecurringMerchants[0].Cadence)
	}
	// 4000 * 4.33 = 17320
	if got.MonthlySpend != 17320 {
		t.Errorf("monthly spend = %d, want 17320", got.MonthlySpend)
	}
}

func TestDetectSubscriptions_Exclusions(t *testing.T) {
	tests := []struct {
		name string
		txns []domain.Transaction
	}{
		{
			name: "fewer than three occurrences",
			txns: []domain.Transaction{
				txn("t1", "Streamflix", day(2026, time.June, 5), 1599),
				txn("t2", "Streamflix", day(2026, time.July, 5), 1599),
				txn("t3", "Other", day(2026, time.July, 6), 100),
			},
		},
		{
			name: "irregular gaps",
			txns: []domain.Transaction{
				txn("t1", "Gym", day(2026, time.May, 1), 3000),
				txn("t2", "Gym", day(2026, time.May, 13), 3000),
				txn("t3", "Gym", day(2026, time.July, 20), 3000),
			},
		},
		{
			name: "income never recurring",
			txns: []domain.Transaction{
				{ID: "t1", AccountID: "acc1", Date: day(2026, time.May, 1), Amount: -200000, MerchantName: "Employer", Category: domain.CategoryIncome},
				{ID: "t2", AccountID: "acc1", Date: day(2026, time.June, 1), Amount: -200000, MerchantName: "Employer", Category: domain.CategoryIncome},
				{ID: "t3", AccountID: "acc1", Date: day(2026, time.July, 1), Amount: -200000, MerchantName: "Employer", Category: domain.CategoryIncome},
				txn("t4", "Cafe", day(2026, time.July, 2), 500),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSubscriptions(tt.txns, domain.Window90)
			if got.Count != 0 {
				t.Errorf("Count = %d, want 0", got.Count)
			}
			if got.MonthlySpend != 0 {
				t.Errorf("MonthlySpend = %d, want 0", got.MonthlySpend)
			}
		})
	}
}

func TestDetectSubscriptions_EmptyInput(t *testing.T) {
	got := DetectSubscriptions(nil, domain.Window30)
	if got.Count != 0 || got.MonthlySpend != 0 || got.PercentOfSpend != 0 {
		t.Errorf("zero input should yield zero record, got %+v", got)
	}
}

func TestDetectSubscriptions_PercentOfSpend(t *testing.T) {
	txns := []domain.Transaction{
		txn("t1", "Streamflix", day(2026, time.May, 5), 1000),
		txn("t2", "Streamflix", day(2026, time.June, 5), 1000),
		txn("t3", "Streamflix", day(2026, time.July, 5), 1000),
		txn("t4", "Groceries", day(2026, time.July, 10), 6000),
	}

	got := DetectSubscriptions(txns, domain.Window90)

	// monthlySpend 1000, window 3 months -> 3000 recurring of 9000 total.
	want := 3000.0 / 9000.0 * 100
	if diff := got.PercentOfSpend - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("PercentOfSpend = %.2f, want %.2f", got.PercentOfSpend, want)
	}
}

package signals

import (
	"testing"
	"time"

	"github.com/dvloznov/spendsense/internal/domain"
)

func savingsAccount(id string, balance int64) domain.Account {
	return domain.Account{
		ID:             id,
		Type:           domain.AccountTypeDepository,
		Subtype:        domain.SubtypeSavings,
		CurrentBalance: balance,
	}
}

func TestAnalyzeSavings_InflowAndGrowth(t *testing.T) {
	accounts := []domain.Account{
		savingsAccount("sav1", 1000000),
		{ID: "chk1", Type: domain.AccountTypeDepository, Subtype: domain.SubtypeChecking, CurrentBalance: 200000},
	}
	txns := []domain.Transaction{
		// Deposits into savings are credits.
		{ID: "t1", AccountID: "sav1", Date: day(2026, time.July, 1), Amount: -30000},
		{ID: "t2", AccountID: "sav1", Date: day(2026, time.July, 15), Amount: -30000},
		// Withdrawal from savings.
		{ID: "t3", AccountID: "sav1", Date: day(2026, time.July, 20), Amount: 10000},
		// Spending from checking counts toward expenses only.
		{ID: "t4", AccountID: "chk1", Date: day(2026, time.July, 10), Amount: 250000, Category: "RENT"},
	}

	got := AnalyzeSavings(accounts, txns, domain.Window30)

	if got.TotalBalance != 1000000 {
		t.Errorf("TotalBalance = %d, want 1000000", got.TotalBalance)
	}
	if got.NetInflow != 50000 {
		t.Errorf("NetInflow = %d, want 50000", got.NetInflow)
	}
	if got.MonthlyInflow != 50000 {
		t.Errorf("MonthlyInflow = %d, want 50000", got.MonthlyInflow)
	}
	// 50000 / 1000000 * 100 = 5%.
	if got.GrowthRate != 5.0 {
		t.Errorf("GrowthRate = %.2f, want 5.00", got.GrowthRate)
	}
	// Expenses: 250000 + 10000 = 260000/month; 1000000 / 260000 = 3.85.
	if got.EmergencyFundMonths != 3.85 {
		t.Errorf("EmergencyFundMonths = %.2f, want 3.85", got.EmergencyFundMonths)
	}
	if got.Unbounded {
		t.Error("Unbounded = true, want false with tracked expenses")
	}
}

func TestAnalyzeSavings_UnboundedWithoutExpenses(t *testing.T) {
	accounts := []domain.Account{savingsAccount("sav1", 500000)}

	got := AnalyzeSavings(accounts, nil, domain.Window30)

	if !got.Unbounded {
		t.Error("Unbounded = false, want true when balance exists and expenses are zero")
	}
	if got.EmergencyFundMonths != 0 {
		t.Errorf("EmergencyFundMonths = %.2f, want 0 when unbounded", got.EmergencyFundMonths)
	}
}

func TestAnalyzeSavings_NoSavingsAccounts(t *testing.T) {
	accounts := []domain.Account{
		{ID: "chk1", Type: domain.AccountTypeDepository, Subtype: domain.SubtypeChecking, CurrentBalance: 100000},
	}

	got := AnalyzeSavings(accounts, nil, domain.Window30)
	if got != (SavingsSignals{}) {
		t.Errorf("no savings accounts should yield zero record, got %+v", got)
	}
}

func TestAnalyzeSavings_WindowScaling(t *testing.T) {
	accounts := []domain.Account{savingsAccount("sav1", 1000000)}
	txns := []domain.Transaction{
		{ID: "t1", AccountID: "sav1", Date: day(2026, time.May, 1), Amount: -90000},
	}

	got := AnalyzeSavings(accounts, txns, domain.Window90)

	// 90000 net inflow over 3 months.
	if got.MonthlyInflow != 30000 {
		t.Errorf("MonthlyInflow = %d, want 30000", got.MonthlyInflow)
	}
}

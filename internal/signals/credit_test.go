package signals

import (
	"testing"

	"github.com/dvloznov/spendsense/internal/domain"
)

func ptrI64(v int64) *int64     { return &v }
func ptrF64(v float64) *float64 { return &v }

func creditAccount(id string, balance, limit int64) domain.Account {
	return domain.Account{
		ID:             id,
		Type:           domain.AccountTypeCredit,
		Subtype:        domain.SubtypeCreditCard,
		CurrentBalance: balance,
		Limit:          ptrI64(limit),
	}
}

func TestAnalyzeCredit_UtilizationFlags(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		limit    int64
		wantFlag UtilizationFlag
	}{
		{"above 80", 850000, 1000000, FlagUtilization80},
		{"exactly 80", 800000, 1000000, FlagUtilization80},
		{"between 50 and 80", 600000, 1000000, FlagUtilization50},
		{"between 30 and 50", 350000, 1000000, FlagUtilization30},
		{"below 30", 250000, 1000000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeCredit([]domain.Account{creditAccount("c1", tt.balance, tt.limit)})
			if got.UtilizationFlag != tt.wantFlag {
				t.Errorf("UtilizationFlag = %q, want %q", got.UtilizationFlag, tt.wantFlag)
			}
		})
	}
}

func TestAnalyzeCredit_OverallAcrossCards(t *testing.T) {
	accounts := []domain.Account{
		creditAccount("c1", 400000, 500000),
		creditAccount("c2", 100000, 500000),
		// Depository accounts never count toward utilization.
		{ID: "d1", Type: domain.AccountTypeDepository, Subtype: domain.SubtypeChecking, CurrentBalance: 900000},
	}

	got := AnalyzeCredit(accounts)

	if got.OverallUtilization != 50.0 {
		t.Errorf("OverallUtilization = %.2f, want 50.00", got.OverallUtilization)
	}
	if got.TotalBalance != 500000 || got.TotalLimit != 1000000 {
		t.Errorf("totals = %d/%d, want 500000/1000000", got.TotalBalance, got.TotalLimit)
	}
	if len(got.PerCard) != 2 {
		t.Fatalf("PerCard length = %d, want 2", len(got.PerCard))
	}
	if got.PerCard[0].Utilization != 80.0 {
		t.Errorf("card 1 utilization = %.2f, want 80.00", got.PerCard[0].Utilization)
	}
}

func TestAnalyzeCredit_MonthlyInterest(t *testing.T) {
	acc := creditAccount("c1", 430000, 500000)
	acc.APR = ptrF64(24.0)

	got := AnalyzeCredit([]domain.Account{acc})

	// 430000 * 24 / 100 / 12 = 8600 cents.
	if got.MonthlyInterest != 8600 {
		t.Errorf("MonthlyInterest = %d, want 8600", got.MonthlyInterest)
	}
}

func TestAnalyzeCredit_MinimumPaymentOnly(t *testing.T) {
	tests := []struct {
		name string
		min  int64
		paid int64
		want bool
	}{
		{"paid exactly minimum", 10000, 10000, true},
		{"paid within tolerance", 10000, 10900, true},
		{"paid well above minimum", 10000, 30000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := creditAccount("c1", 200000, 500000)
			acc.MinPayment = ptrI64(tt.min)
			acc.LastPaymentAmount = ptrI64(tt.paid)

			got := AnalyzeCredit([]domain.Account{acc})
			if got.MinimumPaymentOnly != tt.want {
				t.Errorf("MinimumPaymentOnly = %v, want %v", got.MinimumPaymentOnly, tt.want)
			}
		})
	}
}

func TestAnalyzeCredit_Overdue(t *testing.T) {
	acc := creditAccount("c1", 100000, 500000)
	acc.IsOverdue = true

	got := AnalyzeCredit([]domain.Account{acc})
	if !got.Overdue {
		t.Error("Overdue = false, want true")
	}
}

func TestAnalyzeCredit_NoCreditAccounts(t *testing.T) {
	got := AnalyzeCredit([]domain.Account{
		{ID: "d1", Type: domain.AccountTypeDepository, Subtype: domain.SubtypeChecking},
	})
	if got.OverallUtilization != 0 || got.UtilizationFlag != "" || len(got.PerCard) != 0 {
		t.Errorf("no credit accounts should yield zero record, got %+v", got)
	}
}

func TestAnalyzeCredit_MissingLimit(t *testing.T) {
	acc := domain.Account{
		ID:             "c1",
		Type:           domain.AccountTypeCredit,
		Subtype:        domain.SubtypeCreditCard,
		CurrentBalance: 100000,
	}

	got := AnalyzeCredit([]domain.Account{acc})
	if got.OverallUtilization != 0 {
		t.Errorf("OverallUtilization = %.2f, want 0 with no limit", got.OverallUtilization)
	}
}

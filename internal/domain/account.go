package domain

import (
	"time"
)

// Account types and subtypes follow the Plaid naming the upstream data feed
// uses.
const (
	AccountTypeDepository = "depository"
	AccountTypeCredit     = "credit"

	SubtypeChecking    = "checking"
	SubtypeSavings     = "savings"
	SubtypeMoneyMarket = "money_market"
	SubtypeCD          = "cd"
	SubtypeCreditCard  = "credit_card"
)

// Account is one user account as returned by the data-access layer.
// Balance fields are integer minor currency units (cents).
type Account struct {
	ID      string
	UserID  string
	Type    string // "depository", "credit", "loan"
	Subtype string // "checking", "savings", "credit_card", ...
	Name    string
	Mask    string // last 4 digits

	CurrentBalance   int64  // cents
	AvailableBalance *int64 // cents, nil when the feed omits it
	Limit            *int64 // cents, credit accounts only

	// Credit account fields.
	APR               *float64 // annual percentage rate
	MinPayment        *int64   // cents
	LastPaymentAmount *int64   // cents
	LastPaymentDate   *time.Time
	IsOverdue         bool
}

// IsCredit reports whether this is a credit-type account.
func (a Account) IsCredit() bool {
	return a.Type == AccountTypeCredit
}

// IsSavingsLike reports whether the account counts toward savings balances.
func (a Account) IsSavingsLike() bool {
	switch a.Subtype {
	case SubtypeSavings, SubtypeMoneyMarket, SubtypeCD:
		return true
	}
	return false
}

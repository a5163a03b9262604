package domain

import (
	"time"
)

// Transaction is one account transaction as returned by the data-access
// layer. Amounts are integer minor currency units (cents) with the sign
// convention: positive = debit (money out), negative = credit (money in).
type Transaction struct {
	ID        string    // unique transaction identifier
	AccountID string    // owning account
	Date      time.Time // posting date
	Amount    int64     // cents, positive = outflow

	MerchantName     string // display merchant name, may be empty
	MerchantEntityID string // normalized merchant identifier, may be empty

	Category         string // primary category, e.g. "INCOME", "FOOD_AND_DRINK"
	CategoryDetailed string // detailed category, may be empty

	Pending bool
}

// CategoryIncome is the primary category marking inflows that count as income.
const CategoryIncome = "INCOME"

// IsIncome reports whether the transaction is categorized as income.
func (t Transaction) IsIncome() bool {
	return t.Category == CategoryIncome
}

// IsDebit reports whether money left the account.
func (t Transaction) IsDebit() bool {
	return t.Amount > 0
}

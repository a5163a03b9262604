package signals

// BehaviorSignals is the unified signal snapshot for one user and one
// window. All four sub-records are always present; when source data is
// insufficient they hold their zero values, never nil. Ephemeral:
// recomputed on every request, never cached.
type BehaviorSignals struct {
	Subscriptions SubscriptionSignals `json:"subscriptions"`
	Savings       SavingsSignals      `json:"savings"`
	Credit        CreditSignals       `json:"credit"`
	Income        IncomeSignals       `json:"income"`
}

// Cadence classifies how often a recurring merchant charges.
type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceWeekly  Cadence = "weekly"
)

// RecurringMerchant is one detected subscription.
type RecurringMerchant struct {
	Name      string  `json:"name"`
	Cadence   Cadence `json:"cadence"`
	AvgAmount int64   `json:"avg_amount"` // cents per charge
	Count     int     `json:"count"`      // occurrences inside the window
}

// SubscriptionSignals summarizes recurring-merchant spend.
type SubscriptionSignals struct {
	RecurringMerchants []RecurringMerchant `json:"recurring_merchants"`
	Count              int                 `json:"count"`
	MonthlySpend       int64               `json:"monthly_recurring_spend"` // cents per month
	PercentOfSpend     float64             `json:"percentage_of_spending"`  // 0-100
}

// SavingsSignals summarizes savings-account balances and flows.
type SavingsSignals struct {
	TotalBalance  int64   `json:"total_balance"`  // cents across savings-like accounts
	NetInflow     int64   `json:"net_inflow"`     // cents over the window, credits minus debits
	MonthlyInflow int64   `json:"monthly_inflow"` // cents per month, extrapolated
	GrowthRate    float64 `json:"growth_rate"`    // percent, net inflow / total balance

	// EmergencyFundMonths is total balance divided by monthly non-income
	// expenses. When expenses are zero but a balance exists the value is
	// meaningless, so Unbounded is set instead of dividing.
	EmergencyFundMonths float64 `json:"emergency_fund_months"`
	Unbounded           bool    `json:"emergency_fund_unbounded"`
}

// UtilizationFlag marks the highest utilization threshold crossed. At most
// one is emitted per snapshot.
type UtilizationFlag string

const (
	FlagUtilization80 UtilizationFlag = "high_utilization_80"
	FlagUtilization50 UtilizationFlag = "high_utilization_50"
	FlagUtilization30 UtilizationFlag = "moderate_utilization_30"
)

// CardUtilization is the per-account breakdown behind the overall number.
type CardUtilization struct {
	AccountID   string  `json:"account_id"`
	Utilization float64 `json:"utilization"` // percent
	Balance     int64   `json:"balance"`     // cents
	Limit       int64   `json:"limit"`       // cents
}

// CreditSignals summarizes credit-account health.
type CreditSignals struct {
	OverallUtilization float64           `json:"overall_utilization"` // percent 0-100
	TotalBalance       int64             `json:"total_balance"`       // cents
	TotalLimit         int64             `json:"total_limit"`         // cents
	MonthlyInterest    int64             `json:"monthly_interest"`    // cents, estimated
	UtilizationFlag    UtilizationFlag   `json:"utilization_flag,omitempty"`
	Overdue            bool              `json:"overdue"`
	MinimumPaymentOnly bool              `json:"minimum_payment_only"`
	PerCard            []CardUtilization `json:"per_card,omitempty"`
}

// IncomeFrequency classifies how regularly income arrives.
type IncomeFrequency string

const (
	FrequencyWeekly   IncomeFrequency = "weekly"
	FrequencyBiweekly IncomeFrequency = "biweekly"
	FrequencyMonthly  IncomeFrequency = "monthly"
	FrequencyVariable IncomeFrequency = "variable"
	FrequencyUnknown  IncomeFrequency = "unknown"
)

// IncomeStability classifies amount variability.
type IncomeStability string

const (
	StabilityStable   IncomeStability = "stable"
	StabilityVariable IncomeStability = "variable"
	StabilityUnknown  IncomeStability = "unknown"
)

// IncomeSignals summarizes income regularity and the cash-flow buffer.
type IncomeSignals struct {
	Frequency              IncomeFrequency `json:"frequency"`
	Stability              IncomeStability `json:"stability"`
	AverageAmount          int64           `json:"average_amount"` // cents per income payment
	CoefficientOfVariation float64         `json:"coefficient_variation"`

	// BufferMonths is (income - expenses) / monthly expenses over the
	// window. Negative values are valid and mean spending exceeds income.
	BufferMonths  float64 `json:"buffer_months"`
	MedianGapDays int     `json:"median_gap_days"`
}

// zeroIncome returns the unknown/zero income record used when data is
// insufficient.
func zeroIncome() IncomeSignals {
	return IncomeSignals{
		Frequency: FrequencyUnknown,
		Stability: StabilityUnknown,
	}
}

// Zero returns a snapshot with every sub-record at its safe default.
func Zero() BehaviorSignals {
	return BehaviorSignals{Income: zeroIncome()}
}

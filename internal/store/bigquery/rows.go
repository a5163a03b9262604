// Package bigquery implements the store interfaces on BigQuery. Row structs
// mirror the warehouse schema; mapping into domain types happens here so the
// core never sees warehouse-shaped data.
package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/spendsense/internal/domain"
)

// UserRow maps the users table.
type UserRow struct {
	UserID    string    `bigquery:"user_id"`
	Name      string    `bigquery:"name"`
	Email     string    `bigquery:"email"`
	Consent   bool      `bigquery:"consent"`
	CreatedTS time.Time `bigquery:"created_ts"`
}

func (r *UserRow) toDomain() domain.User {
	return domain.User{
		ID:        r.UserID,
		Name:      r.Name,
		Email:     r.Email,
		Consent:   r.Consent,
		CreatedAt: r.CreatedTS,
	}
}

// AccountRow maps the accounts table.
type AccountRow struct {
	AccountID string `bigquery:"account_id"`
	UserID    string `bigquery:"user_id"`
	Type      string `bigquery:"type"`
	Subtype   string `bigquery:"subtype"`
	Name      string `bigquery:"name"`
	Mask      string `bigquery:"mask"`

	CurrentBalance   int64              `bigquery:"current_balance"`
	AvailableBalance bigquery.NullInt64 `bigquery:"available_balance"`
	CreditLimit      bigquery.NullInt64 `bigquery:"credit_limit"`

	APR               bigquery.NullFloat64  `bigquery:"apr"`
	MinPayment        bigquery.NullInt64    `bigquery:"min_payment"`
	LastPaymentAmount bigquery.NullInt64    `bigquery:"last_payment_amount"`
	LastPaymentDate   bigquery.NullDate     `bigquery:"last_payment_date"`
	IsOverdue         bool                  `bigquery:"is_overdue"`
}

func (r *AccountRow) toDomain() domain.Account {
	acc := domain.Account{
		ID:             r.AccountID,
		UserID:         r.UserID,
		Type:           r.Type,
		Subtype:        r.Subtype,
		Name:           r.Name,
		Mask:           r.Mask,
		CurrentBalance: r.CurrentBalance,
		IsOverdue:      r.IsOverdue,
	}
	if r.AvailableBalance.Valid {
		v := r.AvailableBalance.Int64
		acc.AvailableBalance = &v
	}
	if r.CreditLimit.Valid {
		v := r.CreditLimit.Int64
		acc.Limit = &v
	}
	if r.APR.Valid {
		v := r.APR.Float64
		acc.APR = &v
	}
	if r.MinPayment.Valid {
		v := r.MinPayment.Int64
		acc.MinPayment = &v
	}
	if r.LastPaymentAmount.Valid {
		v := r.LastPaymentAmount.Int64
		acc.LastPaymentAmount = &v
	}
	if r.LastPaymentDate.Valid {
		v := r.LastPaymentDate.Date.In(time.UTC)
		acc.LastPaymentDate = &v
	}
	return acc
}

// TransactionRow maps the transactions table.
type TransactionRow struct {
	TransactionID string     `bigquery:"transaction_id"`
	AccountID     string     `bigquery:"account_id"`
	TxnDate       civil.Date `bigquery:"txn_date"`
	Amount        int64      `bigquery:"amount"` // cents, positive = debit

	MerchantName     bigquery.NullString `bigquery:"merchant_name"`
	MerchantEntityID bigquery.NullString `bigquery:"merchant_entity_id"`

	CategoryPrimary  string              `bigquery:"category_primary"`
	CategoryDetailed bigquery.NullString `bigquery:"category_detailed"`

	IsPending bool `bigquery:"is_pending"`
}

func (r *TransactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:               r.TransactionID,
		AccountID:        r.AccountID,
		Date:             r.TxnDate.In(time.UTC),
		Amount:           r.Amount,
		MerchantName:     r.MerchantName.StringVal,
		MerchantEntityID: r.MerchantEntityID.StringVal,
		Category:         r.CategoryPrimary,
		CategoryDetailed: r.CategoryDetailed.StringVal,
		Pending:          r.IsPending,
	}
}

// PersonaAssignmentRow maps the persona_assignments table.
type PersonaAssignmentRow struct {
	AssignmentID string    `bigquery:"assignment_id"`
	UserID       string    `bigquery:"user_id"`
	WindowDays   int64     `bigquery:"window_days"`
	PersonaType  string    `bigquery:"persona_type"`
	Confidence   float64   `bigquery:"confidence"`
	AssignedTS   time.Time `bigquery:"assigned_ts"`
}

func (r *PersonaAssignmentRow) toDomain() domain.PersonaAssignment {
	return domain.PersonaAssignment{
		ID:         r.AssignmentID,
		UserID:     r.UserID,
		Window:     domain.Window(r.WindowDays),
		Persona:    domain.PersonaType(r.PersonaType),
		Confidence: r.Confidence,
		AssignedAt: r.AssignedTS,
	}
}

// OverrideRow maps the operator_overrides table.
type OverrideRow struct {
	OverrideID         string              `bigquery:"override_id"`
	UserID             string              `bigquery:"user_id"`
	RecommendationID   string              `bigquery:"recommendation_id"`
	RecommendationType string              `bigquery:"recommendation_type"`
	Action             string              `bigquery:"action"`
	Reason             bigquery.NullString `bigquery:"reason"`
	OperatorID         string              `bigquery:"operator_id"`
	CreatedTS          time.Time           `bigquery:"created_ts"`
}

func (r *OverrideRow) toDomain() domain.OperatorOverride {
	return domain.OperatorOverride{
		ID:                 r.OverrideID,
		UserID:             r.UserID,
		RecommendationID:   r.RecommendationID,
		RecommendationType: r.RecommendationType,
		Action:             domain.OverrideAction(r.Action),
		Reason:             r.Reason.StringVal,
		OperatorID:         r.OperatorID,
		CreatedAt:          r.CreatedTS,
	}
}

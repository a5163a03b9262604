package bigquery

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/dvloznov/spendsense/internal/domain"
)

const (
	usersTable        = "users"
	accountsTable     = "accounts"
	transactionsTable = "transactions"
	assignmentsTable  = "persona_assignments"
	overridesTable    = "operator_overrides"
)

// Store implements the store interfaces against a BigQuery dataset. The
// client is shared and owned by the caller of NewStore; Close releases it.
type Store struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewStore creates a BigQuery-backed store for the given project and dataset.
func NewStore(ctx context.Context, projectID, datasetID string, opts ...option.ClientOption) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewStore: bigquery client: %w", err)
	}
	return &Store{client: client, projectID: projectID, datasetID: datasetID}, nil
}

// NewStoreWithClient wraps an existing BigQuery client. The caller keeps
// ownership of the client.
func NewStoreWithClient(client *bigquery.Client, projectID, datasetID string) *Store {
	return &Store{client: client, projectID: projectID, datasetID: datasetID}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", s.projectID, s.datasetID, name)
}

// GetUser implements store.UserStore.
func (s *Store) GetUser(ctx context.Context, userID string) (domain.User, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			user_id,
			name,
			email,
			consent,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		LIMIT 1
	`, s.table(usersTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("GetUser: query read: %w", err)
	}

	var row UserRow
	err = it.Next(&row)
	if errors.Is(err, iterator.Done) {
		return domain.User{}, fmt.Errorf("GetUser: %q: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("GetUser: iter next: %w", err)
	}

	return row.toDomain(), nil
}

// ListAccounts implements store.AccountStore.
func (s *Store) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			account_id,
			user_id,
			type,
			subtype,
			name,
			mask,
			current_balance,
			available_balance,
			credit_limit,
			apr,
			min_payment,
			last_payment_amount,
			last_payment_date,
			is_overdue
		FROM %s
		WHERE user_id = @user_id
		ORDER BY account_id
	`, s.table(accountsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: query read: %w", err)
	}

	var accounts []domain.Account
	for {
		var row AccountRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: iter next: %w", err)
		}
		accounts = append(accounts, row.toDomain())
	}

	return accounts, nil
}

// ListTransactions implements store.TransactionStore. The window cutoff is
// applied server-side so large histories never cross the wire.
func (s *Store) ListTransactions(ctx context.Context, userID string, window domain.Window) ([]domain.Transaction, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			t.transaction_id,
			t.account_id,
			t.txn_date,
			t.amount,
			t.merchant_name,
			t.merchant_entity_id,
			t.category_primary,
			t.category_detailed,
			t.is_pending
		FROM %s t
		INNER JOIN %s a
		  ON t.account_id = a.account_id
		WHERE a.user_id = @user_id
		  AND t.txn_date >= DATE_SUB(CURRENT_DATE(), INTERVAL @window_days DAY)
		ORDER BY t.txn_date, t.transaction_id
	`, s.table(transactionsTable), s.table(accountsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "window_days", Value: int64(window.Days())},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: query read: %w", err)
	}

	var txns []domain.Transaction
	for {
		var row TransactionRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iter next: %w", err)
		}
		txns = append(txns, row.toDomain())
	}

	return txns, nil
}

// SavePersonaAssignment implements store.PersonaStore.
func (s *Store) SavePersonaAssignment(ctx context.Context, assignment domain.PersonaAssignment) error {
	if assignment.ID == "" {
		return fmt.Errorf("SavePersonaAssignment: assignment ID is required")
	}

	row := &PersonaAssignmentRow{
		AssignmentID: assignment.ID,
		UserID:       assignment.UserID,
		WindowDays:   int64(assignment.Window.Days()),
		PersonaType:  string(assignment.Persona),
		Confidence:   assignment.Confidence,
		AssignedTS:   assignment.AssignedAt,
	}

	table := s.client.DatasetInProject(s.projectID, s.datasetID).Table(assignmentsTable)
	if err := table.Inserter().Put(ctx, row); err != nil {
		return fmt.Errorf("SavePersonaAssignment: inserting row: %w", err)
	}

	return nil
}

// LatestPersonaAssignment implements store.PersonaStore.
func (s *Store) LatestPersonaAssignment(ctx context.Context, userID string, window domain.Window) (domain.PersonaAssignment, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			assignment_id,
			user_id,
			window_days,
			persona_type,
			confidence,
			assigned_ts
		FROM %s
		WHERE user_id = @user_id
		  AND window_days = @window_days
		ORDER BY assigned_ts DESC
		LIMIT 1
	`, s.table(assignmentsTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
		{Name: "window_days", Value: int64(window.Days())},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return domain.PersonaAssignment{}, fmt.Errorf("LatestPersonaAssignment: query read: %w", err)
	}

	var row PersonaAssignmentRow
	err = it.Next(&row)
	if errors.Is(err, iterator.Done) {
		return domain.PersonaAssignment{}, fmt.Errorf("LatestPersonaAssignment: %q %s: %w", userID, window, domain.ErrNotFound)
	}
	if err != nil {
		return domain.PersonaAssignment{}, fmt.Errorf("LatestPersonaAssignment: iter next: %w", err)
	}

	return row.toDomain(), nil
}

// ListOverrides implements store.OverrideStore.
func (s *Store) ListOverrides(ctx context.Context, userID string) ([]domain.OperatorOverride, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			override_id,
			user_id,
			recommendation_id,
			recommendation_type,
			action,
			reason,
			operator_id,
			created_ts
		FROM %s
		WHERE user_id = @user_id
		ORDER BY created_ts
	`, s.table(overridesTable)))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListOverrides: query read: %w", err)
	}

	var overrides []domain.OperatorOverride
	for {
		var row OverrideRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListOverrides: iter next: %w", err)
		}
		overrides = append(overrides, row.toDomain())
	}

	return overrides, nil
}

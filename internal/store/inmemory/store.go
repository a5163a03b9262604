// Package inmemory is a map-backed implementation of the store interfaces.
// It is safe for concurrent use and backs the CLI demo and tests; data is
// lost on restart, so production deployments use the BigQuery store.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dvloznov/spendsense/internal/domain"
)

// Store holds all records in memory, keyed by user.
type Store struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	accounts     map[string][]domain.Account          // by user id
	transactions map[string][]domain.Transaction      // by user id
	overrides    map[string][]domain.OperatorOverride // by user id
	assignments  []domain.PersonaAssignment

	// now is swappable so window filtering is testable with fixed dates.
	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		accounts:     make(map[string][]domain.Account),
		transactions: make(map[string][]domain.Transaction),
		overrides:    make(map[string][]domain.OperatorOverride),
		now:          time.Now,
	}
}

// SetClock replaces the time source used for window cutoffs.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// PutUser adds or replaces a user.
func (s *Store) PutUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// PutAccounts replaces the user's account set.
func (s *Store) PutAccounts(userID string, accounts []domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[userID] = append([]domain.Account(nil), accounts...)
}

// PutTransactions replaces the user's transaction set.
func (s *Store) PutTransactions(userID string, transactions []domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[userID] = append([]domain.Transaction(nil), transactions...)
}

// PutOverride appends an operator override record.
func (s *Store) PutOverride(override domain.OperatorOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[override.UserID] = append(s.overrides[override.UserID], override)
}

// GetUser implements store.UserStore.
func (s *Store) GetUser(ctx context.Context, userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("GetUser: %q: %w", userID, domain.ErrNotFound)
	}
	return user, nil
}

// ListAccounts implements store.AccountStore.
func (s *Store) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Account(nil), s.accounts[userID]...), nil
}

// ListTransactions implements store.TransactionStore. Only transactions on
// or after the window cutoff are returned, ordered by date ascending.
func (s *Store) ListTransactions(ctx context.Context, userID string, window domain.Window) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().AddDate(0, 0, -window.Days())
	var result []domain.Transaction
	for _, txn := range s.transactions[userID] {
		if txn.Date.Before(cutoff) {
			continue
		}
		result = append(result, txn)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// SavePersonaAssignment implements store.PersonaStore.
func (s *Store) SavePersonaAssignment(ctx context.Context, assignment domain.PersonaAssignment) error {
	if assignment.ID == "" {
		return fmt.Errorf("SavePersonaAssignment: assignment ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = append(s.assignments, assignment)
	return nil
}

// LatestPersonaAssignment implements store.PersonaStore.
func (s *Store) LatestPersonaAssignment(ctx context.Context, userID string, window domain.Window) (domain.PersonaAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.PersonaAssignment
	for i := range s.assignments {
		a := s.assignments[i]
		if a.UserID != userID || a.Window != window {
			continue
		}
		if latest == nil || a.AssignedAt.After(latest.AssignedAt) {
			latest = &a
		}
	}
	if latest == nil {
		return domain.PersonaAssignment{}, fmt.Errorf("LatestPersonaAssignment: %q %s: %w", userID, window, domain.ErrNotFound)
	}
	return *latest, nil
}

// ListOverrides implements store.OverrideStore.
func (s *Store) ListOverrides(ctx context.Context, userID string) ([]domain.OperatorOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.OperatorOverride(nil), s.overrides[userID]...), nil
}

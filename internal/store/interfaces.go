// Package store defines the data-access capabilities the recommendation
// core consumes. The core only reads; override and catalog writes belong to
// separate operator and content surfaces.
package store

import (
	"context"

	"github.com/dvloznov/spendsense/internal/domain"
)

// UserStore resolves users and their consent status.
type UserStore interface {
	// GetUser returns domain.ErrNotFound (possibly wrapped) for unknown ids.
	GetUser(ctx context.Context, userID string) (domain.User, error)
}

// AccountStore lists a user's accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// TransactionStore lists a user's transactions bounded to a window.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string, window domain.Window) ([]domain.Transaction, error)
}

// PersonaStore persists persona assignments for audit and history.
type PersonaStore interface {
	SavePersonaAssignment(ctx context.Context, assignment domain.PersonaAssignment) error
	// LatestPersonaAssignment returns domain.ErrNotFound when no assignment
	// exists for the pair.
	LatestPersonaAssignment(ctx context.Context, userID string, window domain.Window) (domain.PersonaAssignment, error)
}

// OverrideStore lists operator overrides for a user.
type OverrideStore interface {
	ListOverrides(ctx context.Context, userID string) ([]domain.OperatorOverride, error)
}

// DataSource is the full capability set the engine needs.
type DataSource interface {
	UserStore
	AccountStore
	TransactionStore
	PersonaStore
	OverrideStore
}

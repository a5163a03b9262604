package inmemory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dvloznov/spendsense/internal/domain"
)

// Seed is the JSON fixture shape for local demos and tests.
type Seed struct {
	Users        []domain.User             `json:"users"`
	Accounts     []domain.Account          `json:"accounts"`
	Transactions []domain.Transaction      `json:"transactions"`
	Overrides    []domain.OperatorOverride `json:"overrides"`
}

// LoadSeed reads a fixture file and populates the store. Accounts and
// transactions are grouped by owner; transactions resolve the owner through
// their account.
func (s *Store) LoadSeed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("LoadSeed: read %s: %w", path, err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("LoadSeed: unmarshal %s: %w", path, err)
	}

	accountOwner := make(map[string]string, len(seed.Accounts))
	accountsByUser := make(map[string][]domain.Account)
	for _, acc := range seed.Accounts {
		accountOwner[acc.ID] = acc.UserID
		accountsByUser[acc.UserID] = append(accountsByUser[acc.UserID], acc)
	}

	txnsByUser := make(map[string][]domain.Transaction)
	for _, txn := range seed.Transactions {
		owner, ok := accountOwner[txn.AccountID]
		if !ok {
			return fmt.Errorf("LoadSeed: transaction %s references unknown account %s", txn.ID, txn.AccountID)
		}
		txnsByUser[owner] = append(txnsByUser[owner], txn)
	}

	for _, user := range seed.Users {
		s.PutUser(user)
		s.PutAccounts(user.ID, accountsByUser[user.ID])
		s.PutTransactions(user.ID, txnsByUser[user.ID])
	}
	for _, o := range seed.Overrides {
		s.PutOverride(o)
	}

	return nil
}

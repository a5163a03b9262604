package inmemory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const seedJSON = `{
  "users": [
    {"id": "user1", "name": "Test", "consent": true}
  ],
  "accounts": [
    {"id": "acc1", "userId": "user1", "type": "depository", "subtype": "checking", "currentBalance": 100000}
  ],
  "transactions": [
    {"id": "t1", "accountId": "acc1", "date": "2026-08-01T00:00:00Z", "amount": 1599, "merchantName": "Streamflix", "category": "ENTERTAINMENT"}
  ],
  "overrides": [
    {"id": "o1", "userId": "user1", "recommendationId": "edu1", "recommendationType": "education", "action": "flag", "reason": "stale", "operatorId": "op1"}
  ]
}`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(seedJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.LoadSeed(path); err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	ctx := context.Background()
	user, err := s.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if !user.Consent {
		t.Error("consent not loaded")
	}

	accounts, _ := s.ListAccounts(ctx, "user1")
	if len(accounts) != 1 || accounts[0].ID != "acc1" {
		t.Errorf("accounts = %+v", accounts)
	}

	overrides, _ := s.ListOverrides(ctx, "user1")
	if len(overrides) != 1 || overrides[0].RecommendationID != "edu1" {
		t.Errorf("overrides = %+v", overrides)
	}
}

func TestLoadSeed_UnknownAccount(t *testing.T) {
	bad := `{
  "users": [{"id": "user1"}],
  "transactions": [{"id": "t1", "accountId": "ghost", "date": "2026-08-01T00:00:00Z", "amount": 100}]
}`
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewStore().LoadSeed(path); err == nil {
		t.Error("transaction referencing an unknown account should fail the load")
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	if err := NewStore().LoadSeed(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing seed file should fail")
	}
}

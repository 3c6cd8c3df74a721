package accountstore_test

import (
	"testing"

	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	"github.com/dalemusser/bankhub/internal/domain/models"
	"github.com/dalemusser/bankhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	user := fx.CreateUser(ctx, "Jane Roe", "jane@example.com", "jroe")

	acct := models.Account{
		AccountID:   "ACC-11111111",
		UserID:      user.UserID,
		AccountType: "savings",
		Balance:     testutil.Decimal(t, "250.00"),
		Currency:    "EUR",
		Status:      models.AccountActive,
		OpenDate:    "2025-06-01",
	}
	created, err := store.Create(ctx, acct)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	found, err := store.GetByAccountID(ctx, "ACC-11111111")
	if err != nil {
		t.Fatalf("GetByAccountID failed: %v", err)
	}
	if found.Balance.String() != "250.00" {
		t.Errorf("Balance: got %s, want 250.00", found.Balance)
	}
	if found.Currency != "EUR" {
		t.Errorf("Currency: got %q", found.Currency)
	}
}

func TestStore_Create_DuplicateAccountID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acct := models.Account{
		AccountID:   "ACC-22222222",
		UserID:      "USER-00000001",
		AccountType: "checking",
		Balance:     testutil.Decimal(t, "0.00"),
		Currency:    "USD",
		Status:      models.AccountActive,
		OpenDate:    "2025-06-01",
	}
	if _, err := store.Create(ctx, acct); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, acct); err != accountstore.ErrDuplicateAccount {
		t.Errorf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestStore_UpdateBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	user := fx.CreateUser(ctx, "Jane Roe", "jane@example.com", "jroe")
	acct := fx.CreateAccount(ctx, user.UserID, "100.00")

	if err := store.UpdateBalance(ctx, acct.AccountID, testutil.Decimal(t, "75.50")); err != nil {
		t.Fatalf("UpdateBalance failed: %v", err)
	}

	found, err := store.GetByAccountID(ctx, acct.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID failed: %v", err)
	}
	if found.Balance.String() != "75.50" {
		t.Errorf("Balance: got %s, want 75.50", found.Balance)
	}
	if !found.UpdatedAt.After(acct.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}

	err = store.UpdateBalance(ctx, "ACC-DEADBEEF", testutil.Decimal(t, "1.00"))
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for unknown account, got %v", err)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	user := fx.CreateUser(ctx, "Jane Roe", "jane@example.com", "jroe")
	acct := fx.CreateAccount(ctx, user.UserID, "100.00")

	if err := store.UpdateStatus(ctx, acct.AccountID, models.AccountClosed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	found, err := store.GetByAccountID(ctx, acct.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID failed: %v", err)
	}
	if found.Status != models.AccountClosed {
		t.Errorf("Status: got %q, want closed", found.Status)
	}
}

func TestStore_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := accountstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Jane Roe", "jane@example.com", "jroe")
	other := fx.CreateUser(ctx, "Bob Two", "bob@example.com", "bob")
	fx.CreateAccount(ctx, owner.UserID, "10.00")
	fx.CreateAccount(ctx, owner.UserID, "20.00")
	fx.CreateAccount(ctx, other.UserID, "30.00")

	accts, err := store.ListByUserID(ctx, owner.UserID)
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(accts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accts))
	}

	n, err := store.Count(ctx, bson.M{"user_id": other.UserID})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
}

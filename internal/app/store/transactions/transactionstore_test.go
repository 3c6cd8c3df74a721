package transactionstore_test

import (
	"testing"

	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	"github.com/dalemusser/bankhub/internal/domain/models"
	"github.com/dalemusser/bankhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := models.Transaction{
		TransactionID: "TX-11111111",
		FromAccountID: "ACC-00000001",
		ToAccountID:   "ACC-00000002",
		Amount:        testutil.Decimal(t, "42.10"),
		Date:          "2025-06-01T10:30:00",
		Type:          "transfer",
		Status:        models.TransactionCompleted,
	}
	if _, err := store.Create(ctx, tx); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByTransactionID(ctx, "TX-11111111")
	if err != nil {
		t.Fatalf("GetByTransactionID failed: %v", err)
	}
	if found.Amount.String() != "42.10" {
		t.Errorf("Amount: got %s, want 42.10", found.Amount)
	}
	if found.Date != "2025-06-01T10:30:00" {
		t.Errorf("Date: got %q", found.Date)
	}
}

func TestStore_Create_DuplicateTransactionID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tx := models.Transaction{
		TransactionID: "TX-22222222",
		FromAccountID: "ACC-00000001",
		ToAccountID:   "ACC-00000002",
		Amount:        testutil.Decimal(t, "1.00"),
		Date:          "2025-06-01T10:30:00",
		Type:          "transfer",
		Status:        models.TransactionCompleted,
	}
	if _, err := store.Create(ctx, tx); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, tx); err != transactionstore.ErrDuplicateTransaction {
		t.Errorf("expected ErrDuplicateTransaction, got %v", err)
	}
}

func TestStore_ListByAccountID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateTransaction(ctx, "ACC-A", "ACC-B", "10.00", "2025-06-01T09:00:00")
	fx.CreateTransaction(ctx, "ACC-B", "ACC-A", "20.00", "2025-06-02T09:00:00")
	fx.CreateTransaction(ctx, "ACC-B", "ACC-C", "30.00", "2025-06-03T09:00:00")

	txs, err := store.ListByAccountID(ctx, "ACC-A")
	if err != nil {
		t.Fatalf("ListByAccountID failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	// newest first
	if txs[0].Date != "2025-06-02T09:00:00" {
		t.Errorf("expected newest first, got %q", txs[0].Date)
	}
}

func TestStore_DateRangeFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateTransaction(ctx, "ACC-A", "ACC-B", "10.00", "2025-05-31T23:59:59")
	fx.CreateTransaction(ctx, "ACC-A", "ACC-B", "20.00", "2025-06-15T12:00:00")
	fx.CreateTransaction(ctx, "ACC-A", "ACC-B", "30.00", "2025-07-01T00:00:00")

	// string range comparison works because the layout is lexicographically
	// ordered
	txs, err := store.Find(ctx, bson.M{"date": bson.M{
		"$gte": "2025-06-01T00:00:00",
		"$lt":  "2025-07-01T00:00:00",
	}})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction in June, got %d", len(txs))
	}
	if txs[0].Amount.String() != "20.00" {
		t.Errorf("Amount: got %s", txs[0].Amount)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := transactionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	tx := fx.CreateTransaction(ctx, "ACC-A", "ACC-B", "10.00", "")

	if err := store.UpdateStatus(ctx, tx.TransactionID, "failed"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	found, err := store.GetByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("GetByTransactionID failed: %v", err)
	}
	if found.Status != "failed" {
		t.Errorf("Status: got %q, want failed", found.Status)
	}

	if err := store.UpdateStatus(ctx, "TX-DEADBEEF", "failed"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

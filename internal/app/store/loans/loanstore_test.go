package loanstore_test

import (
	"testing"

	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	"github.com/dalemusser/bankhub/internal/domain/models"
	"github.com/dalemusser/bankhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	loan := models.Loan{
		LoanID:       "LOAN-11111111",
		UserID:       "USER-00000001",
		LoanAmount:   testutil.Decimal(t, "15000.00"),
		InterestRate: testutil.Decimal(t, "4.90"),
		StartDate:    "2025-06-01",
		Duration:     36,
		Status:       models.LoanRequested,
	}
	if _, err := store.Create(ctx, loan); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByLoanID(ctx, "LOAN-11111111")
	if err != nil {
		t.Fatalf("GetByLoanID failed: %v", err)
	}
	if found.LoanAmount.String() != "15000.00" {
		t.Errorf("LoanAmount: got %s", found.LoanAmount)
	}
	if found.Duration != 36 {
		t.Errorf("Duration: got %d", found.Duration)
	}

	if _, err := store.Create(ctx, loan); err != loanstore.ErrDuplicateLoan {
		t.Errorf("expected ErrDuplicateLoan, got %v", err)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	loan := fx.CreateLoan(ctx, "USER-00000001", "8000.00")

	if err := store.UpdateStatus(ctx, loan.LoanID, models.LoanApproved); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	found, err := store.GetByLoanID(ctx, loan.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID failed: %v", err)
	}
	if found.Status != models.LoanApproved {
		t.Errorf("Status: got %q, want approved", found.Status)
	}

	if err := store.UpdateStatus(ctx, "LOAN-DEADBEEF", models.LoanApproved); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	fx.CreateLoan(ctx, "USER-A0000001", "100.00")
	fx.CreateLoan(ctx, "USER-A0000001", "200.00")
	fx.CreateLoan(ctx, "USER-B0000001", "300.00")

	loans, err := store.ListByUserID(ctx, "USER-A0000001")
	if err != nil {
		t.Fatalf("ListByUserID failed: %v", err)
	}
	if len(loans) != 2 {
		t.Errorf("expected 2 loans, got %d", len(loans))
	}
}

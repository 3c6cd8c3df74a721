// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/bankhub/internal/app/system/identifier"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// Fixtures provides helper methods for seeding test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Decimal parses s into a Decimal128 or fails the test.
func Decimal(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		t.Fatalf("bad decimal fixture %q: %v", s, err)
	}
	return d
}

// CreateUser inserts a customer user with generated identifiers.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, username string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		UserID:     identifier.New(identifier.UserPrefix),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      normalize.Email(email),
		Phone:      "+12025550100",
		Address: models.Address{
			Country: "Netherlands",
			City:    "Amsterdam",
			Street:  "Main Street 5",
		},
		Role:         "customer",
		Username:     username,
		PasswordHash: "$2a$10$testtesttesttesttesttx",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAccount inserts an active checking account for the given user.
func (f *Fixtures) CreateAccount(ctx context.Context, userID, balance string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	acct := models.Account{
		ID:          primitive.NewObjectID(),
		AccountID:   identifier.New(identifier.AccountPrefix),
		UserID:      userID,
		AccountType: "checking",
		Balance:     Decimal(f.t, balance),
		Currency:    "USD",
		Status:      models.AccountActive,
		OpenDate:    now.Format(normalize.DateLayout),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("accounts").InsertOne(ctx, acct); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return acct
}

// CreateTransaction inserts a completed transfer between two accounts.
// An empty date defaults to the current timestamp.
func (f *Fixtures) CreateTransaction(ctx context.Context, fromID, toID, amount, date string) models.Transaction {
	f.t.Helper()

	now := time.Now().UTC()
	if date == "" {
		date = now.Format(normalize.TimestampLayout)
	}
	tx := models.Transaction{
		ID:            primitive.NewObjectID(),
		TransactionID: identifier.New(identifier.TransactionPrefix),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        Decimal(f.t, amount),
		Date:          date,
		Type:          "transfer",
		Status:        models.TransactionCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("transactions").InsertOne(ctx, tx); err != nil {
		f.t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateLoan inserts a requested loan for the given user.
func (f *Fixtures) CreateLoan(ctx context.Context, userID, amount string) models.Loan {
	f.t.Helper()

	now := time.Now().UTC()
	loan := models.Loan{
		ID:           primitive.NewObjectID(),
		LoanID:       identifier.New(identifier.LoanPrefix),
		UserID:       userID,
		LoanAmount:   Decimal(f.t, amount),
		InterestRate: Decimal(f.t, "5.25"),
		StartDate:    now.Format(normalize.DateLayout),
		Duration:     12,
		Status:       models.LoanRequested,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("loans").InsertOne(ctx, loan); err != nil {
		f.t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateCard inserts an active card on the given account.
func (f *Fixtures) CreateCard(ctx context.Context, accountID, number, expiry string) models.Card {
	f.t.Helper()

	now := time.Now().UTC()
	card := models.Card{
		ID:         primitive.NewObjectID(),
		CardID:     identifier.New(identifier.CardPrefix),
		AccountID:  accountID,
		CardType:   "Visa",
		CardNumber: number,
		CVV:        "123",
		ExpiryDate: expiry,
		Status:     models.CardActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("cards").InsertOne(ctx, card); err != nil {
		f.t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateEmployee inserts an employee record for the given user.
func (f *Fixtures) CreateEmployee(ctx context.Context, userID, branchID, position string) models.Employee {
	f.t.Helper()

	now := time.Now().UTC()
	emp := models.Employee{
		ID:         primitive.NewObjectID(),
		EmployeeID: identifier.New(identifier.EmployeePrefix),
		UserID:     userID,
		Position:   position,
		BranchID:   branchID,
		HireDate:   now.Format(normalize.DateLayout),
		Salary:     Decimal(f.t, "52000.00"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("employees").InsertOne(ctx, emp); err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

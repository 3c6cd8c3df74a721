// internal/app/pipeline/build.go
package pipeline

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/bankhub/internal/app/system/identifier"
	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/domain/faults"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// Per-entity builders. Each takes a request that already passed validation
// and produces the canonical document: generated identifier when absent,
// money normalized to a 2-decimal-place scale (round half to even), dates
// in the canonical layouts, defaults applied.

// money parses a validated amount string into a Decimal128 at the canonical
// 2dp scale.
func money(s string) (primitive.Decimal128, error) {
	d, err := inputval.ParseMoney(s)
	if err != nil {
		return primitive.Decimal128{}, faults.Wrap(faults.Validation, "Error: Invalid amount format. Expected a number.", err)
	}
	out, err := primitive.ParseDecimal128(normalize.Money(d))
	if err != nil {
		return primitive.Decimal128{}, faults.Wrap(faults.Store, "failed to convert a normalized amount", err)
	}
	return out, nil
}

// date normalizes a validated date string, defaulting to today when empty.
func date(s string) string {
	if s == "" {
		return normalize.Date(time.Now().UTC())
	}
	t, err := inputval.ParseDate(s)
	if err != nil {
		return normalize.Date(time.Now().UTC())
	}
	return normalize.Date(t)
}

func buildUser(req UserRequest, passwordHash string) models.User {
	userID := req.UserID
	if userID == "" {
		userID = identifier.New(identifier.UserPrefix)
	}
	return models.User{
		UserID:   userID,
		FullName: normalize.Name(req.FullName),
		Email:    normalize.Email(req.Email),
		Phone:    normalize.Name(req.Phone),
		Address: models.Address{
			Country: normalize.Name(req.Address.Country),
			City:    normalize.Name(req.Address.City),
			Street:  normalize.Text(req.Address.Street),
		},
		Role:         normalize.Status(req.Role),
		Username:     normalize.Name(req.Username),
		PasswordHash: passwordHash,
	}
}

func buildAccount(req AccountRequest) (models.Account, error) {
	balance, err := money(req.Balance)
	if err != nil {
		return models.Account{}, err
	}
	accountID := req.AccountID
	if accountID == "" {
		accountID = identifier.New(identifier.AccountPrefix)
	}
	status := normalize.Status(req.Status)
	if status == "" {
		status = models.AccountActive
	}
	return models.Account{
		AccountID:   accountID,
		UserID:      req.UserID,
		AccountType: normalize.Status(req.AccountType),
		Balance:     balance,
		Currency:    normalize.Currency(req.Currency),
		Status:      status,
		OpenDate:    date(req.OpenDate),
	}, nil
}

func buildTransaction(req TransactionRequest) (models.Transaction, error) {
	amount, err := money(req.Amount)
	if err != nil {
		return models.Transaction{}, err
	}
	txID := req.TransactionID
	if txID == "" {
		txID = identifier.New(identifier.TransactionPrefix)
	}
	status := normalize.Status(req.Status)
	if status == "" {
		status = models.TransactionCompleted
	}
	ts := normalize.Timestamp(time.Now().UTC())
	if req.Date != "" {
		if t, err := inputval.ParseTimestamp(req.Date); err == nil {
			ts = normalize.Timestamp(t)
		}
	}
	return models.Transaction{
		TransactionID: txID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Date:          ts,
		Type:          normalize.Text(req.Type),
		Status:        status,
	}, nil
}

func buildLoan(req LoanRequest) (models.Loan, error) {
	amount, err := money(req.LoanAmount)
	if err != nil {
		return models.Loan{}, err
	}
	rate, err := money(req.InterestRate)
	if err != nil {
		return models.Loan{}, err
	}
	loanID := req.LoanID
	if loanID == "" {
		loanID = identifier.New(identifier.LoanPrefix)
	}
	status := normalize.Status(req.Status)
	if status == "" {
		status = models.LoanRequested
	}
	return models.Loan{
		LoanID:       loanID,
		UserID:       req.UserID,
		LoanAmount:   amount,
		InterestRate: rate,
		StartDate:    date(req.StartDate),
		Duration:     req.Duration,
		Status:       status,
	}, nil
}

func buildCard(req CardRequest) models.Card {
	cardID := req.CardID
	if cardID == "" {
		cardID = identifier.New(identifier.CardPrefix)
	}
	status := normalize.Status(req.Status)
	if status == "" {
		status = models.CardActive
	}
	return models.Card{
		CardID:     cardID,
		AccountID:  req.AccountID,
		CardType:   normalize.Text(req.CardType),
		CardNumber: normalize.CardNumber(req.CardNumber),
		CVV:        req.CVV,
		ExpiryDate: date(req.ExpiryDate),
		Status:     status,
	}
}

func buildEmployee(req EmployeeRequest) (models.Employee, error) {
	salary, err := money(req.Salary)
	if err != nil {
		return models.Employee{}, err
	}
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = identifier.New(identifier.EmployeePrefix)
	}
	return models.Employee{
		EmployeeID: employeeID,
		UserID:     req.UserID,
		Position:   normalize.Text(req.Position),
		BranchID:   req.BranchID,
		HireDate:   date(req.HireDate),
		Salary:     salary,
	}, nil
}

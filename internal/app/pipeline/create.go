// internal/app/pipeline/create.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	cardstore "github.com/dalemusser/bankhub/internal/app/store/cards"
	employeestore "github.com/dalemusser/bankhub/internal/app/store/employees"
	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/schemadoc"
	"github.com/dalemusser/bankhub/internal/domain/faults"
)

func storeFault(op string, err error) *faults.Fault {
	return faults.Wrap(faults.Store, "An error occurred during "+op+".", err)
}

func conflict(message string) *faults.Fault {
	return faults.New(faults.Conflict, message)
}

func reference(message string) *faults.Fault {
	return faults.New(faults.Reference, message)
}

// CreateUser validates, builds, and persists a new user. Existence checks
// run in a fixed order: UserID, then Email, then Username.
func (p *Pipeline) CreateUser(ctx context.Context, req UserRequest) Result {
	if f := validateUser(req, true); f != nil {
		return p.fail(f)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return p.fail(storeFault("user creation", err))
	}
	user := buildUser(req, string(hash))

	if issues := schemadoc.Validate(user, schemadoc.Users); len(issues) > 0 {
		return p.fail(schemaFault("User", issues))
	}

	exists, err := p.users.ExistsByUserID(ctx, user.UserID)
	if err != nil {
		return p.fail(storeFault("user creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create user: User ID %s already exists", user.UserID)))
	}
	exists, err = p.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return p.fail(storeFault("user creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create user: Email %s already exists", user.Email)))
	}
	exists, err = p.users.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return p.fail(storeFault("user creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create user: Username %s already exists", user.Username)))
	}

	created, err := p.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateUser) {
			return p.fail(conflict(fmt.Sprintf("Cannot create user: User ID %s already exists", user.UserID)))
		}
		return p.fail(storeFault("user creation", err))
	}
	return succeed(fmt.Sprintf("User %s created successfully.", created.UserID), created.UserID)
}

// CreateAccount validates, builds, and persists a new account. The owner
// must exist before the AccountID uniqueness check runs.
func (p *Pipeline) CreateAccount(ctx context.Context, req AccountRequest) Result {
	if f := validateAccount(req); f != nil {
		return p.fail(f)
	}

	acct, err := buildAccount(req)
	if err != nil {
		return p.fail(err)
	}

	if issues := schemadoc.Validate(acct, schemadoc.Accounts); len(issues) > 0 {
		return p.fail(schemaFault("Account", issues))
	}

	exists, err := p.users.ExistsByUserID(ctx, acct.UserID)
	if err != nil {
		return p.fail(storeFault("account creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create account: User %s not found.", acct.UserID)))
	}
	exists, err = p.accounts.ExistsByAccountID(ctx, acct.AccountID)
	if err != nil {
		return p.fail(storeFault("account creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create account: Account ID %s already exists.", acct.AccountID)))
	}

	created, err := p.accounts.Create(ctx, acct)
	if err != nil {
		if errors.Is(err, accountstore.ErrDuplicateAccount) {
			return p.fail(conflict(fmt.Sprintf("Cannot create account: Account ID %s already exists.", acct.AccountID)))
		}
		return p.fail(storeFault("account creation", err))
	}
	return succeed(fmt.Sprintf("Account %s created successfully.", created.AccountID), created.AccountID)
}

// CreateTransaction validates, builds, and persists a transfer. The
// same-account check runs before any store access; the existence order is
// TransactionID, then FromAccountID, then ToAccountID.
func (p *Pipeline) CreateTransaction(ctx context.Context, req TransactionRequest) Result {
	if f := validateTransaction(req); f != nil {
		return p.fail(f)
	}
	if req.FromAccountID == req.ToAccountID {
		return p.fail(invalid("Error: FromAccountID and ToAccountID cannot be the same."))
	}

	tx, err := buildTransaction(req)
	if err != nil {
		return p.fail(err)
	}

	if issues := schemadoc.Validate(tx, schemadoc.Transactions); len(issues) > 0 {
		return p.fail(schemaFault("Transaction", issues))
	}

	exists, err := p.transactions.ExistsByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		return p.fail(storeFault("transaction creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create transaction: Transaction ID %s already exists", tx.TransactionID)))
	}
	exists, err = p.accounts.ExistsByAccountID(ctx, tx.FromAccountID)
	if err != nil {
		return p.fail(storeFault("transaction creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create transaction: FromAccountID %s not found", tx.FromAccountID)))
	}
	exists, err = p.accounts.ExistsByAccountID(ctx, tx.ToAccountID)
	if err != nil {
		return p.fail(storeFault("transaction creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create transaction: ToAccountID %s not found", tx.ToAccountID)))
	}

	created, err := p.transactions.Create(ctx, tx)
	if err != nil {
		if errors.Is(err, transactionstore.ErrDuplicateTransaction) {
			return p.fail(conflict(fmt.Sprintf("Cannot create transaction: Transaction ID %s already exists", tx.TransactionID)))
		}
		return p.fail(storeFault("transaction creation", err))
	}
	return succeed(fmt.Sprintf("Transaction %s created successfully.", created.TransactionID), created.TransactionID)
}

// CreateLoan validates, builds, and persists a loan request.
func (p *Pipeline) CreateLoan(ctx context.Context, req LoanRequest) Result {
	if f := validateLoan(req); f != nil {
		return p.fail(f)
	}

	loan, err := buildLoan(req)
	if err != nil {
		return p.fail(err)
	}

	if issues := schemadoc.Validate(loan, schemadoc.Loans); len(issues) > 0 {
		return p.fail(schemaFault("Loan", issues))
	}

	exists, err := p.users.ExistsByUserID(ctx, loan.UserID)
	if err != nil {
		return p.fail(storeFault("loan creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create loan: User %s not found.", loan.UserID)))
	}
	exists, err = p.loans.ExistsByLoanID(ctx, loan.LoanID)
	if err != nil {
		return p.fail(storeFault("loan creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create loan: Loan ID %s already exists.", loan.LoanID)))
	}

	created, err := p.loans.Create(ctx, loan)
	if err != nil {
		if errors.Is(err, loanstore.ErrDuplicateLoan) {
			return p.fail(conflict(fmt.Sprintf("Cannot create loan: Loan ID %s already exists.", loan.LoanID)))
		}
		return p.fail(storeFault("loan creation", err))
	}
	return succeed(fmt.Sprintf("Loan %s created successfully.", created.LoanID), created.LoanID)
}

// CreateCard validates, builds, and persists a card. Existence order:
// the account must exist, then the card number must be unique, then the
// CardID must be unique.
func (p *Pipeline) CreateCard(ctx context.Context, req CardRequest) Result {
	if f := validateCard(req); f != nil {
		return p.fail(f)
	}

	card := buildCard(req)

	if issues := schemadoc.Validate(card, schemadoc.Cards); len(issues) > 0 {
		return p.fail(schemaFault("Card", issues))
	}

	exists, err := p.accounts.ExistsByAccountID(ctx, card.AccountID)
	if err != nil {
		return p.fail(storeFault("card creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create card: Account %s not found.", card.AccountID)))
	}
	exists, err = p.cards.ExistsByCardNumber(ctx, card.CardNumber)
	if err != nil {
		return p.fail(storeFault("card creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create card: Card number %s already exists.", card.CardNumber)))
	}
	exists, err = p.cards.ExistsByCardID(ctx, card.CardID)
	if err != nil {
		return p.fail(storeFault("card creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create card: Card ID %s already exists.", card.CardID)))
	}

	created, err := p.cards.Create(ctx, card)
	if err != nil {
		if errors.Is(err, cardstore.ErrDuplicateCard) {
			return p.fail(conflict(fmt.Sprintf("Cannot create card: Card number %s already exists.", card.CardNumber)))
		}
		return p.fail(storeFault("card creation", err))
	}
	return succeed(fmt.Sprintf("Card %s created successfully.", created.CardID), created.CardID)
}

// CreateEmployee validates, builds, and persists an employee record.
// Existence order: the user must exist, then the EmployeeID must be unique,
// then the branch must be known.
func (p *Pipeline) CreateEmployee(ctx context.Context, req EmployeeRequest) Result {
	if f := validateEmployee(req); f != nil {
		return p.fail(f)
	}

	emp, err := buildEmployee(req)
	if err != nil {
		return p.fail(err)
	}

	if issues := schemadoc.Validate(emp, schemadoc.Employees); len(issues) > 0 {
		return p.fail(schemaFault("Employee", issues))
	}

	exists, err := p.users.ExistsByUserID(ctx, emp.UserID)
	if err != nil {
		return p.fail(storeFault("employee creation", err))
	}
	if !exists {
		return p.fail(reference(fmt.Sprintf("Cannot create employee: User %s not found.", emp.UserID)))
	}
	exists, err = p.employees.ExistsByEmployeeID(ctx, emp.EmployeeID)
	if err != nil {
		return p.fail(storeFault("employee creation", err))
	}
	if exists {
		return p.fail(conflict(fmt.Sprintf("Cannot create employee: Employee ID %s already exists.", emp.EmployeeID)))
	}
	known, err := p.employees.BranchKnown(ctx, emp.BranchID)
	if err != nil {
		return p.fail(storeFault("employee creation", err))
	}
	if !known {
		return p.fail(reference(fmt.Sprintf("Cannot create employee: Branch ID %s not found.", emp.BranchID)))
	}

	created, err := p.employees.Create(ctx, emp)
	if err != nil {
		if errors.Is(err, employeestore.ErrDuplicateEmployee) {
			return p.fail(conflict(fmt.Sprintf("Cannot create employee: Employee ID %s already exists.", emp.EmployeeID)))
		}
		return p.fail(storeFault("employee creation", err))
	}
	return succeed(fmt.Sprintf("Employee %s created successfully.", created.EmployeeID), created.EmployeeID)
}

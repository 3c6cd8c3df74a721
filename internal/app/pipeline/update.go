// internal/app/pipeline/update.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/app/system/normalize"
	"github.com/dalemusser/bankhub/internal/app/system/schemadoc"
	"github.com/dalemusser/bankhub/internal/domain/faults"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

func notFound(message string) *faults.Fault {
	return faults.New(faults.Reference, message)
}

// UpdateUser replaces a user's document. The target must exist, and the new
// Email and Username must not collide with a different user's. An empty
// Password keeps the stored hash.
func (p *Pipeline) UpdateUser(ctx context.Context, userID string, req UserRequest) Result {
	if f := validateUser(req, false); f != nil {
		return p.fail(f)
	}

	current, err := p.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("User with ID %s not found.", userID)))
		}
		return p.fail(storeFault("user update", err))
	}

	email := normalize.Email(req.Email)
	taken, err := p.users.EmailExistsForOther(ctx, email, userID)
	if err != nil {
		return p.fail(storeFault("user update", err))
	}
	if taken {
		return p.fail(conflict(fmt.Sprintf("Email '%s' already exists for another user. Please choose a different email.", email)))
	}

	username := normalize.Name(req.Username)
	taken, err = p.users.UsernameExistsForOther(ctx, username, userID)
	if err != nil {
		return p.fail(storeFault("user update", err))
	}
	if taken {
		return p.fail(conflict(fmt.Sprintf("Username '%s' already exists for another user. Please choose a different username.", username)))
	}

	hash := current.PasswordHash
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return p.fail(storeFault("user update", err))
		}
		hash = string(hashed)
	}

	req.UserID = userID
	user := buildUser(req, hash)

	if issues := schemadoc.Validate(user, schemadoc.Users); len(issues) > 0 {
		return p.fail(schemaFault("User", issues))
	}

	if err := p.users.Update(ctx, userID, user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("User with ID %s not found.", userID)))
		}
		return p.fail(storeFault("user update", err))
	}
	return succeed("User updated successfully.", userID)
}

// UpdateAccountBalance replaces a single account's balance with a new
// normalized amount.
func (p *Pipeline) UpdateAccountBalance(ctx context.Context, accountID, amount string) Result {
	d, err := inputval.ParseMoney(amount)
	if err != nil {
		return p.fail(invalid("Error: Invalid amount format. Expected a number."))
	}
	normalized := normalize.Money(d)

	balance, err := money(normalized)
	if err != nil {
		return p.fail(err)
	}

	exists, err := p.accounts.ExistsByAccountID(ctx, accountID)
	if err != nil {
		return p.fail(storeFault("balance update", err))
	}
	if !exists {
		return p.fail(notFound(fmt.Sprintf("Account with ID %s does not exist.", accountID)))
	}

	if err := p.accounts.UpdateBalance(ctx, accountID, balance); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Account with ID %s does not exist.", accountID)))
		}
		return p.fail(storeFault("balance update", err))
	}
	return succeed(fmt.Sprintf("Balance for account %s updated successfully to %s.", accountID, normalized), accountID)
}

// CloseAccount marks an account closed. Closing is terminal: a closed
// account cannot be closed again or reactivated.
func (p *Pipeline) CloseAccount(ctx context.Context, accountID string) Result {
	acct, err := p.accounts.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Account with ID %s does not exist.", accountID)))
		}
		return p.fail(storeFault("account closure", err))
	}
	if !models.CanCloseAccount(acct.Status) {
		return p.fail(invalid(fmt.Sprintf("Account %s cannot be closed from status '%s'.", accountID, acct.Status)))
	}

	if err := p.accounts.UpdateStatus(ctx, accountID, models.AccountClosed); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Account with ID %s does not exist.", accountID)))
		}
		return p.fail(storeFault("account closure", err))
	}
	return succeed(fmt.Sprintf("Account %s has been successfully closed.", accountID), accountID)
}

// UpdateTransactionStatus replaces a transaction's status value.
func (p *Pipeline) UpdateTransactionStatus(ctx context.Context, txID, newStatus string) Result {
	if strings.TrimSpace(newStatus) == "" {
		return p.fail(invalid("Error: New status cannot be empty."))
	}
	status := normalize.Status(newStatus)

	exists, err := p.transactions.ExistsByTransactionID(ctx, txID)
	if err != nil {
		return p.fail(storeFault("transaction status update", err))
	}
	if !exists {
		return p.fail(notFound(fmt.Sprintf("Transaction with ID %s does not exist.", txID)))
	}

	if err := p.transactions.UpdateStatus(ctx, txID, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Transaction with ID %s does not exist.", txID)))
		}
		return p.fail(storeFault("transaction status update", err))
	}
	return succeed(fmt.Sprintf("Transaction %s status updated to %s.", txID, status), txID)
}

// ApproveLoan moves a loan to approved. Re-approving an approved loan is
// legal; approving a paid loan is not.
func (p *Pipeline) ApproveLoan(ctx context.Context, loanID string) Result {
	loan, err := p.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Loan with ID %s does not exist.", loanID)))
		}
		return p.fail(storeFault("loan approval", err))
	}
	if !models.CanApproveLoan(loan.Status) {
		return p.fail(invalid(fmt.Sprintf("Loan %s cannot be approved from status '%s'.", loanID, loan.Status)))
	}

	if err := p.loans.UpdateStatus(ctx, loanID, models.LoanApproved); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Loan with ID %s does not exist.", loanID)))
		}
		return p.fail(storeFault("loan approval", err))
	}
	return succeed(fmt.Sprintf("Loan %s has been successfully approved.", loanID), loanID)
}

// BlockCard marks a card blocked. Blocking is terminal: no unblock
// operation exists.
func (p *Pipeline) BlockCard(ctx context.Context, cardID string) Result {
	card, err := p.cards.GetByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Card %s not found.", cardID)))
		}
		return p.fail(storeFault("card block", err))
	}
	if !models.CanBlockCard(card.Status) {
		return p.fail(invalid(fmt.Sprintf("Card %s cannot be blocked from status '%s'.", cardID, card.Status)))
	}

	if err := p.cards.UpdateStatus(ctx, cardID, models.CardBlocked); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Card %s not found.", cardID)))
		}
		return p.fail(storeFault("card block", err))
	}
	return succeed(fmt.Sprintf("Card %s has been blocked.", cardID), cardID)
}

// UpdateEmployee replaces an employee's position and salary.
func (p *Pipeline) UpdateEmployee(ctx context.Context, employeeID, newPosition, newSalary string) Result {
	if strings.TrimSpace(employeeID) == "" || strings.TrimSpace(newPosition) == "" {
		return p.fail(invalid("Error: Invalid input: employee_id and new_position are required."))
	}
	d, err := inputval.ParseMoney(newSalary)
	if err != nil {
		return p.fail(invalid("Error: Invalid new_salary format. Expected a number."))
	}
	if !d.IsPositive() {
		return p.fail(invalid("Error: new_salary must be positive."))
	}
	salary, err := money(newSalary)
	if err != nil {
		return p.fail(err)
	}

	if err := p.employees.Update(ctx, employeeID, normalize.Text(newPosition), salary); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return p.fail(notFound(fmt.Sprintf("Could not update: Employee %s not found.", employeeID)))
		}
		return p.fail(storeFault("employee update", err))
	}
	return succeed(fmt.Sprintf("Employee %s position and salary updated successfully.", employeeID), employeeID)
}

// internal/domain/models/status.go
package models

// Entity status values.
const (
	AccountActive = "active"
	AccountClosed = "closed"

	LoanRequested = "requested"
	LoanApproved  = "approved"
	LoanPaid      = "paid"

	CardActive   = "active"
	CardInactive = "inactive"
	CardBlocked  = "blocked"
	CardExpired  = "expired"

	TransactionCompleted = "completed"
)

// AccountTypes are the allowed values for Account.AccountType.
var AccountTypes = []string{"checking", "savings", "business"}

// UserRoles are the allowed values for User.Role.
var UserRoles = []string{"customer", "employee"}

// CardStatuses are the allowed values for Card.Status.
// "expired" is accepted on input for compatibility but is normally computed
// from ExpiryDate at read time.
var CardStatuses = []string{CardActive, CardInactive, CardBlocked, CardExpired}

// accountTransitions lists the legal status transitions for accounts.
// "closed" is terminal; there is no reactivation.
var accountTransitions = map[string][]string{
	AccountActive: {AccountClosed},
}

// loanTransitions lists the legal status transitions for loans.
// Re-approving an approved loan is deliberately legal: the pipeline keeps
// the original system's permissiveness for repeated approvals. "paid" is
// reachable only by out-of-band data and is terminal here.
var loanTransitions = map[string][]string{
	LoanRequested: {LoanApproved},
	LoanApproved:  {LoanApproved},
}

// cardTransitions lists the legal status transitions for cards.
// "blocked" is terminal; no unblock operation exists.
var cardTransitions = map[string][]string{
	CardActive:   {CardBlocked, CardInactive},
	CardInactive: {CardBlocked, CardActive},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCloseAccount reports whether an account in the given status may be closed.
func CanCloseAccount(from string) bool {
	return canTransition(accountTransitions, from, AccountClosed)
}

// CanApproveLoan reports whether a loan in the given status may be approved.
func CanApproveLoan(from string) bool {
	return canTransition(loanTransitions, from, LoanApproved)
}

// CanBlockCard reports whether a card in the given status may be blocked.
func CanBlockCard(from string) bool {
	return canTransition(cardTransitions, from, CardBlocked)
}

// IsValidRole checks a User role value.
func IsValidRole(role string) bool { return contains(UserRoles, role) }

// IsValidAccountType checks an Account type value.
func IsValidAccountType(t string) bool { return contains(AccountTypes, t) }

// IsValidCardStatus checks a Card status value.
func IsValidCardStatus(s string) bool { return contains(CardStatuses, s) }

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

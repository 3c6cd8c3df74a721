// internal/app/pipeline/validate.go
package pipeline

import (
	"strings"

	"github.com/dalemusser/bankhub/internal/app/system/inputval"
	"github.com/dalemusser/bankhub/internal/domain/faults"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// Per-entity field validators. Each returns the first failing rule as a
// Validation fault, checking missing fields first and then formats in a
// fixed order. All of them are pure: no store access, no mutation.

func invalid(message string) *faults.Fault {
	return faults.New(faults.Validation, message)
}

func missingFields(entity string, missing []string) *faults.Fault {
	return invalid("Error: Missing required " + entity + " fields: " + strings.Join(missing, ", "))
}

// validateUser checks a user request. requirePassword is false on updates,
// where an empty Password means "keep the stored hash".
func validateUser(req UserRequest, requirePassword bool) *faults.Fault {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "FullName")
	}
	if req.Email == "" {
		missing = append(missing, "Email")
	}
	if req.Phone == "" {
		missing = append(missing, "Phone")
	}
	if req.Role == "" {
		missing = append(missing, "Role")
	}
	if req.Username == "" {
		missing = append(missing, "Username")
	}
	if requirePassword && req.Password == "" {
		missing = append(missing, "Password")
	}
	if len(missing) > 0 {
		return missingFields("user", missing)
	}

	if req.Address.Country == "" || req.Address.City == "" || req.Address.Street == "" {
		return invalid("Error: Missing or incomplete Address fields (Country, City, Street required)")
	}
	if !inputval.IsLettersAndSpaces(req.Address.Country) {
		return invalid("Error: Country must only contain letters and spaces")
	}
	if !inputval.IsLettersAndSpaces(req.Address.City) {
		return invalid("Error: City must only contain letters and spaces")
	}
	if inputval.IsAllDigits(req.Address.Street) {
		return invalid("Error: Street cannot contain only digits")
	}

	if strings.TrimSpace(req.FullName) == "" || inputval.IsAllDigits(req.FullName) {
		return invalid("Error: FullName must be a non-empty string and not only digits")
	}
	if !inputval.IsValidEmail(req.Email) {
		return invalid("Error: Invalid email format")
	}
	if !inputval.IsValidPhone(req.Phone) {
		return invalid("Error: Invalid phone number format")
	}
	if !models.IsValidRole(req.Role) {
		return invalid("Error: Role must be 'customer' or 'employee'")
	}
	if strings.TrimSpace(req.Username) == "" {
		return invalid("Error: Username must be a non-empty string")
	}
	if requirePassword && strings.TrimSpace(req.Password) == "" {
		return invalid("Error: Password must be a non-empty string")
	}
	return nil
}

func validateAccount(req AccountRequest) *faults.Fault {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "UserID")
	}
	if req.AccountType == "" {
		missing = append(missing, "AccountType")
	}
	if req.Balance == "" {
		missing = append(missing, "Balance")
	}
	if req.Currency == "" {
		missing = append(missing, "Currency")
	}
	if len(missing) > 0 {
		return missingFields("account", missing)
	}

	if !models.IsValidAccountType(strings.ToLower(req.AccountType)) {
		return invalid("Error: AccountType must be one of ['checking', 'savings', 'business'].")
	}
	if _, err := inputval.ParseMoney(req.Balance); err != nil {
		return invalid("Error: Invalid Balance format. Expected a numeric value.")
	}
	if !inputval.IsValidCurrency(req.Currency) {
		return invalid("Error: Currency must be a 3-letter ISO code string (e.g., 'USD').")
	}
	if req.OpenDate != "" {
		if _, err := inputval.ParseDate(req.OpenDate); err != nil {
			return invalid("Error: Invalid OpenDate format. Expected YYYY-MM-DD.")
		}
	}
	return nil
}

func validateTransaction(req TransactionRequest) *faults.Fault {
	var missing []string
	if req.FromAccountID == "" {
		missing = append(missing, "FromAccountID")
	}
	if req.ToAccountID == "" {
		missing = append(missing, "ToAccountID")
	}
	if req.Amount == "" {
		missing = append(missing, "Amount")
	}
	if req.Type == "" {
		missing = append(missing, "Type")
	}
	if len(missing) > 0 {
		return missingFields("transaction", missing)
	}

	if strings.TrimSpace(req.FromAccountID) == "" || strings.TrimSpace(req.ToAccountID) == "" {
		return invalid("Error: FromAccountID and ToAccountID must be non-empty strings.")
	}
	if _, err := inputval.ParseMoney(req.Amount); err != nil {
		return invalid("Error: Invalid Amount format. Expected a numeric value.")
	}
	if req.Date != "" {
		if _, err := inputval.ParseTimestamp(req.Date); err != nil {
			return invalid("Error: Invalid Timestamp format. Expected ISO 8601 format.")
		}
	}
	return nil
}

func validateLoan(req LoanRequest) *faults.Fault {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "UserID")
	}
	if req.LoanAmount == "" {
		missing = append(missing, "LoanAmount")
	}
	if req.InterestRate == "" {
		missing = append(missing, "InterestRate")
	}
	if req.Duration == 0 {
		missing = append(missing, "Duration")
	}
	if len(missing) > 0 {
		return missingFields("loan", missing)
	}

	if _, err := inputval.ParseMoney(req.LoanAmount); err != nil {
		return invalid("Error: Invalid Amount or InterestRate format. Expected a number.")
	}
	rate, err := inputval.ParseMoney(req.InterestRate)
	if err != nil {
		return invalid("Error: Invalid Amount or InterestRate format. Expected a number.")
	}
	if !rate.IsPositive() {
		return invalid("Error: InterestRate must be a positive number.")
	}
	if req.StartDate != "" {
		if _, err := inputval.ParseDate(req.StartDate); err != nil {
			return invalid("Error: Invalid StartDate format. Expected YYYY-MM-DD.")
		}
	}
	return nil
}

func validateCard(req CardRequest) *faults.Fault {
	var missing []string
	if req.AccountID == "" {
		missing = append(missing, "AccountID")
	}
	if req.CardType == "" {
		missing = append(missing, "CardType")
	}
	if req.CardNumber == "" {
		missing = append(missing, "CardNumber")
	}
	if req.CVV == "" {
		missing = append(missing, "CVV")
	}
	if req.ExpiryDate == "" {
		missing = append(missing, "ExpiryDate")
	}
	if len(missing) > 0 {
		return missingFields("card", missing)
	}

	if !inputval.IsValidCVV(req.CVV) {
		return invalid("Error: Invalid CVV. Must be a 3 or 4-digit number.")
	}
	if !inputval.IsValidCardNumber(req.CardNumber) {
		return invalid("Error: Invalid CardNumber. Must be 12-19 digits, optionally separated by dashes ('-').")
	}
	if _, err := inputval.ParseDate(req.ExpiryDate); err != nil {
		return invalid("Error: Invalid ExpiryDate format. Expected YYYY-MM-DD.")
	}
	if req.Status != "" && !models.IsValidCardStatus(strings.ToLower(req.Status)) {
		return invalid("Error: Status must be one of ['active', 'inactive', 'blocked', 'expired'].")
	}
	return nil
}

func validateEmployee(req EmployeeRequest) *faults.Fault {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "UserID")
	}
	if req.Position == "" {
		missing = append(missing, "Position")
	}
	if req.BranchID == "" {
		missing = append(missing, "BranchID")
	}
	if req.Salary == "" {
		missing = append(missing, "Salary")
	}
	if len(missing) > 0 {
		return missingFields("employee", missing)
	}

	if strings.TrimSpace(req.Position) == "" {
		return invalid("Error: Invalid Position format. Expected a non-empty string.")
	}
	if _, err := inputval.ParseMoney(req.Salary); err != nil {
		return invalid("Error: Invalid Salary format. Expected a number.")
	}
	if req.HireDate != "" {
		if _, err := inputval.ParseDate(req.HireDate); err != nil {
			return invalid("Error: Invalid HireDate format. Expected YYYY-MM-DD.")
		}
	}
	return nil
}

// internal/app/pipeline/requests.go
package pipeline

// Request structs carry raw caller input into the pipeline. Monetary values
// arrive as strings and are parsed as exact decimals during validation;
// identifiers left empty are generated by the entity builder. A zero value
// means the field was not supplied.

// AddressRequest is the nested address of a UserRequest.
type AddressRequest struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
}

// UserRequest is the input for creating or replacing a user. Password is
// the plaintext credential; it is hashed before anything is stored. On
// update an empty Password keeps the stored hash.
type UserRequest struct {
	UserID   string         `json:"user_id,omitempty"`
	FullName string         `json:"full_name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Address  AddressRequest `json:"address"`
	Role     string         `json:"role"`
	Username string         `json:"username"`
	Password string         `json:"password"`
}

// AccountRequest is the input for opening an account.
type AccountRequest struct {
	AccountID   string `json:"account_id,omitempty"`
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
	Status      string `json:"status,omitempty"`
	OpenDate    string `json:"open_date,omitempty"`
}

// TransactionRequest is the input for recording a transfer.
type TransactionRequest struct {
	TransactionID string `json:"transaction_id,omitempty"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Date          string `json:"date,omitempty"`
	Type          string `json:"type"`
	Status        string `json:"status,omitempty"`
}

// LoanRequest is the input for requesting a loan. Duration is in months; a
// zero Duration counts as missing.
type LoanRequest struct {
	LoanID       string `json:"loan_id,omitempty"`
	UserID       string `json:"user_id"`
	LoanAmount   string `json:"loan_amount"`
	InterestRate string `json:"interest_rate"`
	StartDate    string `json:"start_date,omitempty"`
	Duration     int    `json:"duration"`
	Status       string `json:"status,omitempty"`
}

// CardRequest is the input for issuing a card.
type CardRequest struct {
	CardID     string `json:"card_id,omitempty"`
	AccountID  string `json:"account_id"`
	CardType   string `json:"card_type"`
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	ExpiryDate string `json:"expiry_date"`
	Status     string `json:"status,omitempty"`
}

// EmployeeRequest is the input for registering an employee.
type EmployeeRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	UserID     string `json:"user_id"`
	Position   string `json:"position"`
	BranchID   string `json:"branch_id"`
	HireDate   string `json:"hire_date,omitempty"`
	Salary     string `json:"salary"`
}

// internal/app/system/schemadoc/schemas.go
package schemadoc

// bookkeeping elements every persisted document carries
var common = []string{"_id", "created_at", "updated_at"}

// Users is the structural schema for User documents.
var Users = Schema{
	Root:    "Users",
	Element: "User",
	Required: []Field{
		{Name: "user_id"},
		{Name: "full_name"},
		{Name: "email"},
		{Name: "phone"},
		{Name: "address", Children: &Schema{
			Required: []Field{
				{Name: "country"},
				{Name: "city"},
				{Name: "street"},
			},
		}},
		{Name: "role"},
		{Name: "username"},
		{Name: "password_hash"},
	},
	Optional: append([]string{"full_name_ci"}, common...),
}

// Accounts is the structural schema for Account documents.
var Accounts = Schema{
	Root:    "Accounts",
	Element: "Account",
	Required: []Field{
		{Name: "account_id"},
		{Name: "user_id"},
		{Name: "account_type"},
		{Name: "balance"},
		{Name: "currency"},
		{Name: "status"},
		{Name: "open_date"},
	},
	Optional: common,
}

// Transactions is the structural schema for Transaction documents.
var Transactions = Schema{
	Root:    "Transactions",
	Element: "Transaction",
	Required: []Field{
		{Name: "transaction_id"},
		{Name: "from_account_id"},
		{Name: "to_account_id"},
		{Name: "amount"},
		{Name: "date"},
		{Name: "type"},
		{Name: "status"},
	},
	Optional: common,
}

// Loans is the structural schema for Loan documents.
var Loans = Schema{
	Root:    "Loans",
	Element: "Loan",
	Required: []Field{
		{Name: "loan_id"},
		{Name: "user_id"},
		{Name: "loan_amount"},
		{Name: "interest_rate"},
		{Name: "start_date"},
		{Name: "duration"},
		{Name: "status"},
	},
	Optional: common,
}

// Cards is the structural schema for Card documents.
var Cards = Schema{
	Root:    "Cards",
	Element: "Card",
	Required: []Field{
		{Name: "card_id"},
		{Name: "account_id"},
		{Name: "card_type"},
		{Name: "card_number"},
		{Name: "cvv"},
		{Name: "expiry_date"},
		{Name: "status"},
	},
	Optional: common,
}

// Employees is the structural schema for Employee documents.
var Employees = Schema{
	Root:    "Employees",
	Element: "Employee",
	Required: []Field{
		{Name: "employee_id"},
		{Name: "user_id"},
		{Name: "position"},
		{Name: "branch_id"},
		{Name: "hire_date"},
		{Name: "salary"},
	},
	Optional: common,
}

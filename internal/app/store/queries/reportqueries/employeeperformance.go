// internal/app/store/queries/reportqueries/employeeperformance.go
package reportqueries

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	employeestore "github.com/dalemusser/bankhub/internal/app/store/employees"
	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/domain/models"
)

// EmployeePerformance is one employee's loan metrics within a branch.
type EmployeePerformance struct {
	EmployeeID      string
	FullName        string
	Position        string
	HireDate        string
	TotalLoans      int
	ApprovedLoans   int
	TotalLoanAmount decimal.Decimal
}

// EmployeePerformanceByBranch composes per-employee loan metrics for one
// branch from sequential single-entity reads, biggest loan volume first.
// An employee whose user record is missing still appears, with an empty
// name.
func EmployeePerformanceByBranch(ctx context.Context, db *mongo.Database, branchID string) ([]EmployeePerformance, error) {
	employees := employeestore.New(db)
	users := userstore.New(db)
	loans := loanstore.New(db)

	staff, err := employees.Find(ctx, bson.M{"branch_id": branchID})
	if err != nil {
		return nil, err
	}

	results := make([]EmployeePerformance, 0, len(staff))
	for _, emp := range staff {
		row := EmployeePerformance{
			EmployeeID: emp.EmployeeID,
			Position:   emp.Position,
			HireDate:   emp.HireDate,
		}

		user, err := users.GetByUserID(ctx, emp.UserID)
		switch {
		case err == nil:
			row.FullName = user.FullName
		case errors.Is(err, mongo.ErrNoDocuments):
			// dangling user_id, keep the employee row
		default:
			return nil, err
		}

		held, err := loans.ListByUserID(ctx, emp.UserID)
		if err != nil {
			return nil, err
		}
		for _, loan := range held {
			row.TotalLoans++
			if loan.Status == models.LoanApproved {
				row.ApprovedLoans++
			}
			amount, err := decimal.NewFromString(loan.LoanAmount.String())
			if err != nil {
				continue
			}
			row.TotalLoanAmount = row.TotalLoanAmount.Add(amount)
		}

		results = append(results, row)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalLoanAmount.GreaterThan(results[j].TotalLoanAmount)
	})
	return results, nil
}

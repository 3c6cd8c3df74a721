// internal/app/store/queries/reportqueries/branchstats.go
package reportqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BranchStats is one branch's staffing summary.
type BranchStats struct {
	BranchID      string               `bson:"_id"`
	EmployeeCount int64                `bson:"employee_count"`
	TotalSalary   primitive.Decimal128 `bson:"total_salary"`
	AverageSalary primitive.Decimal128 `bson:"average_salary"`
}

// EmployeesByBranch groups the employee roster by branch with headcount and
// salary totals, largest branches first.
func EmployeesByBranch(ctx context.Context, db *mongo.Database) ([]BranchStats, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":            "$branch_id",
			"employee_count": bson.M{"$sum": 1},
			"total_salary":   bson.M{"$sum": "$salary"},
			"average_salary": bson.M{"$avg": "$salary"},
		}},
		{"$sort": bson.M{"employee_count": -1, "_id": 1}},
	}

	cur, err := db.Collection("employees").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []BranchStats
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Package pipeline implements the validation-and-mutation pipeline that
// guards every write to the six banking collections.
//
// Each create runs the same fixed sequence: field validation, domain extra
// checks, entity building, structural schema validation, store existence
// checks in a per-entity order, then the insert. The first failure aborts
// with a specific message. No error escapes a pipeline method: everything
// is caught, classified, logged, and returned as a Result.
package pipeline

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	accountstore "github.com/dalemusser/bankhub/internal/app/store/accounts"
	cardstore "github.com/dalemusser/bankhub/internal/app/store/cards"
	employeestore "github.com/dalemusser/bankhub/internal/app/store/employees"
	loanstore "github.com/dalemusser/bankhub/internal/app/store/loans"
	transactionstore "github.com/dalemusser/bankhub/internal/app/store/transactions"
	userstore "github.com/dalemusser/bankhub/internal/app/store/users"
	"github.com/dalemusser/bankhub/internal/app/system/schemadoc"
	"github.com/dalemusser/bankhub/internal/domain/faults"
)

// Result is what every pipeline operation returns to the caller. Message is
// always safe to show as-is; ID carries the generated business identifier
// on successful creates.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Pipeline orchestrates validated mutations over the six collections.
type Pipeline struct {
	users        *userstore.Store
	accounts     *accountstore.Store
	transactions *transactionstore.Store
	loans        *loanstore.Store
	cards        *cardstore.Store
	employees    *employeestore.Store
	log          *zap.Logger
}

// New wires a pipeline over the given database.
func New(db *mongo.Database, log *zap.Logger) *Pipeline {
	return &Pipeline{
		users:        userstore.New(db),
		accounts:     accountstore.New(db),
		transactions: transactionstore.New(db),
		loans:        loanstore.New(db),
		cards:        cardstore.New(db),
		employees:    employeestore.New(db),
		log:          log,
	}
}

// fail converts a fault into a failure Result. Store faults get their cause
// logged; the caller only ever sees the fault's message.
func (p *Pipeline) fail(err error) Result {
	if faults.KindOf(err) == faults.Store {
		p.log.Error("pipeline store fault", zap.Error(err))
	} else {
		p.log.Debug("pipeline rejected mutation", zap.String("reason", err.Error()))
	}
	return Result{OK: false, Message: err.Error()}
}

func succeed(message, id string) Result {
	return Result{OK: true, Message: message, ID: id}
}

// schemaFault renders bounded structural issues into one schema fault, e.g.
// "Validation failed: User data does not conform to schema. Details:
// Users.User.email: missing required element".
func schemaFault(entity string, issues []schemadoc.Issue) *faults.Fault {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return faults.New(faults.Schema,
		"Validation failed: "+entity+" data does not conform to schema. Details: "+strings.Join(parts, "; "))
}

// Package identifier generates business identifiers of the form
// {PREFIX}-{8 uppercase hex}, e.g. USER-3FA2B91C.
//
// The 8 hex digits come from a random UUID, so collisions are negligible
// but not impossible; uniqueness is enforced by the mutation pipeline's
// existence checks and the store's unique indexes, not by this generator.
package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// Entity prefixes.
const (
	UserPrefix        = "USER"
	AccountPrefix     = "ACC"
	TransactionPrefix = "TX"
	LoanPrefix        = "LOAN"
	CardPrefix        = "CARD"
	EmployeePrefix    = "EMP"
)

// New returns a fresh identifier for the given prefix.
func New(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(hex[:8])
}

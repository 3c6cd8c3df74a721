// internal/app/features/statements/xlsx.go
package statements

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

// HandleXLSX handles GET /statements/accounts/{accountID}/statement.xlsx.
func (h *Handler) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, err := h.load(ctx, accountID, r)
	if err != nil {
		h.writeLoadError(w, accountID, err)
		return
	}

	file, err := renderXLSX(st)
	if err != nil {
		h.Log.Error("xlsx statement render failed",
			zap.String("account_id", accountID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "statement failed")
		return
	}

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="statement-%s-%s.xlsx"`, st.Account.AccountID, st.To))
	if err := file.Write(w); err != nil {
		h.Log.Error("xlsx statement write failed",
			zap.String("account_id", accountID), zap.Error(err))
	}
}

func renderXLSX(st statement) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, err
	}
	addPair := func(key, value string) {
		row := summary.AddRow()
		row.AddCell().SetString(key)
		row.AddCell().SetString(value)
	}
	addPair("Account", st.Account.AccountID)
	addPair("Type", st.Account.AccountType)
	addPair("Currency", st.Account.Currency)
	addPair("Holder", st.Holder.FullName)
	addPair("Period", st.From+" to "+st.To)
	addPair("Closing balance", st.Account.Balance.String())
	addPair("Generated", st.GeneratedAt.Format(time.RFC3339))

	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		return nil, err
	}
	header := sheet.AddRow()
	for _, col := range []string{"Date", "Transaction", "From", "To", "Type", "Direction", "Status", "Amount"} {
		header.AddCell().SetString(col)
	}
	for _, tx := range st.Transactions {
		row := sheet.AddRow()
		row.AddCell().SetString(tx.Date)
		row.AddCell().SetString(tx.TransactionID)
		row.AddCell().SetString(tx.FromAccountID)
		row.AddCell().SetString(tx.ToAccountID)
		row.AddCell().SetString(tx.Type)
		row.AddCell().SetString(direction(tx, st.Account.AccountID))
		row.AddCell().SetString(tx.Status)
		row.AddCell().SetString(tx.Amount.String())
	}

	return file, nil
}

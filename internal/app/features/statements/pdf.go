// internal/app/features/statements/pdf.go
package statements

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/bankhub/internal/app/system/httpjson"
	"github.com/dalemusser/bankhub/internal/app/system/timeouts"
)

// HandlePDF handles GET /statements/accounts/{accountID}/statement.pdf.
func (h *Handler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	st, err := h.load(ctx, accountID, r)
	if err != nil {
		h.writeLoadError(w, accountID, err)
		return
	}

	pdf := renderPDF(st)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="statement-%s-%s.pdf"`, st.Account.AccountID, st.To))
	if err := pdf.Output(w); err != nil {
		h.Log.Error("pdf statement render failed",
			zap.String("account_id", accountID), zap.Error(err))
	}
}

func renderPDF(st statement) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Account Statement "+st.Account.AccountID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s (%s, %s)",
		st.Account.AccountID, st.Account.AccountType, st.Account.Currency))
	pdf.Ln(6)
	if st.Holder.FullName != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Holder: %s <%s>", st.Holder.FullName, st.Holder.Email))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", st.From, st.To))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Closing balance: %s %s",
		st.Account.Balance.String(), st.Account.Currency))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+st.GeneratedAt.Format(time.RFC3339))
	pdf.Ln(10)

	// table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(40, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(42, 7, "Transaction", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Counterparty", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(16, 7, "Dir", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, tx := range st.Transactions {
		counterparty := tx.ToAccountID
		if direction(tx, st.Account.AccountID) == "credit" {
			counterparty = tx.FromAccountID
		}
		pdf.CellFormat(40, 6, tx.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(42, 6, tx.TransactionID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, counterparty, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, tx.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(16, 6, direction(tx, st.Account.AccountID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tx.Amount.String(), "1", 1, "R", false, 0, "")
	}
	if len(st.Transactions) == 0 {
		pdf.CellFormat(178, 6, "No transactions in this period.", "1", 1, "L", false, 0, "")
	}

	return pdf
}

func (h *Handler) writeLoadError(w http.ResponseWriter, accountID string, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "account not found")
		return
	}
	if errors.Is(err, errBadDateParam) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Log.Error("statement load failed", zap.String("account_id", accountID), zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "statement failed")
}

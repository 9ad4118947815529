package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDetail is one loan's share of a receipt as sent to generateReceipt.
type ReceiptDetail struct {
	LoanID             string
	Amount             decimal.Decimal
	ServingTransAmount decimal.Decimal
	AccountNo          string
}

// PaymentBatch is built at submission time, consumed once, never stored.
type PaymentBatch struct {
	BranchID     string
	CollectDate  time.Time
	EnteredTotal decimal.Decimal
	Lines        []ReceiptDetail
	UserBranchID string
}

// NewPaymentBatch collects the lines carrying a pay amount, in ledger order.
func NewPaymentBatch(sel SelectionContext, enteredTotal decimal.Decimal, lines []LoanReceiptLine) PaymentBatch {
	details := make([]ReceiptDetail, 0, len(lines))
	for _, l := range lines {
		if !l.HasPayment() {
			continue
		}
		details = append(details, ReceiptDetail{
			LoanID:             l.LoanID,
			Amount:             *l.PayAmount,
			ServingTransAmount: decimal.Zero,
			AccountNo:          "",
		})
	}
	return PaymentBatch{
		BranchID:     sel.BranchID,
		CollectDate:  sel.CollectDate,
		EnteredTotal: enteredTotal,
		Lines:        details,
		UserBranchID: sel.UserBranchID,
	}
}

// PaymentTotal sums the detail amounts.
func (b PaymentBatch) PaymentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range b.Lines {
		total = total.Add(d.Amount)
	}
	return total
}

// ReceiptSubmissionResult is the terminal outcome of a successful submission.
type ReceiptSubmissionResult struct {
	ReceiptNo    string `json:"receiptNo"`
	Message      string `json:"message"`
	Refreshed    bool   `json:"refreshed"`
	RefreshError string `json:"refreshError,omitempty"`
}

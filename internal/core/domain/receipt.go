package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptRecord is a persisted receipt line as listed by GetReceiptDetails.
type ReceiptRecord struct {
	ReceiptID  string          `json:"receiptId"`
	ReceiptNo  string          `json:"receiptNo"`
	LoanNo     string          `json:"loanNo"`
	CenterName string          `json:"centerName"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	LogDate    time.Time       `json:"logDate"`
}

// CashSummaryRow is one branch/cashier row of the daily cash summary.
type CashSummaryRow struct {
	Branch         string          `json:"branch"`
	UserName       string          `json:"userName"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	LeaseCashIn    decimal.Decimal `json:"leaseCashIn"`
	MFCashIn       decimal.Decimal `json:"mfCashIn"`
	GLCashIn       decimal.Decimal `json:"glCashIn"`
	CashBank       decimal.Decimal `json:"cashBank"`
	CashCollection decimal.Decimal `json:"cashCollection"` // cash in hand
}

// CashSummary is the list of rows for one day plus their column totals.
type CashSummary struct {
	Date   time.Time        `json:"date"`
	Rows   []CashSummaryRow `json:"rows"`
	Totals CashSummaryRow   `json:"totals"`
}

// NewCashSummary computes the totals row.
func NewCashSummary(date time.Time, rows []CashSummaryRow) CashSummary {
	totals := CashSummaryRow{Branch: "Total"}
	for _, r := range rows {
		totals.OpeningBalance = totals.OpeningBalance.Add(r.OpeningBalance)
		totals.LeaseCashIn = totals.LeaseCashIn.Add(r.LeaseCashIn)
		totals.MFCashIn = totals.MFCashIn.Add(r.MFCashIn)
		totals.GLCashIn = totals.GLCashIn.Add(r.GLCashIn)
		totals.CashBank = totals.CashBank.Add(r.CashBank)
		totals.CashCollection = totals.CashCollection.Add(r.CashCollection)
	}
	if rows == nil {
		rows = []CashSummaryRow{}
	}
	return CashSummary{Date: date, Rows: rows, Totals: totals}
}

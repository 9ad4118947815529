package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanReceiptLine is one outstanding loan at a collection point.
// Everything except PayAmount is server supplied and read-only.
type LoanReceiptLine struct {
	LoanID       string           `json:"loanId"`
	LoanNo       string           `json:"loanNo"`
	ClientName   string           `json:"clientName"`
	GroupName    string           `json:"groupName"`
	LoanAmount   decimal.Decimal  `json:"loanAmount"`
	RentalAmount decimal.Decimal  `json:"rentalAmount"`
	TotalDue     decimal.Decimal  `json:"totalDue"`
	PayAmount    *decimal.Decimal `json:"payAmount,omitempty"` // nil means not paid this session
}

// HasPayment reports whether the cashier entered an amount for the line.
func (l LoanReceiptLine) HasPayment() bool {
	return l.PayAmount != nil
}

// RemainingDue is TotalDue less the entered amount, floored at zero.
func (l LoanReceiptLine) RemainingDue() decimal.Decimal {
	if l.PayAmount == nil {
		return l.TotalDue
	}
	return decimal.Max(l.TotalDue.Sub(*l.PayAmount), decimal.Zero)
}

// Matches is a case-insensitive search on loan number, client and group name.
func (l LoanReceiptLine) Matches(search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.LoanNo), search) ||
		strings.Contains(strings.ToLower(l.ClientName), search) ||
		strings.Contains(strings.ToLower(l.GroupName), search)
}

// LedgerSnapshot is the ordered line list for one selection. Order is the backend's.
type LedgerSnapshot struct {
	Lines    []LoanReceiptLine `json:"lines"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// SelectionContext is what the selection form hands to the ledger and the submission.
type SelectionContext struct {
	CashierBranchID string    `json:"cashierBranchId,omitempty"`
	BranchID        string    `json:"branchId"`
	CenterID        string    `json:"centerId"`
	GroupID         string    `json:"groupId,omitempty"`
	CollectDate     time.Time `json:"collectDate"`
	Search          string    `json:"search,omitempty"`
	UserBranchID    string    `json:"userBranchId"`
}

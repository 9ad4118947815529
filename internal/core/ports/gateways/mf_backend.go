package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

// AuthGateway covers the MF backend session endpoints.
type AuthGateway interface {
	// Login authenticates the cashier and captures the session cookie.
	Login(ctx context.Context, username, password string) (*domain.LoginResult, error)

	// Logout ends the session carried by ctx.
	Logout(ctx context.Context) error

	// IsAuthenticated checks the session carried by ctx.
	IsAuthenticated(ctx context.Context) (bool, error)
}

// ReferenceDataGateway serves the dropdown lists.
type ReferenceDataGateway interface {
	ListCashierBranches(ctx context.Context) ([]domain.LookupItem, error)
	ListLoanBranches(ctx context.Context) ([]domain.LookupItem, error)
	ListBranchCenters(ctx context.Context, branchID string) ([]domain.LookupItem, error)
	ListCenterGroups(ctx context.Context, centerID string) ([]domain.LookupItem, error)
}

// LoanGateway serves the outstanding loan lines for a collection point.
type LoanGateway interface {
	GetLoanDetails(ctx context.Context, centerID, groupID string) ([]domain.LoanReceiptLine, error)
}

// ReceiptGateway persists and lists receipts.
type ReceiptGateway interface {
	// GenerateReceipt posts the batch and returns the server-issued receipt number.
	GenerateReceipt(ctx context.Context, batch domain.PaymentBatch) (string, error)

	GetReceiptDetails(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error)

	// CancelReceipt returns the backend's confirmation text.
	CancelReceipt(ctx context.Context, receiptID, reason string) (string, error)
}

// CashSummaryGateway serves the cashier cash summary.
type CashSummaryGateway interface {
	GetCashierCashSummary(ctx context.Context, summaryDate time.Time) ([]domain.CashSummaryRow, error)
}

// MFBackend combines every MF backend gateway.
type MFBackend interface {
	AuthGateway
	ReferenceDataGateway
	LoanGateway
	ReceiptGateway
	CashSummaryGateway
}

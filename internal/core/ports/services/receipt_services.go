package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

// ReferenceDataSvc resolves dropdown lists. No caching: every call hits the backend.
type ReferenceDataSvc interface {
	FetchList(ctx context.Context, kind domain.LookupKind, filter string) ([]domain.LookupItem, error)
}

// CancelReceiptRequest carries the receipt to cancel and why.
type CancelReceiptRequest struct {
	ReceiptID string `json:"receiptId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// ReceiptHistorySvc lists and cancels persisted receipts.
type ReceiptHistorySvc interface {
	ListReceipts(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error)
	CancelReceipt(ctx context.Context, req CancelReceiptRequest) (string, error)
}

// CashSummarySvc serves the cashier cash summary sheet.
type CashSummarySvc interface {
	GetSummary(ctx context.Context, summaryDate time.Time) (*domain.CashSummary, error)

	// ExportXLSX writes the summary as a spreadsheet to w.
	ExportXLSX(ctx context.Context, summaryDate time.Time, w io.Writer) error
}

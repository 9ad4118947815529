package dto

import "github.com/SscSPs/mf_receipt_desk/internal/core/domain"

// ListReceiptsQuery selects the receipts of one center and day.
type ListReceiptsQuery struct {
	CenterID string `form:"centerId"`
	Date     string `form:"date"`
}

// CancelReceiptRequest cancels a receipt.
type CancelReceiptRequest struct {
	ReceiptID string `json:"receiptId" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

// DateQuery carries an optional YYYY-MM-DD date.
type DateQuery struct {
	Date string `form:"date"`
}

// LookupQuery scopes and searches a lookup list.
type LookupQuery struct {
	Filter string `form:"filter"`
	Search string `form:"search"`
}

// LookupListResponse is a dropdown list.
type LookupListResponse struct {
	Kind  domain.LookupKind   `json:"kind"`
	Items []domain.LookupItem `json:"items"`
}

// ReceiptListResponse lists receipts for a center and day.
type ReceiptListResponse struct {
	CenterID string                 `json:"centerId"`
	Date     string                 `json:"date"`
	Receipts []domain.ReceiptRecord `json:"receipts"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}


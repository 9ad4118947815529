package dto

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
)

// AmountInput accepts an amount sent either as a JSON string or a JSON number.
type AmountInput string

// UnmarshalJSON keeps the literal text of numbers so no precision is lost.
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

// OpenDeskRequest opens a desk. UserBranchID defaults to the branch stored at login.
type OpenDeskRequest struct {
	UserBranchID string `json:"userBranchId"`
}

// UpdateSelectionRequest sets selection form fields by name
// (cashierBranch, loanBranch, center, group, date, search).
type UpdateSelectionRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// SetPaymentRequest enters the pay amount for one loan line.
type SetPaymentRequest struct {
	Amount AmountInput `json:"amount"`
}

// SubmitReceiptRequest posts the ledger. The accept flags answer the
// confirmation prompts returned by a previous attempt.
type SubmitReceiptRequest struct {
	EnteredTotal     AmountInput `json:"enteredTotal"`
	AcceptNoPayments bool        `json:"acceptNoPayments"`
	AcceptMismatch   bool        `json:"acceptMismatch"`
}

// Confirmer answers prompts from the accept flags.
func (r SubmitReceiptRequest) Confirmer() portssvc.Confirmer {
	return portssvc.ConfirmerFunc(func(_ context.Context, p domain.ConfirmationPrompt) bool {
		switch p.Kind {
		case domain.PromptNoPayments:
			return r.AcceptNoPayments
		case domain.PromptMismatch:
			return r.AcceptMismatch
		}
		return false
	})
}

// PromptResponse is the 409 body of a submission that needs confirmation.
type PromptResponse struct {
	Error  string                    `json:"error"`
	Prompt domain.ConfirmationPrompt `json:"prompt"`
}

package services

import (
	"context"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

// Confirmer answers the submission engine's confirmation prompts.
// Returning false aborts the submission with no state change.
type Confirmer interface {
	Confirm(ctx context.Context, prompt domain.ConfirmationPrompt) bool
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt domain.ConfirmationPrompt) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(ctx context.Context, prompt domain.ConfirmationPrompt) bool {
	return f(ctx, prompt)
}

// DeskLifecycleSvc opens and closes cashier desks.
type DeskLifecycleSvc interface {
	// Open creates a desk for the cashier. userBranchID overrides the session's branch when set.
	Open(ctx context.Context, username, userBranchID string) (*domain.DeskView, error)

	// View returns the desk state. Desks of other users are reported as not found.
	View(ctx context.Context, deskID, username string) (*domain.DeskView, error)

	// Close discards the desk and any unsaved payment entries.
	Close(ctx context.Context, deskID, username string) error

	// CloseAll discards every desk the cashier has open.
	CloseAll(ctx context.Context, username string) int
}

// DeskSelectionSvc drives the selection form.
type DeskSelectionSvc interface {
	// UpdateSelection sets the given form fields; each edit clears that field's error.
	UpdateSelection(ctx context.Context, deskID, username string, fields map[string]string) (*domain.SelectionFormView, error)

	// SubmitSelection validates the form and loads the ledger for it.
	SubmitSelection(ctx context.Context, deskID, username string) (*domain.LedgerView, error)
}

// DeskLedgerSvc drives the loan receipt ledger.
type DeskLedgerSvc interface {
	GetLedger(ctx context.Context, deskID, username, search string) (*domain.LedgerView, error)
	SetPayment(ctx context.Context, deskID, username, loanID, amount string) (*domain.LoanReceiptLine, error)
	ClearPayment(ctx context.Context, deskID, username, loanID string) (*domain.LoanReceiptLine, error)
	RefreshLedger(ctx context.Context, deskID, username string) (*domain.LedgerView, error)
}

// DeskSubmissionSvc drives reconciliation and receipt submission.
type DeskSubmissionSvc interface {
	Submit(ctx context.Context, deskID, username, enteredTotal string, confirmer Confirmer) (*domain.ReceiptSubmissionResult, error)
}

// DeskSvcFacade combines all desk-related service interfaces.
type DeskSvcFacade interface {
	DeskLifecycleSvc
	DeskSelectionSvc
	DeskLedgerSvc
	DeskSubmissionSvc
}

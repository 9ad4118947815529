package services

import (
	"errors"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

var (
	// ErrInvalidPaymentAmount rejects a non-numeric or non-positive pay amount.
	ErrInvalidPaymentAmount = apperrors.WithKind(apperrors.ErrValidation, "Please enter a valid payment amount.")

	// ErrInvalidTotal rejects a non-numeric or non-positive entered total.
	ErrInvalidTotal = apperrors.WithKind(apperrors.ErrValidation, "Please enter a valid total amount.")

	// ErrLedgerLocked rejects ledger edits while it is refreshing or being saved.
	ErrLedgerLocked = apperrors.WithKind(apperrors.ErrConflict, "ledger is locked while it is refreshing or being saved")

	// ErrSubmissionInProgress is returned by a second Save while one is running.
	ErrSubmissionInProgress = apperrors.WithKind(apperrors.ErrConflict, "submission already in progress")

	// ErrSelectionLoading is returned by a second selection submit while its fetch runs.
	ErrSelectionLoading = apperrors.WithKind(apperrors.ErrConflict, "selection is already loading")

	// ErrNoSelection is returned by ledger operations before any selection was loaded.
	ErrNoSelection = apperrors.WithKind(apperrors.ErrValidation, "Please select a center and load its loans first.")

	// ErrSubmissionDeclined is matched by every DeclinedError.
	ErrSubmissionDeclined = errors.New("submission declined")
)

// DeclinedError reports a confirmation prompt the cashier did not accept.
type DeclinedError struct {
	Prompt domain.ConfirmationPrompt
}

func (e *DeclinedError) Error() string { return e.Prompt.Message }

func (e *DeclinedError) Is(target error) bool { return target == ErrSubmissionDeclined }

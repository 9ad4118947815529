package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormState is the selection form's state machine position.
type FormState string

const (
	FormIdle       FormState = "idle"
	FormValidating FormState = "validating"
	FormLoading    FormState = "loading"
	FormSuccess    FormState = "success"
	FormError      FormState = "error"
)

// LedgerState is the ledger's state machine position.
type LedgerState string

const (
	LedgerEmpty      LedgerState = "empty"
	LedgerReady      LedgerState = "ready"
	LedgerRefreshing LedgerState = "refreshing"
	LedgerError      LedgerState = "error"
)

// SubmissionState is the submission engine's state machine position.
type SubmissionState string

const (
	SubmissionIdle   SubmissionState = "idle"
	SubmissionSaving SubmissionState = "saving"
)

// Selection form field names.
const (
	FieldCashierBranch = "cashierBranch"
	FieldLoanBranch    = "loanBranch"
	FieldCenter        = "center"
	FieldGroup         = "group"
	FieldDate          = "date"
	FieldSearch        = "search"
)

// SelectionFields holds the raw values entered in the selection form.
type SelectionFields struct {
	CashierBranch string `json:"cashierBranch"`
	LoanBranch    string `json:"loanBranch"`
	Center        string `json:"center"`
	Group         string `json:"group"`
	Date          string `json:"date"`
	Search        string `json:"search"`
}

// SelectionFormView is a read-only copy of the form.
type SelectionFormView struct {
	State  FormState         `json:"state"`
	Fields SelectionFields   `json:"fields"`
	Errors map[string]string `json:"errors,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// LedgerView is a read-only copy of the ledger.
type LedgerView struct {
	State        LedgerState       `json:"state"`
	Context      SelectionContext  `json:"context"`
	Lines        []LoanReceiptLine `json:"lines"`
	RunningTotal decimal.Decimal   `json:"runningTotal"`
	PaymentCount int               `json:"paymentCount"`
	LoadedAt     time.Time         `json:"loadedAt"`
	Error        string            `json:"error,omitempty"`
}

// DeskView is the full state a screen host renders.
type DeskView struct {
	ID         string            `json:"id"`
	Username   string            `json:"username"`
	Selection  SelectionFormView `json:"selection"`
	Ledger     LedgerView        `json:"ledger"`
	Submission SubmissionState   `json:"submission"`
}

// PromptKind identifies a confirmation the cashier must answer before submitting.
type PromptKind string

const (
	PromptNoPayments PromptKind = "no_payments"
	PromptMismatch   PromptKind = "amount_mismatch"
)

// ConfirmationPrompt is raised by the submission engine before it posts a receipt.
type ConfirmationPrompt struct {
	Kind     PromptKind      `json:"kind"`
	Computed decimal.Decimal `json:"computed"`
	Entered  decimal.Decimal `json:"entered"`
	Message  string          `json:"message"`
}

// NewNoPaymentsPrompt builds the empty-payments confirmation.
func NewNoPaymentsPrompt(entered decimal.Decimal) ConfirmationPrompt {
	return ConfirmationPrompt{
		Kind:     PromptNoPayments,
		Computed: decimal.Zero,
		Entered:  entered,
		Message:  "You haven't entered any payment amounts. Would you like to proceed anyway?",
	}
}

// NewMismatchPrompt builds the sum mismatch confirmation.
func NewMismatchPrompt(computed, entered decimal.Decimal) ConfirmationPrompt {
	return ConfirmationPrompt{
		Kind:     PromptMismatch,
		Computed: computed,
		Entered:  entered,
		Message: fmt.Sprintf("The sum of payment amounts (%s) doesn't match the entered total amount (%s). Would you like to proceed anyway?",
			computed.String(), entered.String()),
	}
}

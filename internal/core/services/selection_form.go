package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
)

type formMode int

const (
	ledgerMode formMode = iota
	receiptLookupMode
)

// SelectionResult is what a successful ledger selection hands to the ledger.
type SelectionResult struct {
	Context domain.SelectionContext
	Lines   []domain.LoanReceiptLine
}

// SelectionForm collects the branch, center, group and date for one desk.
// It is safe for concurrent use; the fetch runs without holding the lock.
type SelectionForm struct {
	mu           sync.Mutex
	mode         formMode
	requireGroup bool
	state        domain.FormState
	fields       domain.SelectionFields
	errors       apperrors.FieldErrors
	lastErr      string
	now          func() time.Time
}

// NewSelectionForm creates the ledger selection form. requireGroup makes the group field mandatory.
func NewSelectionForm(requireGroup bool) *SelectionForm {
	return &SelectionForm{
		mode:         ledgerMode,
		requireGroup: requireGroup,
		state:        domain.FormIdle,
		errors:       apperrors.FieldErrors{},
		now:          time.Now,
	}
}

// NewReceiptLookupForm creates the receipt history form: center and date are both required.
func NewReceiptLookupForm() *SelectionForm {
	f := NewSelectionForm(false)
	f.mode = receiptLookupMode
	return f
}

// SetField stores one field value and clears that field's validation error.
func (f *SelectionForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	value = strings.TrimSpace(value)
	switch name {
	case domain.FieldCashierBranch:
		f.fields.CashierBranch = value
	case domain.FieldLoanBranch:
		f.fields.LoanBranch = value
	case domain.FieldCenter:
		f.fields.Center = value
	case domain.FieldGroup:
		f.fields.Group = value
	case domain.FieldDate:
		f.fields.Date = value
	case domain.FieldSearch:
		f.fields.Search = value
	default:
		return apperrors.FieldErrors{name: "unknown field"}
	}
	delete(f.errors, name)
	if f.state == domain.FormError || f.state == domain.FormSuccess {
		f.state = domain.FormIdle
		f.lastErr = ""
	}
	return nil
}

// validateLocked checks the fields and builds the context. Callers hold f.mu.
func (f *SelectionForm) validateLocked(userBranchID string) (domain.SelectionContext, error) {
	f.state = domain.FormValidating
	errs := apperrors.FieldErrors{}

	var collectDate time.Time
	if f.fields.Date == "" {
		if f.mode == receiptLookupMode {
			errs[domain.FieldDate] = "Please select a date."
		} else {
			now := f.now()
			collectDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
	} else {
		d, err := domain.ParseDate(f.fields.Date)
		if err != nil {
			errs[domain.FieldDate] = "Please enter the date as YYYY-MM-DD."
		}
		collectDate = d
	}

	if f.fields.Center == "" {
		if f.mode == receiptLookupMode {
			errs[domain.FieldCenter] = "Please select a center."
		} else {
			errs[domain.FieldCenter] = "Please select a center"
		}
	}
	if f.mode == ledgerMode && f.requireGroup && f.fields.Group == "" {
		errs[domain.FieldGroup] = "Please select a group"
	}

	if len(errs) > 0 {
		f.errors = errs
		f.state = domain.FormIdle
		out := make(apperrors.FieldErrors, len(errs))
		for k, v := range errs {
			out[k] = v
		}
		return domain.SelectionContext{}, out
	}

	f.errors = apperrors.FieldErrors{}
	branchID := f.fields.LoanBranch
	if branchID == "" {
		branchID = f.fields.CashierBranch
	}
	return domain.SelectionContext{
		CashierBranchID: f.fields.CashierBranch,
		BranchID:        branchID,
		CenterID:        f.fields.Center,
		GroupID:         f.fields.Group,
		CollectDate:     collectDate,
		Search:          f.fields.Search,
		UserBranchID:    userBranchID,
	}, nil
}

// begin validates and moves the form to loading.
func (f *SelectionForm) begin(userBranchID string) (domain.SelectionContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == domain.FormLoading {
		return domain.SelectionContext{}, ErrSelectionLoading
	}
	sel, err := f.validateLocked(userBranchID)
	if err != nil {
		return domain.SelectionContext{}, err
	}
	f.state = domain.FormLoading
	f.lastErr = ""
	return sel, nil
}

func (f *SelectionForm) finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = domain.FormError
		f.lastErr = apperrors.UserMessage(err)
		return
	}
	f.state = domain.FormSuccess
}

// Submit validates and issues exactly one ledger fetch. There is no retry.
func (f *SelectionForm) Submit(ctx context.Context, loans gateways.LoanGateway, userBranchID string) (*SelectionResult, error) {
	sel, err := f.begin(userBranchID)
	if err != nil {
		return nil, err
	}

	lines, err := loans.GetLoanDetails(ctx, sel.CenterID, sel.GroupID)
	f.finish(err)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.LoanReceiptLine{}
	}
	return &SelectionResult{Context: sel, Lines: lines}, nil
}

// SubmitReceiptLookup validates and fetches the receipts of the selected center and date.
func (f *SelectionForm) SubmitReceiptLookup(ctx context.Context, receipts gateways.ReceiptGateway) ([]domain.ReceiptRecord, error) {
	sel, err := f.begin("")
	if err != nil {
		return nil, err
	}

	records, err := receipts.GetReceiptDetails(ctx, sel.CenterID, sel.CollectDate)
	f.finish(err)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ReceiptRecord{}
	}
	return records, nil
}

// State returns the current state.
func (f *SelectionForm) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// View returns a copy of the form.
func (f *SelectionForm) View() domain.SelectionFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	view := domain.SelectionFormView{
		State:  f.state,
		Fields: f.fields,
		Error:  f.lastErr,
	}
	if len(f.errors) > 0 {
		view.Errors = make(map[string]string, len(f.errors))
		for k, v := range f.errors {
			view.Errors[k] = v
		}
	}
	return view
}

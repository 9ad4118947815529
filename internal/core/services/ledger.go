package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
)

// Ledger holds the loan lines of the current selection and the amounts the
// cashier entered against them. Lines keep backend order.
type Ledger struct {
	mu       sync.Mutex
	loans    gateways.LoanGateway
	state    domain.LedgerState
	sel      domain.SelectionContext
	loaded   bool
	snapshot domain.LedgerSnapshot
	lastErr  string
	saving   bool
	closed   bool
	gen      uint64 // bumped by every Load so stale refreshes can be dropped
	now      func() time.Time
}

// NewLedger creates an empty ledger that refreshes through loans.
func NewLedger(loans gateways.LoanGateway) *Ledger {
	return &Ledger{loans: loans, state: domain.LedgerEmpty, now: time.Now}
}

func copyLine(l domain.LoanReceiptLine) domain.LoanReceiptLine {
	if l.PayAmount != nil {
		p := *l.PayAmount
		l.PayAmount = &p
	}
	return l
}

func copyLines(lines []domain.LoanReceiptLine) []domain.LoanReceiptLine {
	out := make([]domain.LoanReceiptLine, len(lines))
	for i, l := range lines {
		out[i] = copyLine(l)
	}
	return out
}

// Load replaces the snapshot wholesale. Unsaved pay amounts are discarded.
func (l *Ledger) Load(sel domain.SelectionContext, lines []domain.LoanReceiptLine) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(sel, lines)
}

func (l *Ledger) loadLocked(sel domain.SelectionContext, lines []domain.LoanReceiptLine) {
	if l.closed {
		return
	}
	fresh := copyLines(lines)
	for i := range fresh {
		fresh[i].PayAmount = nil
	}
	l.sel = sel
	l.loaded = true
	l.snapshot = domain.LedgerSnapshot{Lines: fresh, LoadedAt: l.now()}
	l.state = domain.LedgerReady
	l.lastErr = ""
	l.gen++
}

// indexLocked finds the line for loanID. Callers hold l.mu.
func (l *Ledger) indexLocked(loanID string) int {
	for i := range l.snapshot.Lines {
		if l.snapshot.Lines[i].LoanID == loanID {
			return i
		}
	}
	return -1
}

// editableLocked reports why the ledger cannot be edited right now.
func (l *Ledger) editableLocked() error {
	switch {
	case !l.loaded:
		return ErrNoSelection
	case l.saving, l.state == domain.LedgerRefreshing:
		return ErrLedgerLocked
	}
	return nil
}

// SetPayment replaces the pay amount of exactly one line. Every other line is untouched.
func (l *Ledger) SetPayment(loanID, raw string) (domain.LoanReceiptLine, error) {
	amount, err := domain.ParsePositiveAmount(raw)
	if err != nil {
		return domain.LoanReceiptLine{}, ErrInvalidPaymentAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.editableLocked(); err != nil {
		return domain.LoanReceiptLine{}, err
	}
	i := l.indexLocked(loanID)
	if i < 0 {
		return domain.LoanReceiptLine{}, apperrors.ErrNotFound
	}

	l.snapshot.Lines[i].PayAmount = &amount
	return copyLine(l.snapshot.Lines[i]), nil
}

// ClearPayment removes an entered amount.
func (l *Ledger) ClearPayment(loanID string) (domain.LoanReceiptLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.editableLocked(); err != nil {
		return domain.LoanReceiptLine{}, err
	}
	i := l.indexLocked(loanID)
	if i < 0 {
		return domain.LoanReceiptLine{}, apperrors.ErrNotFound
	}
	l.snapshot.Lines[i].PayAmount = nil
	return copyLine(l.snapshot.Lines[i]), nil
}

// Refresh re-fetches the lines for the current selection and loads them.
// It does not merge: unsaved pay amounts are lost.
func (l *Ledger) Refresh(ctx context.Context) (domain.LedgerView, error) {
	l.mu.Lock()
	if !l.loaded {
		l.mu.Unlock()
		return domain.LedgerView{}, ErrNoSelection
	}
	if l.saving || l.state == domain.LedgerRefreshing {
		l.mu.Unlock()
		return domain.LedgerView{}, ErrLedgerLocked
	}
	l.state = domain.LedgerRefreshing
	sel := l.sel
	gen := l.gen
	l.mu.Unlock()

	lines, err := l.loans.GetLoanDetails(ctx, sel.CenterID, sel.GroupID)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.gen != gen {
		// A newer Load or a Close won; this response is stale.
		return l.viewLocked(""), nil
	}
	if err != nil {
		l.state = domain.LedgerError
		l.lastErr = apperrors.UserMessage(err)
		return l.viewLocked(""), err
	}
	l.loadLocked(sel, lines)
	return l.viewLocked(""), nil
}

// Refreshing reports whether a refresh is in flight.
func (l *Ledger) Refreshing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == domain.LedgerRefreshing
}

// Lines returns a copy of every line in backend order.
func (l *Ledger) Lines() []domain.LoanReceiptLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyLines(l.snapshot.Lines)
}

// Find returns the lines matching search on loan number, client or group.
func (l *Ledger) Find(search string) []domain.LoanReceiptLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.findLocked(search)
}

func (l *Ledger) findLocked(search string) []domain.LoanReceiptLine {
	out := make([]domain.LoanReceiptLine, 0, len(l.snapshot.Lines))
	for _, line := range l.snapshot.Lines {
		if line.Matches(search) {
			out = append(out, copyLine(line))
		}
	}
	return out
}

// RunningTotal sums the entered pay amounts.
func (l *Ledger) RunningTotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	total, _ := l.totalLocked()
	return total
}

func (l *Ledger) totalLocked() (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, line := range l.snapshot.Lines {
		if line.HasPayment() {
			total = total.Add(*line.PayAmount)
			count++
		}
	}
	return total, count
}

// PaymentBatchLines returns the lines carrying a pay amount, in ledger order.
func (l *Ledger) PaymentBatchLines() []domain.LoanReceiptLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paidLocked()
}

func (l *Ledger) paidLocked() []domain.LoanReceiptLine {
	out := make([]domain.LoanReceiptLine, 0)
	for _, line := range l.snapshot.Lines {
		if line.HasPayment() {
			out = append(out, copyLine(line))
		}
	}
	return out
}

// Context returns the selection the ledger was loaded for.
func (l *Ledger) Context() domain.SelectionContext {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sel
}

// View returns a copy of the ledger filtered by search (empty = all lines).
func (l *Ledger) View(search string) domain.LedgerView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked(search)
}

func (l *Ledger) viewLocked(search string) domain.LedgerView {
	total, count := l.totalLocked()
	var lines []domain.LoanReceiptLine
	if strings.TrimSpace(search) == "" {
		lines = copyLines(l.snapshot.Lines)
	} else {
		lines = l.findLocked(search)
	}
	if lines == nil {
		lines = []domain.LoanReceiptLine{}
	}
	return domain.LedgerView{
		State:        l.state,
		Context:      l.sel,
		Lines:        lines,
		RunningTotal: total,
		PaymentCount: count,
		LoadedAt:     l.snapshot.LoadedAt,
		Error:        l.lastErr,
	}
}

// beginSave locks the ledger for a submission and returns what to submit.
func (l *Ledger) beginSave() (domain.SelectionContext, []domain.LoanReceiptLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return domain.SelectionContext{}, nil, ErrNoSelection
	}
	if l.state == domain.LedgerRefreshing {
		return domain.SelectionContext{}, nil, ErrLedgerLocked
	}
	l.saving = true
	return l.sel, l.paidLocked(), nil
}

// endSave unlocks the ledger. clearPayments drops every entered amount.
func (l *Ledger) endSave(clearPayments bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saving = false
	if !clearPayments || l.closed {
		return
	}
	for i := range l.snapshot.Lines {
		l.snapshot.Lines[i].PayAmount = nil
	}
}

// close discards the snapshot; later loads and refresh results are dropped.
func (l *Ledger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.loaded = false
	l.snapshot = domain.LedgerSnapshot{}
	l.state = domain.LedgerEmpty
}

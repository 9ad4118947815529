package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/metrics"
	"github.com/shopspring/decimal"
)

// SubmissionEngine reconciles the entered total against the ledger and posts the receipt.
type SubmissionEngine struct {
	BaseService
	mu          sync.Mutex
	state       domain.SubmissionState
	ledger      *Ledger
	receipts    gateways.ReceiptGateway
	autoRefresh bool
}

// NewSubmissionEngine creates an engine for ledger. autoRefresh reloads the
// ledger after a successful submission.
func NewSubmissionEngine(ledger *Ledger, receipts gateways.ReceiptGateway, autoRefresh bool) *SubmissionEngine {
	return &SubmissionEngine{
		state:       domain.SubmissionIdle,
		ledger:      ledger,
		receipts:    receipts,
		autoRefresh: autoRefresh,
	}
}

// State returns idle or saving.
func (e *SubmissionEngine) State() domain.SubmissionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *SubmissionEngine) tryBegin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == domain.SubmissionSaving {
		return false
	}
	e.state = domain.SubmissionSaving
	return true
}

func (e *SubmissionEngine) end() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = domain.SubmissionIdle
}

// Save validates the entered total, asks confirmer about an empty or
// mismatched payment set, and posts the receipt. A second Save while one is
// running fails with ErrSubmissionInProgress without touching the network.
func (e *SubmissionEngine) Save(ctx context.Context, enteredTotal string, confirmer portssvc.Confirmer) (*domain.ReceiptSubmissionResult, error) {
	if !e.tryBegin() {
		metrics.ReceiptSubmissionsTotal.WithLabelValues(metrics.OutcomeBusy).Inc()
		return nil, ErrSubmissionInProgress
	}
	defer e.end()

	entered, err := domain.ParsePositiveAmount(enteredTotal)
	if err != nil {
		metrics.ReceiptSubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, ErrInvalidTotal
	}

	sel, paid, err := e.ledger.beginSave()
	if err != nil {
		metrics.ReceiptSubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}
	submitted := false
	defer func() { e.ledger.endSave(submitted) }()

	total := decimal.Zero
	for _, line := range paid {
		total = total.Add(*line.PayAmount)
	}

	if len(paid) == 0 {
		if err := e.confirm(ctx, confirmer, domain.NewNoPaymentsPrompt(entered)); err != nil {
			return nil, err
		}
	} else if !total.Equal(entered) {
		if err := e.confirm(ctx, confirmer, domain.NewMismatchPrompt(total, entered)); err != nil {
			return nil, err
		}
	}

	batch := domain.NewPaymentBatch(sel, entered, paid)
	receiptNo, err := e.receipts.GenerateReceipt(ctx, batch)
	if err != nil {
		e.recordFailure(ctx, err, sel)
		return nil, err
	}
	submitted = true

	e.LogInfo(ctx, "Receipt generated",
		slog.String("receipt_no", receiptNo),
		slog.String("center_id", sel.CenterID),
		slog.String("entered_total", entered.String()),
		slog.Int("lines", len(batch.Lines)))
	metrics.ReceiptSubmissionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return &domain.ReceiptSubmissionResult{
		ReceiptNo: receiptNo,
		Message:   fmt.Sprintf("Total amount of Receipt No %s and payments saved successfully.", receiptNo),
	}, nil
}

// SaveAndRefresh runs Save and, when auto refresh is on, reloads the ledger
// afterwards. A failed reload is reported in the result, not as an error.
func (e *SubmissionEngine) SaveAndRefresh(ctx context.Context, enteredTotal string, confirmer portssvc.Confirmer) (*domain.ReceiptSubmissionResult, error) {
	res, err := e.Save(ctx, enteredTotal, confirmer)
	if err != nil || !e.autoRefresh {
		return res, err
	}
	if _, rerr := e.ledger.Refresh(ctx); rerr != nil {
		e.LogWarn(ctx, "Ledger refresh after submit failed", slog.String("error", rerr.Error()))
		res.RefreshError = apperrors.UserMessage(rerr)
		return res, nil
	}
	res.Refreshed = true
	return res, nil
}

func (e *SubmissionEngine) confirm(ctx context.Context, confirmer portssvc.Confirmer, prompt domain.ConfirmationPrompt) error {
	if confirmer != nil && confirmer.Confirm(ctx, prompt) {
		return nil
	}
	metrics.ReceiptSubmissionsTotal.WithLabelValues(metrics.OutcomeDeclined).Inc()
	return &DeclinedError{Prompt: prompt}
}

func (e *SubmissionEngine) recordFailure(ctx context.Context, err error, sel domain.SelectionContext) {
	outcome := metrics.OutcomeNetwork
	var se *apperrors.ServerError
	if errors.As(err, &se) {
		outcome = metrics.OutcomeServerError
	}
	metrics.ReceiptSubmissionsTotal.WithLabelValues(outcome).Inc()
	e.LogError(ctx, err, "Receipt generation failed", slog.String("center_id", sel.CenterID), slog.String("outcome", outcome))
}

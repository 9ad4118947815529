package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const cashSummarySheet = "Cash Summary"

var cashSummaryHeader = []any{
	"Branch", "User Name", "Opening Balance", "Lease Cash In", "MF Cash In", "GL Cash In", "Cash Bank", "Cash In Hand",
}

type cashSummaryService struct {
	BaseService
	gateway gateways.CashSummaryGateway
}

// NewCashSummaryService creates the cashier cash summary service.
func NewCashSummaryService(gateway gateways.CashSummaryGateway) portssvc.CashSummarySvc {
	return &cashSummaryService{gateway: gateway}
}

var _ portssvc.CashSummarySvc = (*cashSummaryService)(nil)

// GetSummary fetches the rows for summaryDate and computes their totals.
func (s *cashSummaryService) GetSummary(ctx context.Context, summaryDate time.Time) (*domain.CashSummary, error) {
	if summaryDate.IsZero() {
		now := time.Now()
		summaryDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	rows, err := s.gateway.GetCashierCashSummary(ctx, summaryDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch cash summary", slog.String("date", domain.FormatDate(summaryDate)))
		return nil, err
	}
	summary := domain.NewCashSummary(summaryDate, rows)
	return &summary, nil
}

func summaryRow(r domain.CashSummaryRow) []any {
	num := func(d decimal.Decimal) any { return d.InexactFloat64() }
	return []any{
		r.Branch, r.UserName,
		num(r.OpeningBalance), num(r.LeaseCashIn), num(r.MFCashIn),
		num(r.GLCashIn), num(r.CashBank), num(r.CashCollection),
	}
}

// ExportXLSX writes one header row, one row per branch and a totals row.
func (s *cashSummaryService) ExportXLSX(ctx context.Context, summaryDate time.Time, w io.Writer) error {
	summary, err := s.GetSummary(ctx, summaryDate)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cashSummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	rows := make([][]any, 0, len(summary.Rows)+2)
	rows = append(rows, cashSummaryHeader)
	for _, r := range summary.Rows {
		rows = append(rows, summaryRow(r))
	}
	rows = append(rows, summaryRow(summary.Totals))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address summary row %d: %w", i+1, err)
		}
		row := row
		if err := f.SetSheetRow(cashSummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write summary spreadsheet: %w", err)
	}
	s.LogInfo(ctx, "Cash summary exported",
		slog.String("date", domain.FormatDate(summary.Date)),
		slog.Int("rows", len(summary.Rows)))
	return nil
}

package mfapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/shopspring/decimal"
)

var errEmptyReceiptNo = errors.New("empty receipt number")

type loanDetailsRequest struct {
	CenterID string `json:"CenterID"`
	GroupID  string `json:"GroupID"`
}

type receiptDetailRequest struct {
	LoanID             string      `json:"loanID"`
	Amount             json.Number `json:"amount"`
	ServingTransAmount json.Number `json:"servingTransAmount"`
	AccountNo          string      `json:"accountNo"`
}

type generateReceiptRequest struct {
	BranchID      string                 `json:"branchID"`
	CollectDate   string                 `json:"collectDate"`
	Amount        json.Number            `json:"amount"`
	ReceiptDetail []receiptDetailRequest `json:"receiptDetail"`
	UserBranchID  string                 `json:"userBranchID"`
}

type receiptDetailsRequest struct {
	CenterID    string `json:"CenterID"`
	ReceiptDate string `json:"receiptDate"`
}

type cancelReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
	Reason    string `json:"reason"`
}

type cashSummaryRequest struct {
	SummaryDate string `json:"summaryDate"`
}

// number renders d as a bare JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// GetLoanDetails returns the outstanding loans of a center and group in backend order.
func (c *Client) GetLoanDetails(ctx context.Context, centerID, groupID string) ([]domain.LoanReceiptLine, error) {
	const endpoint = "getLoanDetails"
	resp, err := c.do(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/MFReceipt/getLoanDetails",
		payload:  loanDetailsRequest{CenterID: centerID, GroupID: groupID},
		timeout:  c.timeout,
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(endpoint, resp.body)
	if err != nil {
		return nil, err
	}
	return toLoanReceiptLines(records), nil
}

// GenerateReceipt posts the batch. The backend answers with the receipt number as plain text.
func (c *Client) GenerateReceipt(ctx context.Context, batch domain.PaymentBatch) (string, error) {
	details := make([]receiptDetailRequest, 0, len(batch.Lines))
	for _, d := range batch.Lines {
		details = append(details, receiptDetailRequest{
			LoanID:             d.LoanID,
			Amount:             number(d.Amount),
			ServingTransAmount: number(d.ServingTransAmount),
			AccountNo:          d.AccountNo,
		})
	}

	resp, err := c.do(ctx, call{
		endpoint: "generateReceipt",
		method:   http.MethodPost,
		path:     "/MFReceipt/generateReceipt",
		payload: generateReceiptRequest{
			BranchID:      batch.BranchID,
			CollectDate:   domain.FormatDate(batch.CollectDate),
			Amount:        number(batch.EnteredTotal),
			ReceiptDetail: details,
			UserBranchID:  batch.UserBranchID,
		},
		timeout: c.timeout,
	})
	if err != nil {
		return "", err
	}
	receiptNo := plainText(resp.body)
	if receiptNo == "" {
		return "", &apperrors.ParseError{Endpoint: "generateReceipt", Err: errEmptyReceiptNo}
	}
	return receiptNo, nil
}

// GetReceiptDetails lists the receipts of a center for one day.
func (c *Client) GetReceiptDetails(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error) {
	const endpoint = "GetReceiptDetails"
	resp, err := c.do(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/MFReceipt/GetReceiptDetails",
		payload:  receiptDetailsRequest{CenterID: centerID, ReceiptDate: domain.FormatDate(receiptDate)},
		timeout:  c.timeout,
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(endpoint, resp.body)
	if err != nil {
		return nil, err
	}
	return toReceiptRecords(records), nil
}

// CancelReceipt cancels a receipt and returns the backend's confirmation.
func (c *Client) CancelReceipt(ctx context.Context, receiptID, reason string) (string, error) {
	resp, err := c.do(ctx, call{
		endpoint: "cancelReceipt",
		method:   http.MethodPost,
		path:     "/cancel-receipt",
		payload:  cancelReceiptRequest{ReceiptID: receiptID, Reason: reason},
		timeout:  c.timeout,
	})
	if err != nil {
		return "", err
	}
	if msg := messageField(resp.body); msg != "" {
		return msg, nil
	}
	return plainText(resp.body), nil
}

// GetCashierCashSummary returns the per-branch cash rows for one day.
func (c *Client) GetCashierCashSummary(ctx context.Context, summaryDate time.Time) ([]domain.CashSummaryRow, error) {
	const endpoint = "GetCashierCashSummary"
	resp, err := c.do(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/MFReceipt/GetCashierCashSummary",
		payload:  cashSummaryRequest{SummaryDate: domain.FormatDate(summaryDate)},
		timeout:  c.timeout,
	})
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(endpoint, resp.body)
	if err != nil {
		return nil, err
	}
	return toCashSummaryRows(records), nil
}

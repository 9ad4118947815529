package mfapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// record is one backend object with normalized keys.
// BranchId, branchID and branch_id all become "branchid".
type record map[string]any

func normalizeKey(k string) string {
	var b strings.Builder
	b.Grow(len(k))
	for _, r := range strings.ToLower(k) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newRecord(raw map[string]any) record {
	rec := make(record, len(raw))
	for k, v := range raw {
		rec[normalizeKey(k)] = v
	}
	return rec
}

// lookup returns the first non-null value among keys.
func (r record) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[normalizeKey(k)]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r record) str(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// amount reads a number that may arrive as a JSON number or a string
// ("1,250.00"). Missing or unparsable values are zero.
func (r record) amount(keys ...string) decimal.Decimal {
	s := strings.ReplaceAll(r.str(keys...), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r record) date(keys ...string) time.Time {
	s := r.str(keys...)
	if s == "" {
		return time.Time{}
	}
	if t, err := domain.ParseDate(s); err == nil {
		return t
	}
	if t, err := cast.ToTimeE(s); err == nil {
		return t
	}
	return time.Time{}
}

// decodeRecords accepts a bare array, an object wrapping one array
// (e.g. {"data": [...]}), or a single object.
func decodeRecords(endpoint string, body []byte) ([]record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &apperrors.ParseError{Endpoint: endpoint, Err: err}
	}

	items, err := unwrapList(payload)
	if err != nil {
		return nil, &apperrors.ParseError{Endpoint: endpoint, Err: err}
	}

	records := make([]record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, newRecord(obj))
	}
	return records, nil
}

func unwrapList(payload any) ([]any, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		var found []any
		arrays := 0
		for _, val := range v {
			if arr, ok := val.([]any); ok {
				found = arr
				arrays++
			}
		}
		if arrays == 1 {
			return found, nil
		}
		return []any{v}, nil
	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %T", payload)
	}
}

// decodeObject reads a single JSON object into a record.
func decodeObject(endpoint string, body []byte) (record, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(body)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, &apperrors.ParseError{Endpoint: endpoint, Err: err}
	}
	return newRecord(obj), nil
}

// plainText returns a text/plain body, accepting a JSON string as well
// ("RCT-1" and RCT-1 read the same).
func plainText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return text
}

// Candidate keys per lookup list. The backend is inconsistent about both
// spelling and which field holds the id.
var (
	labelKeys       = []string{"Description", "Name", "Label"}
	branchValueKeys = []string{"BranchId", "Id", "Value"}
	centerValueKeys = []string{"CenterID", "BranchId", "Id", "Value"}
	groupLabelKeys  = []string{"Description", "GroupName", "Name", "Label"}
	groupValueKeys  = []string{"GroupID", "Id", "Value"}
)

// toLookupItems maps records to dropdown entries, dropping entries without a label.
func toLookupItems(records []record, labels, values []string) []domain.LookupItem {
	items := make([]domain.LookupItem, 0, len(records))
	for _, rec := range records {
		label := rec.str(labels...)
		if label == "" {
			continue
		}
		items = append(items, domain.LookupItem{Label: label, Value: rec.str(values...)})
	}
	return items
}

func toLoanReceiptLines(records []record) []domain.LoanReceiptLine {
	lines := make([]domain.LoanReceiptLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, domain.LoanReceiptLine{
			LoanID:       rec.str("loanID"),
			LoanNo:       rec.str("LoanNo"),
			ClientName:   rec.str("Client_Name"),
			GroupName:    rec.str("GroupName"),
			LoanAmount:   rec.amount("Loan_Amount"),
			RentalAmount: rec.amount("Rental_Amount"),
			TotalDue:     rec.amount("Total_Due"),
		})
	}
	return lines
}

func toReceiptRecords(records []record) []domain.ReceiptRecord {
	out := make([]domain.ReceiptRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.ReceiptRecord{
			ReceiptID:  rec.str("ReceiptID", "ReceiptNo"),
			ReceiptNo:  rec.str("ReceiptNo"),
			LoanNo:     rec.str("LoanNo"),
			CenterName: rec.str("CenterName"),
			Amount:     rec.amount("amount"),
			Status:     rec.str("Status"),
			LogDate:    rec.date("logDate"),
		})
	}
	return out
}

func toCashSummaryRows(records []record) []domain.CashSummaryRow {
	out := make([]domain.CashSummaryRow, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.CashSummaryRow{
			Branch:         rec.str("Branch"),
			UserName:       rec.str("UserName"),
			OpeningBalance: rec.amount("OpeningBalance"),
			LeaseCashIn:    rec.amount("LeaseCashIn"),
			MFCashIn:       rec.amount("MFCashIn"),
			GLCashIn:       rec.amount("GLCashIn"),
			CashBank:       rec.amount("CashBank"),
			CashCollection: rec.amount("CashCollection"),
		})
	}
	return out
}

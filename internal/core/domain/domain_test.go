package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"integer", "300", "300", nil},
		{"decimal", "12.50", "12.5", nil},
		{"thousands separator", "1,500", "1500", nil},
		{"whitespace", "  42 ", "42", nil},
		{"empty", "", "", domain.ErrNotANumber},
		{"letters", "abc", "", domain.ErrNotANumber},
		{"zero", "0", "", domain.ErrNotPositive},
		{"negative", "-5", "", domain.ErrNotPositive},
		{"grouped thousands", "1,250,000.75", "1250000.75", nil},
		{"twelve integer digits", "999999999999", "999999999999", nil},
		{"exponent", "1e5", "", domain.ErrNotANumber},
		{"huge exponent", "1e20000000", "", domain.ErrNotANumber},
		{"bad grouping", "1,2,3", "", domain.ErrNotANumber},
		{"trailing separator", "1500,", "", domain.ErrNotANumber},
		{"bare fraction", ".5", "", domain.ErrNotANumber},
		{"hex", "0x10", "", domain.ErrNotANumber},
		{"too many integer digits", "1234567890123", "", domain.ErrAmountTooLarge},
		{"too many fraction digits", "1.23456", "", domain.ErrAmountTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePositiveAmount(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2025-03-01T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", domain.FormatDate(d))

	_, err = domain.ParseDate("01/03/2025")
	assert.Error(t, err)

	assert.Equal(t, "", domain.FormatDate(time.Time{}))
}

func TestLoanReceiptLine_RemainingDue(t *testing.T) {
	line := domain.LoanReceiptLine{TotalDue: decimal.NewFromInt(5000)}
	assert.True(t, line.RemainingDue().Equal(decimal.NewFromInt(5000)))

	line.PayAmount = decimalPtr(decimal.NewFromInt(1000))
	assert.True(t, line.RemainingDue().Equal(decimal.NewFromInt(4000)))

	line.PayAmount = decimalPtr(decimal.NewFromInt(9000))
	assert.True(t, line.RemainingDue().IsZero(), "remaining due is floored at zero")
	assert.True(t, line.TotalDue.Equal(decimal.NewFromInt(5000)), "total due is never mutated")
}

func TestLoanReceiptLine_Matches(t *testing.T) {
	line := domain.LoanReceiptLine{LoanNo: "LN-001", ClientName: "Jane Smith", GroupName: "Group B"}
	assert.True(t, line.Matches(""))
	assert.True(t, line.Matches("jane"))
	assert.True(t, line.Matches("ln-0"))
	assert.True(t, line.Matches("group b"))
	assert.False(t, line.Matches("john"))
}

func TestNewPaymentBatch(t *testing.T) {
	collect := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sel := domain.SelectionContext{BranchID: "B1", CollectDate: collect, UserBranchID: "UB1"}
	lines := []domain.LoanReceiptLine{
		{LoanID: "234", PayAmount: decimalPtr(decimal.NewFromInt(100))},
		{LoanID: "123"},
		{LoanID: "345", PayAmount: decimalPtr(decimal.NewFromInt(200))},
	}

	batch := domain.NewPaymentBatch(sel, decimal.NewFromInt(300), lines)

	assert.Equal(t, "B1", batch.BranchID)
	assert.Equal(t, "UB1", batch.UserBranchID)
	assert.Equal(t, collect, batch.CollectDate)
	require.Len(t, batch.Lines, 2)
	assert.Equal(t, "234", batch.Lines[0].LoanID)
	assert.Equal(t, "345", batch.Lines[1].LoanID)
	assert.True(t, batch.Lines[0].ServingTransAmount.IsZero())
	assert.Equal(t, "", batch.Lines[0].AccountNo)
	assert.True(t, batch.PaymentTotal().Equal(decimal.NewFromInt(300)))
}

func TestPaymentTotal_OrderIndependent(t *testing.T) {
	amounts := []string{"0.1", "0.2", "1234.55", "7", "0.3"}
	forward := make([]domain.LoanReceiptLine, 0, len(amounts))
	backward := make([]domain.LoanReceiptLine, 0, len(amounts))
	for i := range amounts {
		forward = append(forward, domain.LoanReceiptLine{LoanID: amounts[i], PayAmount: decimalPtr(decimal.RequireFromString(amounts[i]))})
		j := len(amounts) - 1 - i
		backward = append(backward, domain.LoanReceiptLine{LoanID: amounts[j], PayAmount: decimalPtr(decimal.RequireFromString(amounts[j]))})
	}
	a := domain.NewPaymentBatch(domain.SelectionContext{}, decimal.Zero, forward).PaymentTotal()
	b := domain.NewPaymentBatch(domain.SelectionContext{}, decimal.Zero, backward).PaymentTotal()
	assert.True(t, a.Equal(b))
	assert.Equal(t, "1242.15", a.String())
}

func TestNewCashSummary_Totals(t *testing.T) {
	rows := []domain.CashSummaryRow{
		{Branch: "North", OpeningBalance: decimal.NewFromInt(100), MFCashIn: decimal.NewFromInt(50), CashCollection: decimal.NewFromInt(150)},
		{Branch: "South", OpeningBalance: decimal.NewFromInt(10), LeaseCashIn: decimal.NewFromInt(5), CashCollection: decimal.NewFromInt(15)},
	}
	summary := domain.NewCashSummary(time.Now(), rows)
	assert.Equal(t, "Total", summary.Totals.Branch)
	assert.True(t, summary.Totals.OpeningBalance.Equal(decimal.NewFromInt(110)))
	assert.True(t, summary.Totals.CashCollection.Equal(decimal.NewFromInt(165)))

	empty := domain.NewCashSummary(time.Now(), nil)
	assert.NotNil(t, empty.Rows)
	assert.True(t, empty.Totals.CashCollection.IsZero())
}

func TestParseLookupKind(t *testing.T) {
	k, err := domain.ParseLookupKind("center")
	require.NoError(t, err)
	assert.True(t, k.NeedsFilter())

	k, err = domain.ParseLookupKind("branch")
	require.NoError(t, err)
	assert.False(t, k.NeedsFilter())

	_, err = domain.ParseLookupKind("region")
	assert.Error(t, err)
}

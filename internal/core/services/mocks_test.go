package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanGateway ---
type MockLoanGateway struct {
	mock.Mock
}

func (m *MockLoanGateway) GetLoanDetails(ctx context.Context, centerID, groupID string) ([]domain.LoanReceiptLine, error) {
	args := m.Called(ctx, centerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanReceiptLine), args.Error(1)
}

var _ gateways.LoanGateway = (*MockLoanGateway)(nil)

// --- Mock ReceiptGateway ---
type MockReceiptGateway struct {
	mock.Mock
}

func (m *MockReceiptGateway) GenerateReceipt(ctx context.Context, batch domain.PaymentBatch) (string, error) {
	args := m.Called(ctx, batch)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptGateway) GetReceiptDetails(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error) {
	args := m.Called(ctx, centerID, receiptDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptRecord), args.Error(1)
}

func (m *MockReceiptGateway) CancelReceipt(ctx context.Context, receiptID, reason string) (string, error) {
	args := m.Called(ctx, receiptID, reason)
	return args.String(0), args.Error(1)
}

var _ gateways.ReceiptGateway = (*MockReceiptGateway)(nil)

// --- Mock ReferenceDataGateway ---
type MockReferenceDataGateway struct {
	mock.Mock
}

func (m *MockReferenceDataGateway) items(args mock.Arguments) ([]domain.LookupItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupItem), args.Error(1)
}

func (m *MockReferenceDataGateway) ListCashierBranches(ctx context.Context) ([]domain.LookupItem, error) {
	return m.items(m.Called(ctx))
}

func (m *MockReferenceDataGateway) ListLoanBranches(ctx context.Context) ([]domain.LookupItem, error) {
	return m.items(m.Called(ctx))
}

func (m *MockReferenceDataGateway) ListBranchCenters(ctx context.Context, branchID string) ([]domain.LookupItem, error) {
	return m.items(m.Called(ctx, branchID))
}

func (m *MockReferenceDataGateway) ListCenterGroups(ctx context.Context, centerID string) ([]domain.LookupItem, error) {
	return m.items(m.Called(ctx, centerID))
}

var _ gateways.ReferenceDataGateway = (*MockReferenceDataGateway)(nil)

// --- Mock AuthGateway ---
type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *MockAuthGateway) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthGateway) IsAuthenticated(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

var _ gateways.AuthGateway = (*MockAuthGateway)(nil)

// --- Mock CashSummaryGateway ---
type MockCashSummaryGateway struct {
	mock.Mock
}

func (m *MockCashSummaryGateway) GetCashierCashSummary(ctx context.Context, summaryDate time.Time) ([]domain.CashSummaryRow, error) {
	args := m.Called(ctx, summaryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashSummaryRow), args.Error(1)
}

var _ gateways.CashSummaryGateway = (*MockCashSummaryGateway)(nil)

// --- Mock SessionReaderSvc ---
type MockSessionReader struct {
	mock.Mock
}

func (m *MockSessionReader) GetSession(ctx context.Context, username string) (*domain.Session, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionReader) SessionCookie(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

var _ portssvc.SessionReaderSvc = (*MockSessionReader)(nil)

// --- Fixtures ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleLines() []domain.LoanReceiptLine {
	return []domain.LoanReceiptLine{
		{LoanID: "L1", LoanNo: "LN-001", ClientName: "Kamala Perera", GroupName: "Lotus", LoanAmount: dec("5000"), RentalAmount: dec("500"), TotalDue: dec("500")},
		{LoanID: "L2", LoanNo: "LN-002", ClientName: "Nimal Silva", GroupName: "Lotus", LoanAmount: dec("8000"), RentalAmount: dec("800"), TotalDue: dec("800")},
		{LoanID: "L3", LoanNo: "LN-003", ClientName: "Sunil Fernando", GroupName: "Jasmine", LoanAmount: dec("3000"), RentalAmount: dec("300"), TotalDue: dec("600")},
	}
}

func sampleSelection() domain.SelectionContext {
	return domain.SelectionContext{
		CashierBranchID: "B1",
		BranchID:        "B1",
		CenterID:        "C7",
		CollectDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		UserBranchID:    "UB9",
	}
}

func acceptAll() portssvc.Confirmer {
	return portssvc.ConfirmerFunc(func(context.Context, domain.ConfirmationPrompt) bool { return true })
}

package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}
func (m *MockAuthService) IsAuthenticated(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
func (m *MockAuthService) GetSession(ctx context.Context, username string) (*domain.Session, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) SessionCookie(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock ReferenceDataService ---
type MockReferenceDataService struct {
	mock.Mock
}

func (m *MockReferenceDataService) FetchList(ctx context.Context, kind domain.LookupKind, filter string) ([]domain.LookupItem, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupItem), args.Error(1)
}

var _ portssvc.ReferenceDataSvc = (*MockReferenceDataService)(nil)

// --- Mock DeskService ---
type MockDeskService struct {
	mock.Mock
}

func (m *MockDeskService) Open(ctx context.Context, username, userBranchID string) (*domain.DeskView, error) {
	args := m.Called(ctx, username, userBranchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeskView), args.Error(1)
}
func (m *MockDeskService) View(ctx context.Context, deskID, username string) (*domain.DeskView, error) {
	args := m.Called(ctx, deskID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeskView), args.Error(1)
}
func (m *MockDeskService) Close(ctx context.Context, deskID, username string) error {
	return m.Called(ctx, deskID, username).Error(0)
}
func (m *MockDeskService) CloseAll(ctx context.Context, username string) int {
	return m.Called(ctx, username).Int(0)
}
func (m *MockDeskService) UpdateSelection(ctx context.Context, deskID, username string, fields map[string]string) (*domain.SelectionFormView, error) {
	args := m.Called(ctx, deskID, username, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SelectionFormView), args.Error(1)
}
func (m *MockDeskService) SubmitSelection(ctx context.Context, deskID, username string) (*domain.LedgerView, error) {
	args := m.Called(ctx, deskID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerView), args.Error(1)
}
func (m *MockDeskService) GetLedger(ctx context.Context, deskID, username, search string) (*domain.LedgerView, error) {
	args := m.Called(ctx, deskID, username, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerView), args.Error(1)
}
func (m *MockDeskService) SetPayment(ctx context.Context, deskID, username, loanID, amount string) (*domain.LoanReceiptLine, error) {
	args := m.Called(ctx, deskID, username, loanID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanReceiptLine), args.Error(1)
}
func (m *MockDeskService) ClearPayment(ctx context.Context, deskID, username, loanID string) (*domain.LoanReceiptLine, error) {
	args := m.Called(ctx, deskID, username, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanReceiptLine), args.Error(1)
}
func (m *MockDeskService) RefreshLedger(ctx context.Context, deskID, username string) (*domain.LedgerView, error) {
	args := m.Called(ctx, deskID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerView), args.Error(1)
}
func (m *MockDeskService) Submit(ctx context.Context, deskID, username, enteredTotal string, confirmer portssvc.Confirmer) (*domain.ReceiptSubmissionResult, error) {
	args := m.Called(ctx, deskID, username, enteredTotal, confirmer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptSubmissionResult), args.Error(1)
}

var _ portssvc.DeskSvcFacade = (*MockDeskService)(nil)

// --- Mock ReceiptHistoryService ---
type MockReceiptHistoryService struct {
	mock.Mock
}

func (m *MockReceiptHistoryService) ListReceipts(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error) {
	args := m.Called(ctx, centerID, receiptDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptRecord), args.Error(1)
}
func (m *MockReceiptHistoryService) CancelReceipt(ctx context.Context, req portssvc.CancelReceiptRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

var _ portssvc.ReceiptHistorySvc = (*MockReceiptHistoryService)(nil)

// --- Mock CashSummaryService ---
type MockCashSummaryService struct {
	mock.Mock
}

func (m *MockCashSummaryService) GetSummary(ctx context.Context, summaryDate time.Time) (*domain.CashSummary, error) {
	args := m.Called(ctx, summaryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashSummary), args.Error(1)
}
func (m *MockCashSummaryService) ExportXLSX(ctx context.Context, summaryDate time.Time, w io.Writer) error {
	args := m.Called(ctx, summaryDate, w)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("PK\x03\x04"))
	}
	return args.Error(0)
}

var _ portssvc.CashSummarySvc = (*MockCashSummaryService)(nil)

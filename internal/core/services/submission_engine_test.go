package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SubmissionEngineTestSuite struct {
	suite.Suite
	loans    *MockLoanGateway
	receipts *MockReceiptGateway
	ledger   *services.Ledger
	engine   *services.SubmissionEngine
}

func (suite *SubmissionEngineTestSuite) SetupTest() {
	suite.loans = new(MockLoanGateway)
	suite.receipts = new(MockReceiptGateway)
	suite.ledger = services.NewLedger(suite.loans)
	suite.ledger.Load(sampleSelection(), sampleLines())
	suite.engine = services.NewSubmissionEngine(suite.ledger, suite.receipts, false)
}

func (suite *SubmissionEngineTestSuite) pay(loanID, amount string) {
	_, err := suite.ledger.SetPayment(loanID, amount)
	suite.Require().NoError(err)
}

func batchWith(total string, loanIDs ...string) interface{} {
	return mock.MatchedBy(func(b domain.PaymentBatch) bool {
		if !b.EnteredTotal.Equal(dec(total)) || len(b.Lines) != len(loanIDs) {
			return false
		}
		for i, id := range loanIDs {
			if b.Lines[i].LoanID != id {
				return false
			}
		}
		return b.BranchID == "B1" && b.UserBranchID == "UB9"
	})
}

func (suite *SubmissionEngineTestSuite) TestSave_MatchingTotalNoPrompt() {
	ctx := context.Background()
	suite.pay("L1", "100")
	suite.pay("L2", "200")

	confirmer := &countingConfirmer{}
	suite.receipts.On("GenerateReceipt", mock.Anything, batchWith("300", "L1", "L2")).Return("RCT-00123", nil).Once()

	res, err := suite.engine.Save(ctx, "300", confirmer)

	suite.Require().NoError(err)
	suite.Equal("RCT-00123", res.ReceiptNo)
	suite.Contains(res.Message, "RCT-00123")
	suite.Equal("Total amount of Receipt No RCT-00123 and payments saved successfully.", res.Message)
	suite.Zero(confirmer.calls)
	suite.Equal(domain.SubmissionIdle, suite.engine.State())
	suite.Empty(suite.ledger.PaymentBatchLines(), "pay amounts are cleared after a successful save")
	suite.receipts.AssertExpectations(suite.T())
}

func (suite *SubmissionEngineTestSuite) TestSave_MismatchDeclined() {
	suite.pay("L1", "100")
	suite.pay("L2", "200")

	res, err := suite.engine.Save(context.Background(), "250", nil)

	suite.Nil(res)
	suite.ErrorIs(err, services.ErrSubmissionDeclined)
	var declined *services.DeclinedError
	suite.Require().True(errors.As(err, &declined))
	suite.Equal(domain.PromptMismatch, declined.Prompt.Kind)
	suite.True(declined.Prompt.Computed.Equal(dec("300")))
	suite.True(declined.Prompt.Entered.Equal(dec("250")))
	suite.Contains(declined.Prompt.Message, "(300)")
	suite.Contains(declined.Prompt.Message, "(250)")

	suite.receipts.AssertNotCalled(suite.T(), "GenerateReceipt", mock.Anything, mock.Anything)
	suite.Len(suite.ledger.PaymentBatchLines(), 2, "a declined prompt changes nothing")
}

func (suite *SubmissionEngineTestSuite) TestSave_MismatchAccepted() {
	suite.pay("L3", "150.50")

	suite.receipts.On("GenerateReceipt", mock.Anything, batchWith("200", "L3")).Return("RCT-9", nil).Once()

	res, err := suite.engine.Save(context.Background(), "200", acceptAll())

	suite.Require().NoError(err)
	suite.Equal("RCT-9", res.ReceiptNo)
	suite.receipts.AssertExpectations(suite.T())
}

func (suite *SubmissionEngineTestSuite) TestSave_NoPaymentsPromptsBeforeNetwork() {
	confirmer := &countingConfirmer{}

	_, err := suite.engine.Save(context.Background(), "100", confirmer)

	var declined *services.DeclinedError
	suite.Require().True(errors.As(err, &declined))
	suite.Equal(domain.PromptNoPayments, declined.Prompt.Kind)
	suite.Equal(1, confirmer.calls)
	suite.receipts.AssertNotCalled(suite.T(), "GenerateReceipt", mock.Anything, mock.Anything)
}

func (suite *SubmissionEngineTestSuite) TestSave_NoPaymentsAccepted() {
	suite.receipts.On("GenerateReceipt", mock.Anything, batchWith("100")).Return("RCT-1", nil).Once()

	res, err := suite.engine.Save(context.Background(), "100", acceptAll())

	suite.Require().NoError(err)
	suite.Equal("RCT-1", res.ReceiptNo)
}

func (suite *SubmissionEngineTestSuite) TestSave_InvalidTotal() {
	for _, raw := range []string{"", "abc", "0", "-5", "1e5", "1e20000000", "1,2,3"} {
		_, err := suite.engine.Save(context.Background(), raw, acceptAll())
		suite.ErrorIs(err, services.ErrInvalidTotal, raw)
		suite.ErrorIs(err, apperrors.ErrValidation, raw)
	}
	suite.receipts.AssertNotCalled(suite.T(), "GenerateReceipt", mock.Anything, mock.Anything)
}

func (suite *SubmissionEngineTestSuite) TestSave_ServerErrorVerbatim() {
	suite.pay("L1", "100")
	suite.receipts.On("GenerateReceipt", mock.Anything, mock.Anything).
		Return("", &apperrors.ServerError{Endpoint: "/MFReceipt/generateReceipt", Status: 500, Body: "insufficient funds"}).Once()

	res, err := suite.engine.Save(context.Background(), "100", nil)

	suite.Nil(res)
	suite.EqualError(err, "insufficient funds")
	suite.Equal("insufficient funds", apperrors.UserMessage(err))
	suite.Equal(domain.SubmissionIdle, suite.engine.State())
	suite.Len(suite.ledger.PaymentBatchLines(), 1, "pay amounts survive a failed save")

	// The ledger is editable again.
	_, err = suite.ledger.SetPayment("L2", "50")
	suite.NoError(err)
}

func (suite *SubmissionEngineTestSuite) TestSave_TransportFailureKeepsPayments() {
	failures := map[string]error{
		"network": &apperrors.NetworkError{Endpoint: "generateReceipt", Err: errors.New("connection refused")},
		"timeout": &apperrors.TimeoutError{Endpoint: "generateReceipt", Err: context.DeadlineExceeded},
	}
	for name, failure := range failures {
		suite.Run(name, func() {
			suite.SetupTest()
			suite.pay("L1", "100")
			suite.pay("L3", "50")
			suite.receipts.On("GenerateReceipt", mock.Anything, mock.Anything).Return("", failure).Once()

			res, err := suite.engine.Save(context.Background(), "150", nil)

			suite.Nil(res)
			suite.ErrorIs(err, failure)
			suite.Equal(domain.SubmissionIdle, suite.engine.State())

			paid := suite.ledger.PaymentBatchLines()
			suite.Require().Len(paid, 2)
			suite.Equal("L1", paid[0].LoanID)
			suite.True(dec("100").Equal(*paid[0].PayAmount))
			suite.Equal("L3", paid[1].LoanID)
			suite.True(dec("50").Equal(*paid[1].PayAmount))

			_, err = suite.ledger.SetPayment("L2", "25")
			suite.NoError(err)
			suite.receipts.AssertNumberOfCalls(suite.T(), "GenerateReceipt", 1)
		})
	}
}

func (suite *SubmissionEngineTestSuite) TestSave_ConcurrentSingleFlight() {
	suite.pay("L1", "100")
	release := make(chan struct{})
	suite.receipts.On("GenerateReceipt", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return("RCT-7", nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = suite.engine.Save(context.Background(), "100", nil)
	}()

	suite.Eventually(func() bool { return suite.engine.State() == domain.SubmissionSaving }, time.Second, 5*time.Millisecond)

	_, err := suite.engine.Save(context.Background(), "100", nil)
	suite.ErrorIs(err, services.ErrSubmissionInProgress)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.ledger.SetPayment("L2", "10")
	suite.ErrorIs(err, services.ErrLedgerLocked, "the ledger is read-only while saving")

	close(release)
	wg.Wait()
	suite.NoError(firstErr)
	suite.receipts.AssertNumberOfCalls(suite.T(), "GenerateReceipt", 1)
}

func (suite *SubmissionEngineTestSuite) TestSave_EmptyLedger() {
	engine := services.NewSubmissionEngine(services.NewLedger(suite.loans), suite.receipts, false)

	_, err := engine.Save(context.Background(), "100", acceptAll())

	suite.ErrorIs(err, services.ErrNoSelection)
}

func (suite *SubmissionEngineTestSuite) TestSaveAndRefresh() {
	engine := services.NewSubmissionEngine(suite.ledger, suite.receipts, true)
	suite.pay("L1", "100")
	suite.receipts.On("GenerateReceipt", mock.Anything, mock.Anything).Return("RCT-2", nil).Once()
	refreshed := sampleLines()[:2]
	suite.loans.On("GetLoanDetails", mock.Anything, "C7", "").Return(refreshed, nil).Once()

	res, err := engine.SaveAndRefresh(context.Background(), "100", nil)

	suite.Require().NoError(err)
	suite.True(res.Refreshed)
	suite.Empty(res.RefreshError)
	suite.Len(suite.ledger.Lines(), 2)
	suite.loans.AssertExpectations(suite.T())
}

func (suite *SubmissionEngineTestSuite) TestSaveAndRefresh_RefreshFailureIsReported() {
	engine := services.NewSubmissionEngine(suite.ledger, suite.receipts, true)
	suite.pay("L1", "100")
	suite.receipts.On("GenerateReceipt", mock.Anything, mock.Anything).Return("RCT-3", nil).Once()
	suite.loans.On("GetLoanDetails", mock.Anything, "C7", "").
		Return(nil, &apperrors.NetworkError{Endpoint: "/MFReceipt/getLoanDetails", Err: errors.New("connection refused")}).Once()

	res, err := engine.SaveAndRefresh(context.Background(), "100", nil)

	suite.Require().NoError(err)
	suite.Equal("RCT-3", res.ReceiptNo)
	suite.False(res.Refreshed)
	suite.Equal("Network error. Please check your connection.", res.RefreshError)
}

func TestSubmissionEngineTestSuite(t *testing.T) {
	suite.Run(t, new(SubmissionEngineTestSuite))
}

type countingConfirmer struct {
	calls int
}

func (c *countingConfirmer) Confirm(context.Context, domain.ConfirmationPrompt) bool {
	c.calls++
	return false
}

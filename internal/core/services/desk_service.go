package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/metrics"
	"github.com/google/uuid"
)

// desk is one cashier screen: a selection form, its ledger and a submission engine.
type desk struct {
	id           string
	username     string
	userBranchID string
	form         *SelectionForm
	ledger       *Ledger
	engine       *SubmissionEngine
}

func (d *desk) view(search string) *domain.DeskView {
	return &domain.DeskView{
		ID:         d.id,
		Username:   d.username,
		Selection:  d.form.View(),
		Ledger:     d.ledger.View(search),
		Submission: d.engine.State(),
	}
}

// DeskOptions tunes the behaviour of new desks.
type DeskOptions struct {
	RequireGroup       bool
	RefreshAfterSubmit bool
}

type deskService struct {
	BaseService
	mu       sync.RWMutex
	desks    map[string]*desk
	loans    gateways.LoanGateway
	receipts gateways.ReceiptGateway
	sessions portssvc.SessionReaderSvc
	opts     DeskOptions
}

// NewDeskService creates the in-process desk registry.
func NewDeskService(loans gateways.LoanGateway, receipts gateways.ReceiptGateway, sessions portssvc.SessionReaderSvc, opts DeskOptions) portssvc.DeskSvcFacade {
	return &deskService{
		desks:    make(map[string]*desk),
		loans:    loans,
		receipts: receipts,
		sessions: sessions,
		opts:     opts,
	}
}

var _ portssvc.DeskSvcFacade = (*deskService)(nil)

// get returns the desk when it belongs to username.
func (s *deskService) get(deskID, username string) (*desk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.desks[deskID]
	if !ok || d.username != username {
		return nil, apperrors.ErrNotFound
	}
	return d, nil
}

func (s *deskService) Open(ctx context.Context, username, userBranchID string) (*domain.DeskView, error) {
	if userBranchID == "" && s.sessions != nil {
		session, err := s.sessions.GetSession(ctx, username)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to read session for desk", slog.String("username", username))
			return nil, err
		}
		if session != nil {
			userBranchID = session.UserBranchID
		}
	}

	ledger := NewLedger(s.loans)
	d := &desk{
		id:           uuid.NewString(),
		username:     username,
		userBranchID: userBranchID,
		form:         NewSelectionForm(s.opts.RequireGroup),
		ledger:       ledger,
		engine:       NewSubmissionEngine(ledger, s.receipts, s.opts.RefreshAfterSubmit),
	}

	s.mu.Lock()
	s.desks[d.id] = d
	s.mu.Unlock()
	metrics.OpenDesks.Inc()

	s.LogInfo(ctx, "Desk opened", slog.String("desk_id", d.id), slog.String("username", username))
	return d.view(""), nil
}

func (s *deskService) View(ctx context.Context, deskID, username string) (*domain.DeskView, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	return d.view(""), nil
}

func (s *deskService) Close(ctx context.Context, deskID, username string) error {
	s.mu.Lock()
	d, ok := s.desks[deskID]
	if !ok || d.username != username {
		s.mu.Unlock()
		return apperrors.ErrNotFound
	}
	delete(s.desks, deskID)
	s.mu.Unlock()

	d.ledger.close()
	metrics.OpenDesks.Dec()
	s.LogInfo(ctx, "Desk closed", slog.String("desk_id", deskID), slog.String("username", username))
	return nil
}

func (s *deskService) CloseAll(ctx context.Context, username string) int {
	s.mu.Lock()
	closed := make([]*desk, 0)
	for id, d := range s.desks {
		if d.username == username {
			closed = append(closed, d)
			delete(s.desks, id)
		}
	}
	s.mu.Unlock()

	for _, d := range closed {
		d.ledger.close()
		metrics.OpenDesks.Dec()
	}
	if len(closed) > 0 {
		s.LogInfo(ctx, "Desks closed", slog.String("username", username), slog.Int("count", len(closed)))
	}
	return len(closed)
}

func (s *deskService) UpdateSelection(ctx context.Context, deskID, username string, fields map[string]string) (*domain.SelectionFormView, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	unknown := apperrors.FieldErrors{}
	for name, value := range fields {
		if err := d.form.SetField(name, value); err != nil {
			var fe apperrors.FieldErrors
			if errors.As(err, &fe) {
				for k, v := range fe {
					unknown[k] = v
				}
				continue
			}
			return nil, err
		}
	}
	if len(unknown) > 0 {
		return nil, unknown
	}
	view := d.form.View()
	return &view, nil
}

func (s *deskService) SubmitSelection(ctx context.Context, deskID, username string) (*domain.LedgerView, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	res, err := d.form.Submit(ctx, s.loans, d.userBranchID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to load ledger", slog.String("desk_id", deskID))
		}
		return nil, err
	}
	// The desk may have been closed while the fetch ran.
	if _, err := s.get(deskID, username); err != nil {
		return nil, err
	}
	d.ledger.Load(res.Context, res.Lines)
	s.LogDebug(ctx, "Ledger loaded",
		slog.String("desk_id", deskID),
		slog.String("center_id", res.Context.CenterID),
		slog.Int("lines", len(res.Lines)))
	view := d.ledger.View(res.Context.Search)
	return &view, nil
}

func (s *deskService) GetLedger(ctx context.Context, deskID, username, search string) (*domain.LedgerView, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	view := d.ledger.View(search)
	return &view, nil
}

func (s *deskService) SetPayment(ctx context.Context, deskID, username, loanID, amount string) (*domain.LoanReceiptLine, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	line, err := d.ledger.SetPayment(loanID, amount)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *deskService) ClearPayment(ctx context.Context, deskID, username, loanID string) (*domain.LoanReceiptLine, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	line, err := d.ledger.ClearPayment(loanID)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *deskService) RefreshLedger(ctx context.Context, deskID, username string) (*domain.LedgerView, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	view, err := d.ledger.Refresh(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to refresh ledger", slog.String("desk_id", deskID))
		}
		return nil, err
	}
	return &view, nil
}

func (s *deskService) Submit(ctx context.Context, deskID, username, enteredTotal string, confirmer portssvc.Confirmer) (*domain.ReceiptSubmissionResult, error) {
	d, err := s.get(deskID, username)
	if err != nil {
		return nil, err
	}
	return d.engine.SaveAndRefresh(ctx, enteredTotal, confirmer)
}

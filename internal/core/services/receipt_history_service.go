package services

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/go-playground/validator/v10"
)

type receiptHistoryService struct {
	BaseService
	gateway  gateways.ReceiptGateway
	validate *validator.Validate
}

// NewReceiptHistoryService creates the receipt listing and cancellation service.
func NewReceiptHistoryService(gateway gateways.ReceiptGateway) portssvc.ReceiptHistorySvc {
	return &receiptHistoryService{gateway: gateway, validate: newValidator()}
}

var _ portssvc.ReceiptHistorySvc = (*receiptHistoryService)(nil)

// newValidator reports field errors under their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors converts validator output into apperrors.FieldErrors.
func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := apperrors.FieldErrors{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fe.Field() + " is required"
		default:
			out[fe.Field()] = fe.Field() + " failed " + fe.Tag() + " validation"
		}
	}
	return out
}

// ListReceipts returns the receipts of a center for one day.
func (s *receiptHistoryService) ListReceipts(ctx context.Context, centerID string, receiptDate time.Time) ([]domain.ReceiptRecord, error) {
	form := NewReceiptLookupForm()
	_ = form.SetField(domain.FieldCenter, centerID)
	_ = form.SetField(domain.FieldDate, domain.FormatDate(receiptDate))

	records, err := form.SubmitReceiptLookup(ctx, s.gateway)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list receipts", slog.String("center_id", centerID))
		}
		return nil, err
	}
	return records, nil
}

// CancelReceipt cancels one receipt. Both the id and the reason are required.
func (s *receiptHistoryService) CancelReceipt(ctx context.Context, req portssvc.CancelReceiptRequest) (string, error) {
	req.ReceiptID = strings.TrimSpace(req.ReceiptID)
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate.Struct(req); err != nil {
		return "", fieldErrors(err)
	}

	msg, err := s.gateway.CancelReceipt(ctx, req.ReceiptID, req.Reason)
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel receipt", slog.String("receipt_id", req.ReceiptID))
		return "", err
	}
	s.LogInfo(ctx, "Receipt cancelled", slog.String("receipt_id", req.ReceiptID))
	if msg == "" {
		msg = "Receipt " + req.ReceiptID + " cancelled."
	}
	return msg, nil
}

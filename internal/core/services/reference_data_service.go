package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
)

type referenceDataService struct {
	BaseService
	gateway gateways.ReferenceDataGateway
}

// NewReferenceDataService creates the dropdown list fetcher.
func NewReferenceDataService(gateway gateways.ReferenceDataGateway) portssvc.ReferenceDataSvc {
	return &referenceDataService{gateway: gateway}
}

var _ portssvc.ReferenceDataSvc = (*referenceDataService)(nil)

// FetchList resolves one lookup list. Centers are filtered by branch id and groups by center id.
func (s *referenceDataService) FetchList(ctx context.Context, kind domain.LookupKind, filter string) ([]domain.LookupItem, error) {
	filter = strings.TrimSpace(filter)
	if kind.NeedsFilter() && filter == "" {
		return nil, apperrors.FieldErrors{"filter": fmt.Sprintf("a parent id is required to list %s items", kind)}
	}

	var (
		items []domain.LookupItem
		err   error
	)
	switch kind {
	case domain.LookupCashierBranch:
		items, err = s.gateway.ListCashierBranches(ctx)
	case domain.LookupBranch:
		items, err = s.gateway.ListLoanBranches(ctx)
	case domain.LookupCenter:
		items, err = s.gateway.ListBranchCenters(ctx, filter)
	case domain.LookupGroup:
		items, err = s.gateway.ListCenterGroups(ctx, filter)
	default:
		return nil, fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lookup list", slog.String("kind", string(kind)), slog.String("filter", filter))
		return nil, err
	}
	if items == nil {
		items = []domain.LookupItem{}
	}
	return items, nil
}

// FilterItems is the dropdown search: a case-insensitive substring match on
// the label. An empty search returns items unchanged, in server order.
func FilterItems(items []domain.LookupItem, search string) []domain.LookupItem {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}
	out := make([]domain.LookupItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), search) {
			out = append(out, item)
		}
	}
	return out
}

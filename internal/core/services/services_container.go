package services

import (
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
	"github.com/SscSPs/mf_receipt_desk/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, backend gateways.MFBackend) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Auth first since desks read the persisted session
	container.Auth = NewAuthService(backend, repos.ClientState)

	container.ReferenceData = NewReferenceDataService(backend)
	container.Desk = NewDeskService(backend, backend, container.Auth, DeskOptions{
		RequireGroup:       cfg.SelectionRequireGroup,
		RefreshAfterSubmit: cfg.LedgerRefreshAfterSubmit,
	})
	container.ReceiptHistory = NewReceiptHistoryService(backend)
	container.CashSummary = NewCashSummaryService(backend)

	return container
}

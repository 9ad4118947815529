package services

import (
	"context"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

// SessionReaderSvc reads the persisted cashier session.
type SessionReaderSvc interface {
	// GetSession rebuilds the session from the client state store.
	GetSession(ctx context.Context, username string) (*domain.Session, error)

	// SessionCookie returns the MF backend cookie stored for username.
	SessionCookie(ctx context.Context, username string) (string, error)
}

// AuthSvc defines the login lifecycle against the MF backend.
type AuthSvc interface {
	// Login validates the credentials, logs in upstream and persists the session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Logout ends the upstream session and clears the persisted keys.
	Logout(ctx context.Context, username string) error

	// IsAuthenticated asks the MF backend whether the stored session is still valid.
	IsAuthenticated(ctx context.Context, username string) (bool, error)
}

// AuthSvcFacade combines all session-related service interfaces.
type AuthSvcFacade interface {
	SessionReaderSvc
	AuthSvc
}

package dto

import (
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

// LoginRequest carries the cashier's MF backend credentials.
// Presence and length are checked by the auth service so the messages match the login screen.
type LoginRequest struct {
	Username string `json:"username" binding:"max=256"`
	Password string `json:"password" binding:"max=256"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      SessionResponse `json:"user"`
}

// SessionResponse is the cashier identity returned to the screen host.
type SessionResponse struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	UserBranchID string `json:"userBranchId,omitempty"`
}

// ToSessionResponse converts a domain session. The MF cookie never leaves the desk service.
func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		Username:     s.Username,
		FullName:     s.FullName,
		UserBranchID: s.UserBranchID,
	}
}

// LogoutResponse reports the logout. UpstreamError is set when the MF backend
// could not be told; the local session is cleared either way.
type LogoutResponse struct {
	Message       string `json:"message"`
	ClosedDesks   int    `json:"closedDesks"`
	UpstreamError string `json:"upstreamError,omitempty"`
}

// AuthStatusResponse answers GET /auth/status.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

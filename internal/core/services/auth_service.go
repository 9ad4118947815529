package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mf_receipt_desk/internal/core/ports/services"
)

const minPasswordLength = 6

type authService struct {
	BaseService
	gateway gateways.AuthGateway
	state   portsrepo.ClientStateStore
}

// NewAuthService creates the login lifecycle service.
func NewAuthService(gateway gateways.AuthGateway, state portsrepo.ClientStateStore) portssvc.AuthSvcFacade {
	return &authService{gateway: gateway, state: state}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// stateKey namespaces a client state key by cashier.
func stateKey(username, key string) string {
	return username + ":" + key
}

func validateCredentials(username, password string) error {
	errs := apperrors.FieldErrors{}
	if username == "" {
		errs["username"] = "Username or email is required"
	}
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case utf8.RuneCountInString(password) < minPasswordLength:
		errs["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Login validates the input, authenticates upstream and persists the session keys.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	res, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			s.LogWarn(ctx, "Login rejected", slog.String("username", username))
		} else {
			s.LogError(ctx, err, "Login failed", slog.String("username", username))
		}
		return nil, err
	}

	values := []struct {
		key, value string
		optional   bool
	}{
		{domain.StateKeyUserData, string(res.UserData), false},
		{domain.StateKeyUserName, res.FullName, false},
		{domain.StateKeySessionCookie, res.SessionCookie, true},
		{domain.StateKeyUserBranchID, res.UserBranchID, true},
	}
	for _, kv := range values {
		key, value := kv.key, kv.value
		if kv.optional && value == "" {
			continue
		}
		if err := s.state.Set(ctx, stateKey(username, key), value); err != nil {
			s.LogError(ctx, err, "Failed to persist session", slog.String("username", username), slog.String("key", key))
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
	}

	s.LogInfo(ctx, "Cashier logged in", slog.String("username", username))
	return &domain.Session{
		Username:      username,
		FullName:      res.FullName,
		UserBranchID:  res.UserBranchID,
		UserData:      res.UserData,
		SessionCookie: res.SessionCookie,
	}, nil
}

// Logout ends the upstream session and clears the stored keys. The keys are
// cleared even when the upstream call fails; that error is still returned.
func (s *authService) Logout(ctx context.Context, username string) error {
	cookie, err := s.SessionCookie(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	upstreamErr := s.gateway.Logout(gateways.ContextWithSessionCookie(ctx, cookie))
	if upstreamErr != nil {
		s.LogError(ctx, upstreamErr, "Upstream logout failed", slog.String("username", username))
	}

	keys := make([]string, 0, len(domain.SessionStateKeys))
	for _, k := range domain.SessionStateKeys {
		keys = append(keys, stateKey(username, k))
	}
	if err := s.state.Delete(ctx, keys...); err != nil {
		s.LogError(ctx, err, "Failed to clear session", slog.String("username", username))
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.LogInfo(ctx, "Cashier logged out", slog.String("username", username))
	return upstreamErr
}

// IsAuthenticated asks the backend whether the stored cookie is still valid.
// A cashier with no stored session is not authenticated.
func (s *authService) IsAuthenticated(ctx context.Context, username string) (bool, error) {
	if _, err := s.state.Get(ctx, stateKey(username, domain.StateKeyUserName)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	cookie, err := s.SessionCookie(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	return s.gateway.IsAuthenticated(gateways.ContextWithSessionCookie(ctx, cookie))
}

// SessionCookie returns the stored MF backend cookie, or apperrors.ErrNotFound.
func (s *authService) SessionCookie(ctx context.Context, username string) (string, error) {
	return s.state.Get(ctx, stateKey(username, domain.StateKeySessionCookie))
}

// GetSession rebuilds the session from the stored keys.
func (s *authService) GetSession(ctx context.Context, username string) (*domain.Session, error) {
	fullName, err := s.state.Get(ctx, stateKey(username, domain.StateKeyUserName))
	if err != nil {
		return nil, err
	}
	session := &domain.Session{Username: username, FullName: fullName}

	if raw, err := s.state.Get(ctx, stateKey(username, domain.StateKeyUserData)); err == nil && raw != "" {
		session.UserData = json.RawMessage(raw)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	branch, err := s.state.Get(ctx, stateKey(username, domain.StateKeyUserBranchID))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	session.UserBranchID = branch

	cookie, err := s.SessionCookie(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	session.SessionCookie = cookie
	return session, nil
}

package mfapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/SscSPs/mf_receipt_desk/internal/apperrors"
	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
)

const invalidCredentialsMessage = "Invalid Credentials!"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against /auth/login and captures the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	const endpoint = "login"
	resp, err := c.roundTrip(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/auth/login",
		payload:  loginRequest{Username: username, Password: password},
		timeout:  c.authTimeout,
	})
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		msg := messageField(resp.body)
		if resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden {
			if msg == "" {
				msg = invalidCredentialsMessage
			}
			return nil, &apperrors.CredentialsError{Message: msg}
		}
		if msg == "" {
			msg = string(resp.body)
		}
		return nil, &apperrors.ServerError{Endpoint: endpoint, Status: resp.status, Body: msg}
	}

	rec, err := decodeObject(endpoint, resp.body)
	if err != nil {
		return nil, err
	}

	user := firstUser(rec)
	if user == nil || user.str("FullName") == "" {
		msg := rec.str("message")
		if msg == "" {
			msg = invalidCredentialsMessage
		}
		return nil, &apperrors.CredentialsError{Message: msg}
	}

	return &domain.LoginResult{
		FullName:      user.str("FullName"),
		UserBranchID:  user.str("UserBranchID", "BranchID", "BranchId"),
		UserData:      json.RawMessage(append([]byte(nil), resp.body...)),
		SessionCookie: sessionCookie(resp.header),
	}, nil
}

// Logout ends the session carried by ctx.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, call{
		endpoint: "logout",
		method:   http.MethodPost,
		path:     "/auth/logout",
		payload:  emptyBody,
		timeout:  c.timeout,
	})
	return err
}

// IsAuthenticated reports whether the backend still accepts the session
// carried by ctx. 401 and 403 mean no; other failures are errors.
func (c *Client) IsAuthenticated(ctx context.Context) (bool, error) {
	const endpoint = "isAuthenticated"
	resp, err := c.roundTrip(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/auth/isAuthenticated",
		payload:  emptyBody,
		timeout:  c.authTimeout,
	})
	if err != nil {
		return false, err
	}
	switch {
	case resp.ok():
		return true, nil
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return false, nil
	default:
		return false, &apperrors.ServerError{Endpoint: endpoint, Status: resp.status, Body: string(resp.body)}
	}
}

func firstUser(rec record) record {
	v, ok := rec.lookup("user")
	if !ok {
		return nil
	}
	users, ok := v.([]any)
	if !ok || len(users) == 0 {
		return nil
	}
	obj, ok := users[0].(map[string]any)
	if !ok {
		return nil
	}
	return newRecord(obj)
}

// messageField returns the "message" of a JSON error body, or "".
func messageField(body []byte) string {
	rec, err := decodeObject("", body)
	if err != nil {
		return ""
	}
	return rec.str("message")
}

// sessionCookie folds every Set-Cookie header into a Cookie header value.
func sessionCookie(h http.Header) string {
	var pairs []string
	for _, line := range h.Values("Set-Cookie") {
		pair, _, _ := strings.Cut(line, ";")
		if pair = strings.TrimSpace(pair); pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return strings.Join(pairs, "; ")
}

package domain

import "encoding/json"

// Client state keys persisted per cashier.
const (
	StateKeyUserData      = "userData"
	StateKeyUserName      = "userName"
	StateKeySessionCookie = "sessionCookie"
	StateKeyUserBranchID  = "userBranchId"
)

// SessionStateKeys lists every key cleared on logout.
var SessionStateKeys = []string{StateKeyUserData, StateKeyUserName, StateKeySessionCookie, StateKeyUserBranchID}

// LoginResult is what the MF backend returns for a successful login.
type LoginResult struct {
	FullName      string
	UserBranchID  string
	UserData      json.RawMessage
	SessionCookie string
}

// Session is the cashier identity held by the desk.
type Session struct {
	Username      string          `json:"username"`
	FullName      string          `json:"fullName"`
	UserBranchID  string          `json:"userBranchId,omitempty"`
	UserData      json.RawMessage `json:"userData,omitempty"`
	SessionCookie string          `json:"-"`
}

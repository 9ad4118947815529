package models

import (
	"database/sql"
	"time"
)

// ClientState is one row of the client_state table.
type ClientState struct {
	Key           string       `db:"state_key"`
	Value         string       `db:"state_value"`
	ExpiresAt     sql.NullTime `db:"expires_at"`
	CreatedAt     time.Time    `db:"created_at"`
	LastUpdatedAt time.Time    `db:"last_updated_at"`
}

// Expired reports whether the row is past its expiry at now.
func (s ClientState) Expired(now time.Time) bool {
	return s.ExpiresAt.Valid && !s.ExpiresAt.Time.After(now)
}

package models_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/mf_receipt_desk/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClientState_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, models.ClientState{}.Expired(now), "no expiry never expires")
	assert.False(t, models.ClientState{ExpiresAt: sql.NullTime{Time: now.Add(time.Minute), Valid: true}}.Expired(now))
	assert.True(t, models.ClientState{ExpiresAt: sql.NullTime{Time: now, Valid: true}}.Expired(now))
	assert.True(t, models.ClientState{ExpiresAt: sql.NullTime{Time: now.Add(-time.Second), Valid: true}}.Expired(now))
}

package dto_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SscSPs/mf_receipt_desk/internal/core/domain"
	"github.com/SscSPs/mf_receipt_desk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountInput_StringOrNumber(t *testing.T) {
	tests := []struct {
		body string
		want dto.AmountInput
	}{
		{`{"amount":"1,250.50"}`, "1,250.50"},
		{`{"amount":1250.5}`, "1250.5"},
		{`{"amount":0.1}`, "0.1"},
		{`{"amount":null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var req dto.SetPaymentRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.want, req.Amount, tt.body)
	}

	var req dto.SetPaymentRequest
	assert.Error(t, json.Unmarshal([]byte(`{"amount":true}`), &req))
}

func TestSubmitReceiptRequest_Confirmer(t *testing.T) {
	ctx := context.Background()
	noPayments := domain.ConfirmationPrompt{Kind: domain.PromptNoPayments}
	mismatch := domain.ConfirmationPrompt{Kind: domain.PromptMismatch}

	c := dto.SubmitReceiptRequest{AcceptMismatch: true}.Confirmer()
	assert.True(t, c.Confirm(ctx, mismatch))
	assert.False(t, c.Confirm(ctx, noPayments))

	c = dto.SubmitReceiptRequest{AcceptNoPayments: true}.Confirmer()
	assert.True(t, c.Confirm(ctx, noPayments))
	assert.False(t, c.Confirm(ctx, mismatch))
}

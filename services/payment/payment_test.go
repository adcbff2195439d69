package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindhaven/models"
)

func validInstrument() models.PaymentInstrument {
	return models.PaymentInstrument{
		Method:     "credit",
		CardNumber: "4242424242424242",
		ExpiryDate: "12/28",
		CVV:        "123",
	}
}

func newTestHandler() *SimulatedPaymentHandler {
	return NewPaymentHandler(zap.NewNop(), 5*time.Millisecond)
}

func TestSubmit_ValidInstrumentSettles(t *testing.T) {
	h := newTestHandler()

	record, err := h.Submit(context.Background(), validInstrument())
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "success", record.Status)
	assert.Equal(t, ConsultationFee, record.Amount)
	assert.Equal(t, Currency, record.Currency)
	assert.Equal(t, "credit", record.Method)
	assert.Equal(t, "4242", record.Last4)
	assert.NotEmpty(t, record.TransactionID)
	assert.False(t, record.Timestamp.IsZero())
}

func TestSubmit_ShortCardRejectedImmediately(t *testing.T) {
	// A handler with a long delay proves validation precedes settlement.
	h := NewPaymentHandler(zap.NewNop(), time.Minute)

	instrument := validInstrument()
	instrument.CardNumber = "12345"

	start := time.Now()
	record, err := h.Submit(context.Background(), instrument)
	require.Nil(t, record)

	var invalid *InvalidInstrumentError
	require.True(t, errors.As(err, &invalid))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSubmit_Validation(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		name   string
		mutate func(*models.PaymentInstrument)
	}{
		{"non-digit card", func(i *models.PaymentInstrument) { i.CardNumber = "4242abcd42424242" }},
		{"seventeen digits", func(i *models.PaymentInstrument) { i.CardNumber = "42424242424242420" }},
		{"two-digit cvv", func(i *models.PaymentInstrument) { i.CVV = "12" }},
		{"four-digit cvv", func(i *models.PaymentInstrument) { i.CVV = "1234" }},
		{"letters in cvv", func(i *models.PaymentInstrument) { i.CVV = "12a" }},
		{"unknown method", func(i *models.PaymentInstrument) { i.Method = "crypto" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			instrument := validInstrument()
			tc.mutate(&instrument)

			record, err := h.Submit(context.Background(), instrument)
			assert.Nil(t, record)
			var invalid *InvalidInstrumentError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestSubmit_DebitMethodEchoed(t *testing.T) {
	h := newTestHandler()
	instrument := validInstrument()
	instrument.Method = "debit"

	record, err := h.Submit(context.Background(), instrument)
	require.NoError(t, err)
	assert.Equal(t, "debit", record.Method)
}

func TestSubmit_TransactionIDsUnique(t *testing.T) {
	h := newTestHandler()

	first, err := h.Submit(context.Background(), validInstrument())
	require.NoError(t, err)
	second, err := h.Submit(context.Background(), validInstrument())
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestSubmit_ContextCancelledDuringSettlement(t *testing.T) {
	h := NewPaymentHandler(zap.NewNop(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	record, err := h.Submit(ctx, validInstrument())
	assert.Nil(t, record)
	assert.ErrorIs(t, err, context.Canceled)
}

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindhaven/models"
)

// ConsultationFee is the fixed fee charged for every booking.
const (
	ConsultationFee = 150.00
	Currency        = "USD"
)

// InvalidInstrumentError reports a malformed payment instrument. It is
// recoverable: the client corrects the instrument and resubmits.
type InvalidInstrumentError struct {
	Reason string
}

func (e *InvalidInstrumentError) Error() string {
	return fmt.Sprintf("invalid payment instrument: %s", e.Reason)
}

// PaymentSimulator settles payment instruments against the fixed
// consultation fee. Well-formed instruments always settle successfully; the
// simulator never models declines or fraud.
type PaymentSimulator interface {
	Submit(ctx context.Context, instrument models.PaymentInstrument) (*models.PaymentRecord, error)
}

// SimulatedPaymentHandler implements PaymentSimulator with a simulated
// settlement delay.
type SimulatedPaymentHandler struct {
	logger *zap.Logger
	delay  time.Duration
}

func NewPaymentHandler(logger *zap.Logger, delay time.Duration) *SimulatedPaymentHandler {
	return &SimulatedPaymentHandler{logger: logger, delay: delay}
}

// Submit validates the instrument and, if well-formed, settles it after the
// configured delay. Validation happens before any delay: a malformed
// instrument fails immediately with InvalidInstrumentError and produces no
// record. Each successful settlement carries a transaction id unique to that
// call.
func (h *SimulatedPaymentHandler) Submit(ctx context.Context, instrument models.PaymentInstrument) (*models.PaymentRecord, error) {
	if err := validateInstrument(instrument); err != nil {
		return nil, err
	}

	select {
	case <-time.After(h.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	record := &models.PaymentRecord{
		TransactionID: uuid.New().String(),
		Amount:        ConsultationFee,
		Currency:      Currency,
		Status:        "success",
		Timestamp:     time.Now().UTC(),
		Method:        instrument.Method,
		Last4:         instrument.CardNumber[len(instrument.CardNumber)-4:],
	}

	h.logger.Info("Payment settled",
		zap.String("transactionId", record.TransactionID),
		zap.String("method", record.Method),
		zap.Float64("amount", record.Amount))
	return record, nil
}

func validateInstrument(instrument models.PaymentInstrument) error {
	if instrument.Method != "credit" && instrument.Method != "debit" {
		return &InvalidInstrumentError{Reason: fmt.Sprintf("unsupported payment method %q", instrument.Method)}
	}
	if !isDigits(instrument.CardNumber) || len(instrument.CardNumber) != 16 {
		return &InvalidInstrumentError{Reason: "card number must be exactly 16 digits"}
	}
	if !isDigits(instrument.CVV) || len(instrument.CVV) != 3 {
		return &InvalidInstrumentError{Reason: "CVV must be exactly 3 digits"}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

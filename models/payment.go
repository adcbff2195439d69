package models

import "time"

// PaymentInstrument is the card detail submitted for a booking payment.
type PaymentInstrument struct {
	Method     string `json:"paymentMethod"` // "credit" or "debit"
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// PaymentRecord is produced exclusively by the payment simulator after a
// successful settlement.
type PaymentRecord struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Method        string    `json:"paymentMethod"`
	Last4         string    `json:"last4"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money moved against a debt.
// Payments are append-only: once persisted they are never edited or reversed.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// DebtID is the debt this payment is applied to.
	DebtID string

	// Amount is the positive amount paid.
	Amount decimal.Decimal

	// Date is when the money moved (user supplied, defaults to now).
	Date time.Time

	// ParticipantID identifies who paid. For group debts it names one of the splits;
	// for direct debts it is the debt's counterparty.
	ParticipantID string

	// Notes is an optional free-form description.
	Notes string

	// CreatedAt is when the payment was recorded.
	CreatedAt time.Time
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/debtledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist for the owner.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when a write was computed from a record
// that changed underneath it.
var ErrConflict = errors.New("record changed concurrently")

// Store defines the storage operations for participants, debts and payments.
// Every call is scoped by ownerID; records belonging to another owner behave
// as if they did not exist.
//
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateParticipant persists a new participant.
	// The participant.ID and CreatedAt fields are populated by the store when empty.
	CreateParticipant(ctx context.Context, ownerID string, p *models.Participant) error

	// GetParticipant retrieves a participant by ID.
	GetParticipant(ctx context.Context, ownerID, participantID string) (*models.Participant, error)

	// ListParticipants returns every participant of the owner, ordered by name.
	ListParticipants(ctx context.Context, ownerID string) ([]*models.Participant, error)

	// UpdateParticipant replaces the participant's display fields.
	UpdateParticipant(ctx context.Context, ownerID string, p *models.Participant) error

	// DeleteParticipant removes a participant. Debts referencing it are left as they are.
	DeleteParticipant(ctx context.Context, ownerID, participantID string) error

	// CreateDebt persists a new debt with its splits.
	// The debt.ID and UpdatedAt fields are populated by the store when empty.
	CreateDebt(ctx context.Context, ownerID string, d *models.Debt) error

	// GetDebt retrieves a debt with its splits and its payments in ledger order.
	GetDebt(ctx context.Context, ownerID, debtID string) (*models.Debt, error)

	// ListDebts returns every debt of the owner with splits and payments, newest first.
	ListDebts(ctx context.Context, ownerID string) ([]*models.Debt, error)

	// UpdateDebt replaces the debt's fields and splits. Payments are not touched.
	UpdateDebt(ctx context.Context, ownerID string, d *models.Debt) error

	// DeleteDebt removes a debt together with its splits and payments, atomically.
	DeleteDebt(ctx context.Context, ownerID, debtID string) error

	// RecordPayment appends p to the ledger and writes the debt's derived fields
	// (paid amount, status, split flags) in one transaction.
	// The payment.ID and CreatedAt fields are populated by the store when empty.
	// The remaining balance is re-checked inside the transaction: a payment that
	// no longer fits fails with reconcile.ErrOverpayment, and a d whose PaidAmount
	// does not match the ledger plus p fails with ErrConflict.
	RecordPayment(ctx context.Context, ownerID string, d *models.Debt, p *models.Payment) error

	// ListPayments returns the debt's payments in ledger order.
	ListPayments(ctx context.Context, ownerID, debtID string) ([]*models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}

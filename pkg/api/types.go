// Package api defines the debtledger.v1 request and response messages.
//
// Messages are plain structs carried as JSON over Connect (see apiconnect).
// Money fields are decimal strings ("1250.50"); numbers are accepted on input.
// Times are RFC 3339.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Participant is a person in the owner's directory.
type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ParticipantRef names an existing participant by ID, or describes a new one
// to be created along with the debt. Amount is only read for custom splits.
type ParticipantRef struct {
	ID     string           `json:"id,omitempty"`
	Name   string           `json:"name,omitempty" validate:"required_without=ID,max=100"`
	Email  string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone  string           `json:"phone,omitempty" validate:"max=40"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// Split is one participant's share of a group debt.
type Split struct {
	ParticipantID   string          `json:"participant_id"`
	ParticipantName string          `json:"participant_name"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	IsPaid          bool            `json:"is_paid"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
}

// Payment is one entry of a debt's ledger.
type Payment struct {
	ID              string          `json:"id"`
	DebtID          string          `json:"debt_id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	ParticipantID   string          `json:"participant_id,omitempty"`
	ParticipantName string          `json:"participant_name,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Debt is the reconciled view of a debt record.
type Debt struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	CreatedDate      time.Time       `json:"created_date"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	Status           string          `json:"status"`
	DisplayStatus    string          `json:"display_status"`
	IsOverdue        bool            `json:"is_overdue"`
	CounterpartyID   string          `json:"counterparty_id,omitempty"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	SplitMode        string          `json:"split_mode,omitempty"`
	Splits           []Split         `json:"splits,omitempty"`
	AssignedAmount   decimal.Decimal `json:"assigned_amount"`
	UnassignedAmount decimal.Decimal `json:"unassigned_amount"`
	Payments         []Payment       `json:"payments"`
	Notes            string          `json:"notes,omitempty"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DebtInput holds the editable fields shared by create and update.
type DebtInput struct {
	Kind         string           `json:"kind" validate:"required,oneof=lend borrow group_pay_out group_receive"`
	Title        string           `json:"title" validate:"required,max=200"`
	Description  string           `json:"description,omitempty" validate:"max=2000"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	CreatedDate  *time.Time       `json:"created_date,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	Counterparty *ParticipantRef  `json:"counterparty,omitempty" validate:"omitempty"`
	Participants []ParticipantRef `json:"participants,omitempty" validate:"dive"`
	SplitMode    string           `json:"split_mode,omitempty" validate:"omitempty,oneof=equal custom"`
	Notes        string           `json:"notes,omitempty" validate:"max=2000"`
}

type CreateDebtRequest struct {
	DebtInput
}

type CreateDebtResponse struct {
	Debt *Debt `json:"debt"`
}

type GetDebtRequest struct {
	DebtID string `json:"debt_id" validate:"required"`
}

type GetDebtResponse struct {
	Debt *Debt `json:"debt"`
}

// ListDebtsRequest filters the owner's debts. Empty fields match everything.
// Status matches the display status, so "overdue" is a valid filter.
type ListDebtsRequest struct {
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=lend borrow group_pay_out group_receive"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=active partially_paid completed overdue"`
	Search string `json:"search,omitempty" validate:"max=200"`
}

type ListDebtsResponse struct {
	Debts []*Debt `json:"debts"`
}

type UpdateDebtRequest struct {
	DebtID string `json:"debt_id" validate:"required"`
	DebtInput
}

type UpdateDebtResponse struct {
	Debt *Debt `json:"debt"`
}

type DeleteDebtRequest struct {
	DebtID string `json:"debt_id" validate:"required"`
}

type DeleteDebtResponse struct{}

// ApplyPaymentRequest records a payment. Date defaults to now. For direct
// debts ParticipantID may be left empty and defaults to the counterparty.
type ApplyPaymentRequest struct {
	DebtID        string          `json:"debt_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date,omitempty"`
	ParticipantID string          `json:"participant_id,omitempty"`
	Notes         string          `json:"notes,omitempty" validate:"max=2000"`
}

type ApplyPaymentResponse struct {
	Debt    *Debt    `json:"debt"`
	Payment *Payment `json:"payment"`
}

type ListPaymentsRequest struct {
	DebtID string `json:"debt_id" validate:"required"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type GetSummaryRequest struct{}

// Summary aggregates every debt of the owner.
type Summary struct {
	NetPosition            decimal.Decimal `json:"net_position"`
	TotalLending           decimal.Decimal `json:"total_lending"`
	PaidLending            decimal.Decimal `json:"paid_lending"`
	PendingLending         decimal.Decimal `json:"pending_lending"`
	TotalBorrowing         decimal.Decimal `json:"total_borrowing"`
	PaidBorrowing          decimal.Decimal `json:"paid_borrowing"`
	PendingBorrowing       decimal.Decimal `json:"pending_borrowing"`
	DebtCount              int             `json:"debt_count"`
	CompletedCount         int             `json:"completed_count"`
	OverdueCount           int             `json:"overdue_count"`
	ActiveParticipantCount int             `json:"active_participant_count"`
}

// ParticipantBalance is positive when the participant owes the owner.
type ParticipantBalance struct {
	ParticipantID   string          `json:"participant_id"`
	ParticipantName string          `json:"participant_name"`
	Balance         decimal.Decimal `json:"balance"`
	OpenDebts       int             `json:"open_debts"`
}

type GetSummaryResponse struct {
	Summary  *Summary              `json:"summary"`
	Balances []*ParticipantBalance `json:"balances"`
	DueSoon  []*Debt               `json:"due_soon"`
}

// CalculateSplitRequest previews a split without saving anything.
// Participants without an ID are keyed by name in the response.
type CalculateSplitRequest struct {
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	SplitMode    string           `json:"split_mode" validate:"required,oneof=equal custom"`
	Participants []ParticipantRef `json:"participants" validate:"required,min=1,dive"`
}

type CalculateSplitResponse struct {
	Splits           []Split         `json:"splits"`
	AssignedAmount   decimal.Decimal `json:"assigned_amount"`
	UnassignedAmount decimal.Decimal `json:"unassigned_amount"`
}

type AddParticipantRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" validate:"max=40"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type GetParticipantRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type GetParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type ListParticipantsRequest struct{}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type UpdateParticipantRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty" validate:"max=40"`
}

type UpdateParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type DeleteParticipantRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type DeleteParticipantResponse struct{}

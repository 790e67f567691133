package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind distinguishes who owes whom.
type DebtKind string

const (
	// KindLend: the owner lent money to a counterparty.
	KindLend DebtKind = "lend"
	// KindBorrow: the owner borrowed money from a counterparty.
	KindBorrow DebtKind = "borrow"
	// KindGroupPayOut: the owner owes a group, split among its participants.
	KindGroupPayOut DebtKind = "group_pay_out"
	// KindGroupReceive: a group owes the owner, split among its participants.
	KindGroupReceive DebtKind = "group_receive"
)

// Valid reports whether k is a known debt kind.
func (k DebtKind) Valid() bool {
	switch k {
	case KindLend, KindBorrow, KindGroupPayOut, KindGroupReceive:
		return true
	}
	return false
}

// IsGroup reports whether debts of this kind use splits instead of a counterparty.
func (k DebtKind) IsGroup() bool {
	return k == KindGroupPayOut || k == KindGroupReceive
}

// IsReceivable reports whether money flows to the owner (lend, group_receive).
func (k DebtKind) IsReceivable() bool {
	return k == KindLend || k == KindGroupReceive
}

// DebtStatus is the settlement state of a debt.
type DebtStatus string

const (
	StatusActive        DebtStatus = "active"
	StatusPartiallyPaid DebtStatus = "partially_paid"
	StatusCompleted     DebtStatus = "completed"
	// StatusOverdue is a display status only. It is never persisted.
	StatusOverdue DebtStatus = "overdue"
)

// SplitMode selects how a group debt is divided.
type SplitMode string

const (
	SplitEqual  SplitMode = "equal"
	SplitCustom SplitMode = "custom"
)

// Valid reports whether m is a known split mode.
func (m SplitMode) Valid() bool {
	return m == SplitEqual || m == SplitCustom
}

// Split is one participant's share of a group debt.
type Split struct {
	// ParticipantID references the participant owing (or owed) this share.
	ParticipantID string

	// Amount is the participant's assigned share.
	Amount decimal.Decimal

	// IsPaid is true once the participant's cumulative payments reach Amount.
	// Derived from the payment ledger.
	IsPaid bool

	// PaidDate is the date of the payment that first settled the share.
	// Derived from the payment ledger.
	PaidDate *time.Time
}

// Debt is one owed-money relationship, direct or shared by a group.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// Kind decides whether CounterpartyID or Splits is used.
	Kind DebtKind

	// Title is the short human-readable name (required).
	Title string

	// Description is optional longer text.
	Description string

	// TotalAmount is the full amount owed.
	TotalAmount decimal.Decimal

	// CreatedDate is the date the debt was incurred.
	CreatedDate time.Time

	// DueDate is optional; a debt past its due date that is not completed is overdue.
	DueDate *time.Time

	// Status is derived from PaidAmount vs TotalAmount. Never StatusOverdue.
	Status DebtStatus

	// CounterpartyID is set for direct kinds (lend, borrow) only.
	CounterpartyID string

	// PaidAmount caches the sum of Payments.
	PaidAmount decimal.Decimal

	// Splits are set for group kinds only, one per participant.
	Splits []Split

	// SplitMode is set for group kinds only.
	SplitMode SplitMode

	// Payments is the debt's ledger in the order payments were applied.
	Payments []Payment

	// Notes is optional free-form text.
	Notes string

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}

// IsGroup reports whether the debt is shared through splits.
func (d *Debt) IsGroup() bool {
	return d.Kind.IsGroup()
}

// Remaining returns TotalAmount - PaidAmount.
func (d *Debt) Remaining() decimal.Decimal {
	return d.TotalAmount.Sub(d.PaidAmount)
}

// IsOverdue reports whether the debt has a due date before now and is not completed.
func (d *Debt) IsOverdue(now time.Time) bool {
	return d.DueDate != nil && d.DueDate.Before(now) && d.Status != StatusCompleted
}

// DisplayStatus returns Status, or StatusOverdue when IsOverdue holds.
func (d *Debt) DisplayStatus(now time.Time) DebtStatus {
	if d.IsOverdue(now) {
		return StatusOverdue
	}
	return d.Status
}

// ParticipantIDs returns the counterparty (direct) or split participants (group).
func (d *Debt) ParticipantIDs() []string {
	if !d.IsGroup() {
		if d.CounterpartyID == "" {
			return nil
		}
		return []string{d.CounterpartyID}
	}
	ids := make([]string, len(d.Splits))
	for i, s := range d.Splits {
		ids[i] = s.ParticipantID
	}
	return ids
}

// SplitIndex returns the index of participantID's split, or -1.
func (d *Debt) SplitIndex(participantID string) int {
	for i := range d.Splits {
		if d.Splits[i].ParticipantID == participantID {
			return i
		}
	}
	return -1
}

// PaidBy sums the payments made by participantID.
func (d *Debt) PaidBy(participantID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Payments {
		if p.ParticipantID == participantID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (d *Debt) Clone() *Debt {
	c := *d
	if d.DueDate != nil {
		due := *d.DueDate
		c.DueDate = &due
	}
	if d.Splits != nil {
		c.Splits = make([]Split, len(d.Splits))
		for i, s := range d.Splits {
			if s.PaidDate != nil {
				paid := *s.PaidDate
				s.PaidDate = &paid
			}
			c.Splits[i] = s
		}
	}
	if d.Payments != nil {
		c.Payments = make([]Payment, len(d.Payments))
		copy(c.Payments, d.Payments)
	}
	return &c
}

// Package reconcile folds a debt's payment ledger into its derived state:
// the paid amount, the status and the per-split paid flags.
//
// Every function here is pure. Callers load a debt, call ApplyPayment or
// Reconcile, and persist the returned copy.
package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
)

var (
	// ErrNonPositiveAmount is returned for payments of zero or less.
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
	// ErrOverpayment is returned when a payment exceeds the remaining balance.
	ErrOverpayment = errors.New("payment exceeds remaining balance")
	// ErrMissingParticipant is returned when a group payment names no participant.
	ErrMissingParticipant = errors.New("group payment requires a participant")
	// ErrUnknownSplit is returned when a group payment names a participant without a split.
	ErrUnknownSplit = errors.New("participant has no split on this debt")
	// ErrWrongCounterparty is returned when a direct payment names someone other than the counterparty.
	ErrWrongCounterparty = errors.New("payment participant is not the debt's counterparty")
	// ErrDebtMismatch is returned when a payment belongs to a different debt.
	ErrDebtMismatch = errors.New("payment belongs to a different debt")
)

// ValidatePayment checks p against debt without modifying either.
// For direct debts an empty ParticipantID is accepted; ApplyPayment fills in the counterparty.
func ValidatePayment(debt *models.Debt, p models.Payment) error {
	if p.DebtID != "" && p.DebtID != debt.ID {
		return fmt.Errorf("%w: payment for %s applied to %s", ErrDebtMismatch, p.DebtID, debt.ID)
	}
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	remaining := debt.TotalAmount.Sub(paidTotal(debt.Payments))
	if p.Amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: amount %s, remaining %s", ErrOverpayment, p.Amount, remaining)
	}

	if debt.IsGroup() {
		if p.ParticipantID == "" {
			return ErrMissingParticipant
		}
		if debt.SplitIndex(p.ParticipantID) < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownSplit, p.ParticipantID)
		}
		return nil
	}

	if p.ParticipantID != "" && p.ParticipantID != debt.CounterpartyID {
		return fmt.Errorf("%w: %s", ErrWrongCounterparty, p.ParticipantID)
	}
	return nil
}

// ApplyPayment appends p to the debt's ledger and returns the reconciled result.
// The input debt is never modified, so a rejected payment leaves it exactly as it was.
func ApplyPayment(debt *models.Debt, p models.Payment) (*models.Debt, error) {
	if err := ValidatePayment(debt, p); err != nil {
		return nil, err
	}

	p.DebtID = debt.ID
	if !debt.IsGroup() && p.ParticipantID == "" {
		p.ParticipantID = debt.CounterpartyID
	}

	next := debt.Clone()
	next.Payments = append(next.Payments, p)
	return Reconcile(next), nil
}

// Reconcile recomputes PaidAmount, Status and split flags from the ledger alone
// and returns the debt. Cached values already on the debt are ignored, so
// running it on a record whose cache drifted repairs it.
func Reconcile(debt *models.Debt) *models.Debt {
	debt.PaidAmount = paidTotal(debt.Payments)
	debt.Status = DeriveStatus(debt.TotalAmount, debt.PaidAmount)
	if debt.IsGroup() {
		reconcileSplits(debt)
	}
	return debt
}

// DeriveStatus maps paid against total to a stored status. It never returns
// StatusOverdue; that is a display status, see models.Debt.DisplayStatus.
func DeriveStatus(total, paid decimal.Decimal) models.DebtStatus {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(total):
		return models.StatusCompleted
	case paid.IsPositive():
		return models.StatusPartiallyPaid
	default:
		return models.StatusActive
	}
}

// Paid returns the sum of the ledger. Payment order does not matter.
func Paid(debt *models.Debt) decimal.Decimal {
	return paidTotal(debt.Payments)
}

// Drifted reports whether the debt's cached fields disagree with its ledger.
func Drifted(debt *models.Debt) bool {
	fresh := Reconcile(debt.Clone())
	if !fresh.PaidAmount.Equal(debt.PaidAmount) || fresh.Status != debt.Status {
		return true
	}
	for i := range fresh.Splits {
		a, b := fresh.Splits[i], debt.Splits[i]
		if a.IsPaid != b.IsPaid || !sameDate(a.PaidDate, b.PaidDate) {
			return true
		}
	}
	return false
}

func paidTotal(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// reconcileSplits walks the ledger in the order payments were applied and marks each split
// paid at the payment that first brings its participant up to the split amount.
// A split needs at least one payment to count as paid.
func reconcileSplits(debt *models.Debt) {
	paid := make(map[string]decimal.Decimal, len(debt.Splits))
	settledAt := make(map[string]time.Time, len(debt.Splits))
	amounts := make(map[string]decimal.Decimal, len(debt.Splits))
	for _, s := range debt.Splits {
		amounts[s.ParticipantID] = s.Amount
	}

	for _, p := range debt.Payments {
		amount, ok := amounts[p.ParticipantID]
		if !ok {
			continue
		}
		sum := paid[p.ParticipantID].Add(p.Amount)
		paid[p.ParticipantID] = sum
		if _, done := settledAt[p.ParticipantID]; !done && sum.GreaterThanOrEqual(amount) {
			settledAt[p.ParticipantID] = p.Date
		}
	}

	for i := range debt.Splits {
		s := &debt.Splits[i]
		date, ok := settledAt[s.ParticipantID]
		s.IsPaid = ok
		s.PaidDate = nil
		if ok {
			d := date
			s.PaidDate = &d
		}
	}
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

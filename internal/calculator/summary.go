package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
)

// Summary is the dashboard view over all of an owner's debts.
type Summary struct {
	// NetPosition = pending lending - pending borrowing.
	// Positive means the owner is owed more than they owe.
	NetPosition decimal.Decimal

	TotalLending     decimal.Decimal // lend + group_receive totals
	PaidLending      decimal.Decimal
	PendingLending   decimal.Decimal
	TotalBorrowing   decimal.Decimal // borrow + group_pay_out totals
	PaidBorrowing    decimal.Decimal
	PendingBorrowing decimal.Decimal

	DebtCount              int
	CompletedCount         int
	OverdueCount           int
	ActiveParticipantCount int
}

// Summarize folds debts into a Summary. Nothing is cached; callers recompute on every read.
func Summarize(debts []*models.Debt, now time.Time) Summary {
	s := Summary{
		NetPosition:      decimal.Zero,
		TotalLending:     decimal.Zero,
		PaidLending:      decimal.Zero,
		PendingLending:   decimal.Zero,
		TotalBorrowing:   decimal.Zero,
		PaidBorrowing:    decimal.Zero,
		PendingBorrowing: decimal.Zero,
	}

	participants := make(map[string]struct{})
	for _, d := range debts {
		s.DebtCount++

		if d.Kind.IsReceivable() {
			s.TotalLending = s.TotalLending.Add(d.TotalAmount)
			s.PaidLending = s.PaidLending.Add(d.PaidAmount)
		} else {
			s.TotalBorrowing = s.TotalBorrowing.Add(d.TotalAmount)
			s.PaidBorrowing = s.PaidBorrowing.Add(d.PaidAmount)
		}

		if d.IsOverdue(now) {
			s.OverdueCount++
		}

		if d.Status == models.StatusCompleted {
			s.CompletedCount++
			continue
		}
		for _, id := range d.ParticipantIDs() {
			participants[id] = struct{}{}
		}
	}

	s.PendingLending = s.TotalLending.Sub(s.PaidLending)
	s.PendingBorrowing = s.TotalBorrowing.Sub(s.PaidBorrowing)
	s.NetPosition = s.PendingLending.Sub(s.PendingBorrowing)
	s.ActiveParticipantCount = len(participants)

	return s
}

// DueSoon returns the unsettled debts due between now and now+window, earliest first.
// Debts already past due are excluded; they are counted as overdue instead.
func DueSoon(debts []*models.Debt, now time.Time, window time.Duration) []*models.Debt {
	limit := now.Add(window)

	var due []*models.Debt
	for _, d := range debts {
		if d.DueDate == nil || d.Status == models.StatusCompleted {
			continue
		}
		if d.DueDate.Before(now) || d.DueDate.After(limit) {
			continue
		}
		due = append(due, d)
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(*due[j].DueDate)
	})
	return due
}

package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/calculator"
	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/pkg/api"
)

// names maps participant IDs to display names.
type names map[string]*models.Participant

func (n names) of(id string) string {
	if id == "" {
		return ""
	}
	if p, ok := n[id]; ok {
		return p.Name
	}
	return models.UnknownParticipantName
}

// participantIDs collects every participant referenced by debts, including payers.
func participantIDs(debts ...*models.Debt) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, d := range debts {
		for _, id := range d.ParticipantIDs() {
			add(id)
		}
		for _, p := range d.Payments {
			add(p.ParticipantID)
		}
	}
	return ids
}

func toAPIParticipant(p *models.Participant) *api.Participant {
	return &api.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment, n names) *api.Payment {
	return &api.Payment{
		ID:              p.ID,
		DebtID:          p.DebtID,
		Amount:          p.Amount,
		Date:            p.Date,
		ParticipantID:   p.ParticipantID,
		ParticipantName: n.of(p.ParticipantID),
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

func toAPISplits(splits []models.Split, n names, paidBy func(string) decimal.Decimal) []api.Split {
	if len(splits) == 0 {
		return nil
	}
	out := make([]api.Split, len(splits))
	for i, s := range splits {
		out[i] = api.Split{
			ParticipantID:   s.ParticipantID,
			ParticipantName: n.of(s.ParticipantID),
			Amount:          s.Amount,
			PaidAmount:      paidBy(s.ParticipantID),
			IsPaid:          s.IsPaid,
			PaidDate:        s.PaidDate,
		}
	}
	return out
}

// toAPIDebt renders an already reconciled debt as seen at now.
func toAPIDebt(d *models.Debt, n names, now time.Time) *api.Debt {
	out := &api.Debt{
		ID:               d.ID,
		Kind:             string(d.Kind),
		Title:            d.Title,
		Description:      d.Description,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		RemainingAmount:  d.Remaining(),
		CreatedDate:      d.CreatedDate,
		DueDate:          d.DueDate,
		Status:           string(d.Status),
		DisplayStatus:    string(d.DisplayStatus(now)),
		IsOverdue:        d.IsOverdue(now),
		CounterpartyID:   d.CounterpartyID,
		CounterpartyName: n.of(d.CounterpartyID),
		SplitMode:        string(d.SplitMode),
		Splits:           toAPISplits(d.Splits, n, d.PaidBy),
		Payments:         make([]api.Payment, len(d.Payments)),
		Notes:            d.Notes,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.IsGroup() {
		out.AssignedAmount, out.UnassignedAmount = calculator.Allocation(d.TotalAmount, d.Splits)
	} else {
		out.AssignedAmount, out.UnassignedAmount = d.TotalAmount, decimal.Zero
	}
	for i := range d.Payments {
		out.Payments[i] = *toAPIPayment(&d.Payments[i], n)
	}
	return out
}

func toAPISummary(s calculator.Summary) *api.Summary {
	return &api.Summary{
		NetPosition:            s.NetPosition,
		TotalLending:           s.TotalLending,
		PaidLending:            s.PaidLending,
		PendingLending:         s.PendingLending,
		TotalBorrowing:         s.TotalBorrowing,
		PaidBorrowing:          s.PaidBorrowing,
		PendingBorrowing:       s.PendingBorrowing,
		DebtCount:              s.DebtCount,
		CompletedCount:         s.CompletedCount,
		OverdueCount:           s.OverdueCount,
		ActiveParticipantCount: s.ActiveParticipantCount,
	}
}

func toAPIBalance(b calculator.ParticipantBalance, n names) *api.ParticipantBalance {
	return &api.ParticipantBalance{
		ParticipantID:   b.ParticipantID,
		ParticipantName: n.of(b.ParticipantID),
		Balance:         b.Balance,
		OpenDebts:       b.OpenDebts,
	}
}

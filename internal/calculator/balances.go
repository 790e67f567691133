package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
)

// ParticipantBalance is what one participant owes the owner across unsettled debts.
type ParticipantBalance struct {
	ParticipantID string
	// Balance is positive when the participant owes the owner and negative when
	// the owner owes the participant.
	Balance decimal.Decimal
	// OpenDebts counts the unsettled debts involving the participant.
	OpenDebts int
}

// CalculateParticipantBalances computes per-participant balances.
//
// Algorithm:
//   - Direct debts: the counterparty carries the debt's remaining amount,
//     positive for lend and negative for borrow.
//   - Group debts: each participant carries their split amount minus what they
//     have paid, positive for group_receive and negative for group_pay_out.
//   - Completed debts are skipped.
//
// Results are sorted by descending absolute balance, then by participant id.
func CalculateParticipantBalances(debts []*models.Debt) []ParticipantBalance {
	balances := make(map[string]*ParticipantBalance)

	add := func(id string, amount decimal.Decimal) {
		b, exists := balances[id]
		if !exists {
			b = &ParticipantBalance{ParticipantID: id, Balance: decimal.Zero}
			balances[id] = b
		}
		b.Balance = b.Balance.Add(amount)
		b.OpenDebts++
	}

	for _, d := range debts {
		if d.Status == models.StatusCompleted {
			continue
		}

		sign := decimal.NewFromInt(-1)
		if d.Kind.IsReceivable() {
			sign = decimal.NewFromInt(1)
		}

		if !d.IsGroup() {
			if d.CounterpartyID != "" {
				add(d.CounterpartyID, d.Remaining().Mul(sign))
			}
			continue
		}

		for _, split := range d.Splits {
			remaining := split.Amount.Sub(d.PaidBy(split.ParticipantID))
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			add(split.ParticipantID, remaining.Mul(sign))
		}
	}

	result := make([]ParticipantBalance, 0, len(balances))
	for _, b := range balances {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		ai, aj := result[i].Balance.Abs(), result[j].Balance.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return result[i].ParticipantID < result[j].ParticipantID
	})
	return result
}

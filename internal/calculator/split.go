package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
)

// MinorUnitPlaces is the number of decimal places in the smallest currency unit.
const MinorUnitPlaces = 2

// minorUnit is one unit of the smallest currency denomination (0.01).
var minorUnit = decimal.New(1, -MinorUnitPlaces)

// ComputeSplits divides total among participantIDs according to mode.
//
// Equal mode rounds each share down to the minor unit and hands the leftover
// units, one each, to the first participants, so the shares always add up to
// total when total is expressed in minor units.
//
// Custom mode copies the caller's amount for each participant, defaulting to zero.
// The result is not checked against total; use Allocation to surface the difference.
//
// Splits are returned unpaid, in participant order.
func ComputeSplits(total decimal.Decimal, participantIDs []string, mode models.SplitMode, custom map[string]decimal.Decimal) []models.Split {
	if len(participantIDs) == 0 {
		return nil
	}

	splits := make([]models.Split, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.Split{ParticipantID: id, Amount: decimal.Zero}
	}

	if mode == models.SplitCustom {
		for i, id := range participantIDs {
			if amount, ok := custom[id]; ok {
				splits[i].Amount = amount
			}
		}
		return splits
	}

	count := decimal.NewFromInt(int64(len(participantIDs)))
	share := total.Div(count).RoundFloor(MinorUnitPlaces)
	for i := range splits {
		splits[i].Amount = share
	}

	// Leftover minor units go to the first splits.
	leftover := total.Sub(share.Mul(count))
	for i := 0; leftover.GreaterThanOrEqual(minorUnit) && i < len(splits); i++ {
		splits[i].Amount = splits[i].Amount.Add(minorUnit)
		leftover = leftover.Sub(minorUnit)
	}

	return splits
}

// Allocation returns the sum of the split amounts and how much of total is
// left unassigned. Unassigned is negative when the splits exceed total.
func Allocation(total decimal.Decimal, splits []models.Split) (assigned, unassigned decimal.Decimal) {
	assigned = decimal.Zero
	for _, s := range splits {
		assigned = assigned.Add(s.Amount)
	}
	return assigned, total.Sub(assigned)
}

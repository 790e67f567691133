package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/debtledger/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysFromNow(days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func testDebts() []*models.Debt {
	return []*models.Debt{
		{
			ID:             "lend-1",
			Kind:           models.KindLend,
			TotalAmount:    dec("500"),
			PaidAmount:     dec("200"),
			Status:         models.StatusPartiallyPaid,
			CounterpartyID: "alice",
			DueDate:        daysFromNow(-3),
			Payments: []models.Payment{
				{ParticipantID: "alice", Amount: dec("200")},
			},
		},
		{
			ID:             "borrow-1",
			Kind:           models.KindBorrow,
			TotalAmount:    dec("300"),
			PaidAmount:     dec("0"),
			Status:         models.StatusActive,
			CounterpartyID: "bob",
			DueDate:        daysFromNow(5),
		},
		{
			ID:          "group-receive-1",
			Kind:        models.KindGroupReceive,
			TotalAmount: dec("90"),
			PaidAmount:  dec("30"),
			Status:      models.StatusPartiallyPaid,
			SplitMode:   models.SplitEqual,
			Splits: []models.Split{
				{ParticipantID: "alice", Amount: dec("30"), IsPaid: true},
				{ParticipantID: "carol", Amount: dec("30")},
				{ParticipantID: "dave", Amount: dec("30")},
			},
			Payments: []models.Payment{
				{ParticipantID: "alice", Amount: dec("30")},
			},
			DueDate: daysFromNow(2),
		},
		{
			ID:          "group-pay-out-1",
			Kind:        models.KindGroupPayOut,
			TotalAmount: dec("100"),
			PaidAmount:  dec("100"),
			Status:      models.StatusCompleted,
			SplitMode:   models.SplitCustom,
			Splits: []models.Split{
				{ParticipantID: "erin", Amount: dec("100"), IsPaid: true},
			},
			Payments: []models.Payment{
				{ParticipantID: "erin", Amount: dec("100")},
			},
			DueDate: daysFromNow(-10),
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testDebts(), now)

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"TotalLending", s.TotalLending.String(), "590"},
		{"PaidLending", s.PaidLending.String(), "230"},
		{"PendingLending", s.PendingLending.String(), "360"},
		{"TotalBorrowing", s.TotalBorrowing.String(), "400"},
		{"PaidBorrowing", s.PaidBorrowing.String(), "100"},
		{"PendingBorrowing", s.PendingBorrowing.String(), "300"},
		{"NetPosition", s.NetPosition.String(), "60"},
	}
	for _, c := range checks {
		if !dec(c.got).Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	if s.DebtCount != 4 {
		t.Errorf("DebtCount = %d, want 4", s.DebtCount)
	}
	if s.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", s.CompletedCount)
	}
	// lend-1 is past due; group-pay-out-1 is past due but completed.
	if s.OverdueCount != 1 {
		t.Errorf("OverdueCount = %d, want 1", s.OverdueCount)
	}
	// alice, bob, carol, dave. erin only appears on a completed debt.
	if s.ActiveParticipantCount != 4 {
		t.Errorf("ActiveParticipantCount = %d, want 4", s.ActiveParticipantCount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, now)
	if !s.NetPosition.IsZero() || s.DebtCount != 0 || s.OverdueCount != 0 || s.ActiveParticipantCount != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}

func TestDueSoon(t *testing.T) {
	tests := []struct {
		name   string
		window time.Duration
		want   []string
	}{
		{"one week", 7 * 24 * time.Hour, []string{"group-receive-1", "borrow-1"}},
		{"three days", 3 * 24 * time.Hour, []string{"group-receive-1"}},
		{"zero window", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueSoon(testDebts(), now, tt.window)
			if len(got) != len(tt.want) {
				t.Fatalf("DueSoon() returned %d debts, want %d", len(got), len(tt.want))
			}
			for i, d := range got {
				if d.ID != tt.want[i] {
					t.Errorf("DueSoon()[%d] = %s, want %s", i, d.ID, tt.want[i])
				}
			}
		})
	}
}

func TestCalculateParticipantBalances(t *testing.T) {
	balances := CalculateParticipantBalances(testDebts())

	want := map[string]string{
		"alice": "300",  // 500-200 on lend-1, group split already paid
		"bob":   "-300", // borrowed
		"carol": "30",
		"dave":  "30",
	}
	if len(balances) != len(want) {
		t.Fatalf("got %d balances, want %d: %+v", len(balances), len(want), balances)
	}
	for _, b := range balances {
		w, ok := want[b.ParticipantID]
		if !ok {
			t.Errorf("unexpected participant %s", b.ParticipantID)
			continue
		}
		if !b.Balance.Equal(dec(w)) {
			t.Errorf("%s balance = %s, want %s", b.ParticipantID, b.Balance, w)
		}
	}

	// Sorted by absolute balance, ties by id.
	order := []string{"alice", "bob", "carol", "dave"}
	for i, id := range order {
		if balances[i].ParticipantID != id {
			t.Errorf("balances[%d] = %s, want %s", i, balances[i].ParticipantID, id)
		}
	}

	if balances[0].OpenDebts != 2 {
		t.Errorf("alice OpenDebts = %d, want 2", balances[0].OpenDebts)
	}
}

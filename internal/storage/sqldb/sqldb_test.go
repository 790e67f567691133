package sqldb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/reconcile"
	"github.com/mmynk/debtledger/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "debtledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStore_Participants(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateParticipant generates ID and CreatedAt", func(t *testing.T) {
		p := &models.Participant{Name: "Alice", Email: "alice@example.com"}
		if err := store.CreateParticipant(ctx, "owner-1", p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected participant ID to be generated")
		}
		if p.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetParticipant(ctx, "owner-1", p.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		if got.Name != "Alice" || got.Email != "alice@example.com" {
			t.Errorf("GetParticipant = %+v", got)
		}
	})

	t.Run("participants are scoped by owner", func(t *testing.T) {
		p := &models.Participant{Name: "Bob"}
		if err := store.CreateParticipant(ctx, "owner-1", p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
		_, err := store.GetParticipant(ctx, "owner-2", p.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetParticipant from another owner error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteParticipant(ctx, "owner-2", p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteParticipant from another owner error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListParticipants orders by name", func(t *testing.T) {
		list, err := store.ListParticipants(ctx, "owner-1")
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(list) != 2 || list[0].Name != "Alice" || list[1].Name != "Bob" {
			t.Errorf("ListParticipants = %+v", list)
		}
	})

	t.Run("UpdateParticipant and DeleteParticipant", func(t *testing.T) {
		p := &models.Participant{Name: "Carol"}
		if err := store.CreateParticipant(ctx, "owner-3", p); err != nil {
			t.Fatalf("CreateParticipant failed: %v", err)
		}
		p.Name = "Caroline"
		p.Phone = "555-0100"
		if err := store.UpdateParticipant(ctx, "owner-3", p); err != nil {
			t.Fatalf("UpdateParticipant failed: %v", err)
		}
		got, err := store.GetParticipant(ctx, "owner-3", p.ID)
		if err != nil {
			t.Fatalf("GetParticipant failed: %v", err)
		}
		if got.Name != "Caroline" || got.Phone != "555-0100" {
			t.Errorf("updated participant = %+v", got)
		}

		if err := store.DeleteParticipant(ctx, "owner-3", p.ID); err != nil {
			t.Fatalf("DeleteParticipant failed: %v", err)
		}
		if _, err := store.GetParticipant(ctx, "owner-3", p.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetParticipant after delete error = %v, want ErrNotFound", err)
		}
	})
}

func TestStore_Debts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	due := created.AddDate(0, 1, 0)

	group := &models.Debt{
		Kind:        models.KindGroupReceive,
		Title:       "Ski trip",
		Description: "Cabin rental",
		TotalAmount: dec("300000"),
		PaidAmount:  decimal.Zero,
		Status:      models.StatusActive,
		SplitMode:   models.SplitEqual,
		CreatedDate: created,
		DueDate:     &due,
		Splits: []models.Split{
			{ParticipantID: "p-a", Amount: dec("100000")},
			{ParticipantID: "p-b", Amount: dec("100000")},
			{ParticipantID: "p-c", Amount: dec("100000")},
		},
	}

	t.Run("CreateDebt and GetDebt round trip", func(t *testing.T) {
		if err := store.CreateDebt(ctx, "owner-1", group); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}
		if group.ID == "" {
			t.Fatal("Expected debt ID to be generated")
		}

		got, err := store.GetDebt(ctx, "owner-1", group.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if got.Title != "Ski trip" || got.Kind != models.KindGroupReceive || got.SplitMode != models.SplitEqual {
			t.Errorf("GetDebt = %+v", got)
		}
		if !got.TotalAmount.Equal(dec("300000")) {
			t.Errorf("TotalAmount = %s, want 300000", got.TotalAmount)
		}
		if !got.CreatedDate.Equal(created) {
			t.Errorf("CreatedDate = %v, want %v", got.CreatedDate, created)
		}
		if got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Errorf("DueDate = %v, want %v", got.DueDate, due)
		}
		if len(got.Splits) != 3 {
			t.Fatalf("len(Splits) = %d, want 3", len(got.Splits))
		}
		for i, want := range []string{"p-a", "p-b", "p-c"} {
			if got.Splits[i].ParticipantID != want {
				t.Errorf("split %d = %s, want %s", i, got.Splits[i].ParticipantID, want)
			}
		}
	})

	t.Run("RecordPayment persists ledger and derived fields", func(t *testing.T) {
		paidOn := created.AddDate(0, 0, 2)
		group.PaidAmount = dec("100000")
		group.Status = models.StatusPartiallyPaid
		group.Splits[0].IsPaid = true
		group.Splits[0].PaidDate = &paidOn
		p := &models.Payment{Amount: dec("100000"), Date: paidOn, ParticipantID: "p-a", Notes: "venmo"}

		if err := store.RecordPayment(ctx, "owner-1", group, p); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if p.ID == "" || p.DebtID != group.ID {
			t.Errorf("payment = %+v, want generated ID and debt ID", p)
		}

		second := &models.Payment{Amount: dec("50000"), Date: paidOn.AddDate(0, 0, 1), ParticipantID: "p-b"}
		group.PaidAmount = dec("150000")
		if err := store.RecordPayment(ctx, "owner-1", group, second); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		got, err := store.GetDebt(ctx, "owner-1", group.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if !got.PaidAmount.Equal(dec("150000")) || got.Status != models.StatusPartiallyPaid {
			t.Errorf("PaidAmount = %s, Status = %s", got.PaidAmount, got.Status)
		}
		if !got.Splits[0].IsPaid || got.Splits[0].PaidDate == nil || !got.Splits[0].PaidDate.Equal(paidOn) {
			t.Errorf("split a = %+v, want paid on %v", got.Splits[0], paidOn)
		}
		if len(got.Payments) != 2 || got.Payments[0].ID != p.ID || got.Payments[1].ID != second.ID {
			t.Errorf("payments not in ledger order: %+v", got.Payments)
		}
		if got.Payments[0].Notes != "venmo" {
			t.Errorf("payment notes = %q", got.Payments[0].Notes)
		}
	})

	t.Run("RecordPayment against another owner's debt fails", func(t *testing.T) {
		p := &models.Payment{Amount: dec("1"), Date: created, ParticipantID: "p-c"}
		err := store.RecordPayment(ctx, "owner-2", group, p)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("RecordPayment error = %v, want ErrNotFound", err)
		}
		payments, err := store.ListPayments(ctx, "owner-1", group.ID)
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(payments) != 2 {
			t.Errorf("len(payments) = %d, want 2", len(payments))
		}
	})

	t.Run("UpdateDebt replaces splits and keeps payments", func(t *testing.T) {
		group.Title = "Ski trip 2025"
		group.DueDate = nil
		group.Splits = append(group.Splits, models.Split{ParticipantID: "p-d", Amount: dec("0")})
		if err := store.UpdateDebt(ctx, "owner-1", group); err != nil {
			t.Fatalf("UpdateDebt failed: %v", err)
		}

		got, err := store.GetDebt(ctx, "owner-1", group.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if got.Title != "Ski trip 2025" || got.DueDate != nil {
			t.Errorf("updated debt = %+v", got)
		}
		if len(got.Splits) != 4 || len(got.Payments) != 2 {
			t.Errorf("splits = %d, payments = %d, want 4 and 2", len(got.Splits), len(got.Payments))
		}
	})

	t.Run("UpdateDebt of missing debt returns ErrNotFound", func(t *testing.T) {
		missing := &models.Debt{ID: "nonexistent-id", Kind: models.KindLend, CreatedDate: created}
		if err := store.UpdateDebt(ctx, "owner-1", missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateDebt error = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListDebts returns newest first with children", func(t *testing.T) {
		direct := &models.Debt{
			Kind:           models.KindLend,
			Title:          "Concert tickets",
			TotalAmount:    dec("120.50"),
			PaidAmount:     decimal.Zero,
			Status:         models.StatusActive,
			CounterpartyID: "p-a",
			CreatedDate:    created.AddDate(0, 0, 5),
		}
		if err := store.CreateDebt(ctx, "owner-1", direct); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}

		debts, err := store.ListDebts(ctx, "owner-1")
		if err != nil {
			t.Fatalf("ListDebts failed: %v", err)
		}
		if len(debts) != 2 {
			t.Fatalf("len(debts) = %d, want 2", len(debts))
		}
		if debts[0].ID != direct.ID || debts[1].ID != group.ID {
			t.Errorf("ListDebts order = [%s %s]", debts[0].Title, debts[1].Title)
		}
		if len(debts[0].Splits) != 0 || len(debts[1].Splits) != 4 || len(debts[1].Payments) != 2 {
			t.Errorf("children not attached correctly")
		}

		other, err := store.ListDebts(ctx, "owner-2")
		if err != nil {
			t.Fatalf("ListDebts failed: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("owner-2 sees %d debts", len(other))
		}
	})

	t.Run("DeleteDebt cascades to payments", func(t *testing.T) {
		if err := store.DeleteDebt(ctx, "owner-2", group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteDebt from another owner error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteDebt(ctx, "owner-1", group.ID); err != nil {
			t.Fatalf("DeleteDebt failed: %v", err)
		}
		if _, err := store.GetDebt(ctx, "owner-1", group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetDebt after delete error = %v, want ErrNotFound", err)
		}
		if _, err := store.ListPayments(ctx, "owner-1", group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("ListPayments after delete error = %v, want ErrNotFound", err)
		}

		var orphans int
		if err := store.db.QueryRow(`SELECT COUNT(*) FROM payments WHERE debt_id = ?`, group.ID).Scan(&orphans); err != nil {
			t.Fatalf("count payments: %v", err)
		}
		if orphans != 0 {
			t.Errorf("%d payments left for deleted debt", orphans)
		}
		var splits int
		if err := store.db.QueryRow(`SELECT COUNT(*) FROM debt_splits WHERE debt_id = ?`, group.ID).Scan(&splits); err != nil {
			t.Fatalf("count splits: %v", err)
		}
		if splits != 0 {
			t.Errorf("%d splits left for deleted debt", splits)
		}
	})
}

func TestStore_RecordPaymentRechecksLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	loan := &models.Debt{
		Kind:           models.KindLend,
		Title:          "Concert tickets",
		TotalAmount:    dec("100"),
		PaidAmount:     decimal.Zero,
		Status:         models.StatusActive,
		CounterpartyID: "p-x",
		CreatedDate:    created,
	}
	if err := store.CreateDebt(ctx, "owner-1", loan); err != nil {
		t.Fatalf("CreateDebt failed: %v", err)
	}

	// Two callers read the same empty ledger.
	snapshot, err := store.GetDebt(ctx, "owner-1", loan.ID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	pay := func(amount string) (*models.Debt, *models.Payment) {
		t.Helper()
		next, err := reconcile.ApplyPayment(snapshot, models.Payment{Amount: dec(amount), Date: created})
		if err != nil {
			t.Fatalf("ApplyPayment(%s) failed: %v", amount, err)
		}
		return next, &next.Payments[len(next.Payments)-1]
	}

	first, firstPayment := pay("60")
	if err := store.RecordPayment(ctx, "owner-1", first, firstPayment); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	t.Run("payment past the remaining balance is rejected", func(t *testing.T) {
		next, p := pay("100")
		err := store.RecordPayment(ctx, "owner-1", next, p)
		if !errors.Is(err, reconcile.ErrOverpayment) {
			t.Errorf("RecordPayment error = %v, want ErrOverpayment", err)
		}
	})

	t.Run("payment computed from an outdated ledger conflicts", func(t *testing.T) {
		next, p := pay("30")
		err := store.RecordPayment(ctx, "owner-1", next, p)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("RecordPayment error = %v, want ErrConflict", err)
		}
	})

	got, err := store.GetDebt(ctx, "owner-1", loan.ID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	if len(got.Payments) != 1 || !got.PaidAmount.Equal(dec("60")) {
		t.Errorf("payments = %d, paid = %s, want 1 and 60", len(got.Payments), got.PaidAmount)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: dialectPostgres}
	got := pg.rebind(`UPDATE debts SET title = ? WHERE id = ? AND owner_id = ?`)
	want := `UPDATE debts SET title = $1 WHERE id = $2 AND owner_id = $3`
	if got != want {
		t.Errorf("rebind() = %q, want %q", got, want)
	}

	lite := &Store{dialect: dialectSQLite}
	if q := `SELECT 1 WHERE a = ?`; lite.rebind(q) != q {
		t.Errorf("sqlite rebind changed the query")
	}
}

package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/reconcile"
	"github.com/mmynk/debtledger/internal/storage"
)

// RecordPayment inserts the payment and writes the debt's derived fields in
// one transaction, so the ledger and the cached paid amount never disagree.
//
// The ledger is re-summed after the debt row is locked by the UPDATE. A payment
// that no longer fits the remaining balance fails with reconcile.ErrOverpayment,
// and a d computed from an outdated ledger fails with storage.ErrConflict.
func (s *Store) RecordPayment(ctx context.Context, ownerID string, d *models.Debt, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.DebtID == "" {
		p.DebtID = d.ID
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = p.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = s.execOne(ctx, tx, "debt", d.ID,
		`UPDATE debts SET paid_amount = ?, status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		d.PaidAmount, string(d.Status), formatTime(d.UpdatedAt), d.ID, ownerID,
	)
	if err != nil {
		return err
	}

	prior, err := s.ledgerTotal(ctx, tx, d.ID)
	if err != nil {
		return err
	}
	after := prior.Add(p.Amount)
	if after.GreaterThan(d.TotalAmount) {
		return fmt.Errorf("%w: amount %s, remaining %s", reconcile.ErrOverpayment, p.Amount, d.TotalAmount.Sub(prior))
	}
	if !after.Equal(d.PaidAmount) {
		return fmt.Errorf("debt %s paid %s, ledger now %s: %w", d.ID, d.PaidAmount, after, storage.ErrConflict)
	}

	var seq int64
	err = s.queryRow(ctx, tx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM payments WHERE debt_id = ?`, d.ID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to allocate payment sequence: %w", err)
	}

	_, err = s.exec(ctx, tx,
		`INSERT INTO payments (id, owner_id, debt_id, seq, amount, paid_on, participant_id, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, ownerID, d.ID, seq, p.Amount, formatTime(p.Date), p.ParticipantID, p.Notes, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	for _, split := range d.Splits {
		_, err := s.exec(ctx, tx,
			`UPDATE debt_splits SET is_paid = ?, paid_date = ? WHERE debt_id = ? AND participant_id = ?`,
			boolToInt(split.IsPaid), nullTime(split.PaidDate), d.ID, split.ParticipantID,
		)
		if err != nil {
			return fmt.Errorf("failed to update split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ledgerTotal sums the payments already recorded against debtID.
func (s *Store) ledgerTotal(ctx context.Context, q querier, debtID string) (decimal.Decimal, error) {
	rows, err := s.query(ctx, q, `SELECT amount FROM payments WHERE debt_id = ?`, debtID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan payment amount: %w", err)
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}

// ListPayments returns the debt's payments in the order they were recorded.
func (s *Store) ListPayments(ctx context.Context, ownerID, debtID string) ([]*models.Payment, error) {
	// Resolves ownership and not-found the same way GetDebt does.
	d, err := s.GetDebt(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}

	payments := make([]*models.Payment, len(d.Payments))
	for i := range d.Payments {
		payments[i] = &d.Payments[i]
	}
	return payments, nil
}

// loadPayments attaches payments to the debts in byID in ledger order.
// where filters the payments table (p).
func (s *Store) loadPayments(ctx context.Context, q querier, byID map[string]*models.Debt, where string, args ...any) error {
	rows, err := s.query(ctx, q,
		`SELECT p.id, p.debt_id, p.amount, p.paid_on, p.participant_id, p.notes, p.created_at
		 FROM payments p WHERE `+where+` ORDER BY p.debt_id, p.seq`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p                 models.Payment
			paidOn, createdAt string
		)
		if err := rows.Scan(&p.ID, &p.DebtID, &p.Amount, &paidOn, &p.ParticipantID, &p.Notes, &createdAt); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Date, err = parseTime(paidOn); err != nil {
			return err
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if d, ok := byID[p.DebtID]; ok {
			d.Payments = append(d.Payments, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payments: %w", err)
	}
	return nil
}

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/storage"
)

const debtColumns = `id, kind, title, description, total_amount, paid_amount, status,
	counterparty_id, split_mode, created_date, due_date, notes, updated_at`

// CreateDebt persists a new debt and its splits.
func (s *Store) CreateDebt(ctx context.Context, ownerID string, d *models.Debt) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}
	if d.CreatedDate.IsZero() {
		d.CreatedDate = d.UpdatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.exec(ctx, tx,
		`INSERT INTO debts (id, owner_id, kind, title, description, total_amount, paid_amount, status,
			counterparty_id, split_mode, created_date, due_date, notes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, ownerID, string(d.Kind), d.Title, d.Description, d.TotalAmount, d.PaidAmount, string(d.Status),
		d.CounterpartyID, string(d.SplitMode), formatTime(d.CreatedDate), nullTime(d.DueDate), d.Notes,
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	if err := s.insertSplits(ctx, tx, d); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetDebt retrieves a debt with its splits and payments.
func (s *Store) GetDebt(ctx context.Context, ownerID, debtID string) (*models.Debt, error) {
	row := s.queryRow(ctx, s.db,
		`SELECT `+debtColumns+` FROM debts WHERE id = ? AND owner_id = ?`,
		debtID, ownerID,
	)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	byID := map[string]*models.Debt{d.ID: d}
	if err := s.loadSplits(ctx, s.db, byID, `s.debt_id = ?`, d.ID); err != nil {
		return nil, err
	}
	if err := s.loadPayments(ctx, s.db, byID, `p.debt_id = ? AND p.owner_id = ?`, d.ID, ownerID); err != nil {
		return nil, err
	}
	return d, nil
}

// ListDebts returns the owner's debts, newest first.
func (s *Store) ListDebts(ctx context.Context, ownerID string) ([]*models.Debt, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT `+debtColumns+` FROM debts WHERE owner_id = ? ORDER BY created_date DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	var debts []*models.Debt
	byID := make(map[string]*models.Debt)
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
		byID[d.ID] = d
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	if len(debts) == 0 {
		return debts, nil
	}
	if err := s.loadSplits(ctx, s.db, byID, `d.owner_id = ?`, ownerID); err != nil {
		return nil, err
	}
	if err := s.loadPayments(ctx, s.db, byID, `p.owner_id = ?`, ownerID); err != nil {
		return nil, err
	}
	return debts, nil
}

// UpdateDebt rewrites the debt row and replaces its splits.
func (s *Store) UpdateDebt(ctx context.Context, ownerID string, d *models.Debt) error {
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = s.execOne(ctx, tx, "debt", d.ID,
		`UPDATE debts SET kind = ?, title = ?, description = ?, total_amount = ?, paid_amount = ?,
			status = ?, counterparty_id = ?, split_mode = ?, created_date = ?, due_date = ?, notes = ?,
			updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		string(d.Kind), d.Title, d.Description, d.TotalAmount, d.PaidAmount,
		string(d.Status), d.CounterpartyID, string(d.SplitMode), formatTime(d.CreatedDate), nullTime(d.DueDate), d.Notes,
		formatTime(d.UpdatedAt),
		d.ID, ownerID,
	)
	if err != nil {
		return err
	}

	if _, err := s.exec(ctx, tx, `DELETE FROM debt_splits WHERE debt_id = ?`, d.ID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if err := s.insertSplits(ctx, tx, d); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteDebt removes the debt, its splits and every payment recorded against it.
func (s *Store) DeleteDebt(ctx context.Context, ownerID, debtID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = s.queryRow(ctx, tx, `SELECT 1 FROM debts WHERE id = ? AND owner_id = ?`, debtID, ownerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to look up debt: %w", err)
	}

	if _, err := s.exec(ctx, tx, `DELETE FROM payments WHERE debt_id = ?`, debtID); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	if _, err := s.exec(ctx, tx, `DELETE FROM debt_splits WHERE debt_id = ?`, debtID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := s.exec(ctx, tx, `DELETE FROM debts WHERE id = ?`, debtID); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) insertSplits(ctx context.Context, q querier, d *models.Debt) error {
	for i, split := range d.Splits {
		_, err := s.exec(ctx, q,
			`INSERT INTO debt_splits (debt_id, participant_id, ordinal, amount, is_paid, paid_date)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			d.ID, split.ParticipantID, i, split.Amount, boolToInt(split.IsPaid), nullTime(split.PaidDate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// loadSplits attaches splits to the debts in byID. where filters the join of
// debt_splits (s) and debts (d).
func (s *Store) loadSplits(ctx context.Context, q querier, byID map[string]*models.Debt, where string, args ...any) error {
	rows, err := s.query(ctx, q,
		`SELECT s.debt_id, s.participant_id, s.amount, s.is_paid, s.paid_date
		 FROM debt_splits s JOIN debts d ON d.id = s.debt_id
		 WHERE `+where+` ORDER BY s.debt_id, s.ordinal`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			debtID   string
			split    models.Split
			isPaid   int
			paidDate sql.NullString
		)
		if err := rows.Scan(&debtID, &split.ParticipantID, &split.Amount, &isPaid, &paidDate); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		split.IsPaid = isPaid != 0
		if split.PaidDate, err = parseNullTime(paidDate); err != nil {
			return err
		}
		if d, ok := byID[debtID]; ok {
			d.Splits = append(d.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

func scanDebt(row scanner) (*models.Debt, error) {
	d := &models.Debt{}
	var (
		kind, status, splitMode string
		createdDate, updatedAt  string
		dueDate                 sql.NullString
	)
	err := row.Scan(&d.ID, &kind, &d.Title, &d.Description, &d.TotalAmount, &d.PaidAmount, &status,
		&d.CounterpartyID, &splitMode, &createdDate, &dueDate, &d.Notes, &updatedAt)
	if err != nil {
		return nil, err
	}

	d.Kind = models.DebtKind(kind)
	d.Status = models.DebtStatus(status)
	d.SplitMode = models.SplitMode(splitMode)
	if d.CreatedDate, err = parseTime(createdDate); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if d.DueDate, err = parseNullTime(dueDate); err != nil {
		return nil, err
	}
	return d, nil
}

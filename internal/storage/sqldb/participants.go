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

// CreateParticipant persists a new participant.
func (s *Store) CreateParticipant(ctx context.Context, ownerID string, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.exec(ctx, s.db,
		`INSERT INTO participants (id, owner_id, name, email, phone, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, ownerID, p.Name, p.Email, p.Phone, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *Store) GetParticipant(ctx context.Context, ownerID, participantID string) (*models.Participant, error) {
	row := s.queryRow(ctx, s.db,
		`SELECT id, name, email, phone, created_at
		 FROM participants WHERE id = ? AND owner_id = ?`,
		participantID, ownerID,
	)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ListParticipants returns the owner's participants ordered by name.
func (s *Store) ListParticipants(ctx context.Context, ownerID string) ([]*models.Participant, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT id, name, email, phone, created_at
		 FROM participants WHERE owner_id = ? ORDER BY name, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpdateParticipant replaces name, email and phone.
func (s *Store) UpdateParticipant(ctx context.Context, ownerID string, p *models.Participant) error {
	return s.execOne(ctx, s.db, "participant", p.ID,
		`UPDATE participants SET name = ?, email = ?, phone = ? WHERE id = ? AND owner_id = ?`,
		p.Name, p.Email, p.Phone, p.ID, ownerID,
	)
}

// DeleteParticipant removes the participant row only.
func (s *Store) DeleteParticipant(ctx context.Context, ownerID, participantID string) error {
	return s.execOne(ctx, s.db, "participant", participantID,
		`DELETE FROM participants WHERE id = ? AND owner_id = ?`,
		participantID, ownerID,
	)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row scanner) (*models.Participant, error) {
	p := &models.Participant{}
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return p, nil
}

// Package directory maps participant IDs to display metadata.
//
// Debts reference participants by ID only. A participant can be deleted while
// debts still point at it; Resolve then returns a placeholder named
// models.UnknownParticipantName instead of failing.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/storage"
)

var (
	// ErrNameRequired is returned when a participant has a blank name.
	ErrNameRequired = errors.New("participant name is required")
	// ErrUnknownParticipant is returned when a reference names an ID the owner does not have.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrEmptyRef is returned for a reference with neither an ID nor a name.
	ErrEmptyRef = errors.New("participant reference needs an id or a name")
)

// Ref points at an existing participant by ID, or describes a new one to create.
type Ref struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Directory is the participant lookup used by the debt service.
type Directory struct {
	store storage.Store
}

// New creates a Directory over store.
func New(store storage.Store) *Directory {
	return &Directory{store: store}
}

// Add validates and persists a new participant.
func (d *Directory) Add(ctx context.Context, ownerID string, p *models.Participant) error {
	normalize(p)
	if p.Name == "" {
		return ErrNameRequired
	}
	if err := d.store.CreateParticipant(ctx, ownerID, p); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	slog.Debug("Participant added", "owner_id", ownerID, "participant_id", p.ID)
	return nil
}

// Get returns the participant or an error wrapping storage.ErrNotFound.
func (d *Directory) Get(ctx context.Context, ownerID, id string) (*models.Participant, error) {
	return d.store.GetParticipant(ctx, ownerID, id)
}

// List returns all of the owner's participants ordered by name.
func (d *Directory) List(ctx context.Context, ownerID string) ([]*models.Participant, error) {
	return d.store.ListParticipants(ctx, ownerID)
}

// Update replaces the participant's display fields.
func (d *Directory) Update(ctx context.Context, ownerID string, p *models.Participant) error {
	normalize(p)
	if p.Name == "" {
		return ErrNameRequired
	}
	return d.store.UpdateParticipant(ctx, ownerID, p)
}

// Remove deletes the participant. Debts keep the dangling ID.
func (d *Directory) Remove(ctx context.Context, ownerID, id string) error {
	return d.store.DeleteParticipant(ctx, ownerID, id)
}

// Resolve looks up every id. IDs that no longer exist map to an unknown placeholder.
func (d *Directory) Resolve(ctx context.Context, ownerID string, ids []string) (map[string]*models.Participant, error) {
	resolved := make(map[string]*models.Participant, len(ids))
	if len(ids) == 0 {
		return resolved, nil
	}

	all, err := d.store.ListParticipants(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	known := make(map[string]*models.Participant, len(all))
	for _, p := range all {
		known[p.ID] = p
	}

	for _, id := range ids {
		if p, ok := known[id]; ok {
			resolved[id] = p
			continue
		}
		resolved[id] = models.UnknownParticipant(id)
	}
	return resolved, nil
}

// Ensure returns the ID for ref, creating the participant when ref has no ID.
// An ID that does not exist for the owner is rejected with ErrUnknownParticipant.
func (d *Directory) Ensure(ctx context.Context, ownerID string, ref Ref) (string, error) {
	if ref.ID != "" {
		if _, err := d.store.GetParticipant(ctx, ownerID, ref.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("%w: %s", ErrUnknownParticipant, ref.ID)
			}
			return "", err
		}
		return ref.ID, nil
	}

	if strings.TrimSpace(ref.Name) == "" {
		return "", ErrEmptyRef
	}

	p := &models.Participant{Name: ref.Name, Email: ref.Email, Phone: ref.Phone}
	if err := d.Add(ctx, ownerID, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func normalize(p *models.Participant) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
}

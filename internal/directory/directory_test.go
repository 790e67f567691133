package directory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/storage"
	"github.com/mmynk/debtledger/internal/storage/sqldb"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "debtledger-directory-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqldb.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store)
}

func TestDirectory_Add(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		p       *models.Participant
		wantErr error
	}{
		{"valid participant", &models.Participant{Name: "Alice"}, nil},
		{"name is trimmed", &models.Participant{Name: "  Bob  ", Email: " bob@example.com "}, nil},
		{"blank name rejected", &models.Participant{Name: "   "}, ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dir.Add(ctx, "owner-1", tt.p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && tt.p.ID == "" {
				t.Error("Expected participant ID to be generated")
			}
		})
	}

	list, err := dir.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[1].Name != "Bob" || list[1].Email != "bob@example.com" {
		t.Errorf("List = %+v", list)
	}
}

func TestDirectory_ResolveUnknown(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	alice := &models.Participant{Name: "Alice"}
	gone := &models.Participant{Name: "Gone"}
	for _, p := range []*models.Participant{alice, gone} {
		if err := dir.Add(ctx, "owner-1", p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := dir.Remove(ctx, "owner-1", gone.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	resolved, err := dir.Resolve(ctx, "owner-1", []string{alice.ID, gone.ID, "never-existed"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved[alice.ID].Name != "Alice" {
		t.Errorf("alice resolved to %q", resolved[alice.ID].Name)
	}
	for _, id := range []string{gone.ID, "never-existed"} {
		p := resolved[id]
		if p == nil || p.Name != models.UnknownParticipantName || p.ID != id {
			t.Errorf("Resolve(%s) = %+v, want unknown placeholder", id, p)
		}
	}
}

func TestDirectory_Ensure(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	existing := &models.Participant{Name: "Alice"}
	if err := dir.Add(ctx, "owner-1", existing); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("existing id is returned as is", func(t *testing.T) {
		id, err := dir.Ensure(ctx, "owner-1", Ref{ID: existing.ID})
		if err != nil || id != existing.ID {
			t.Errorf("Ensure() = %q, %v; want %q", id, err, existing.ID)
		}
	})

	t.Run("new name creates a participant", func(t *testing.T) {
		id, err := dir.Ensure(ctx, "owner-1", Ref{Name: "Dan", Phone: "555-0199"})
		if err != nil {
			t.Fatalf("Ensure() error = %v", err)
		}
		p, err := dir.Get(ctx, "owner-1", id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if p.Name != "Dan" || p.Phone != "555-0199" {
			t.Errorf("created participant = %+v", p)
		}
	})

	t.Run("unknown id is rejected", func(t *testing.T) {
		_, err := dir.Ensure(ctx, "owner-1", Ref{ID: "missing"})
		if !errors.Is(err, ErrUnknownParticipant) {
			t.Errorf("Ensure() error = %v, want ErrUnknownParticipant", err)
		}
	})

	t.Run("another owner's id is rejected", func(t *testing.T) {
		_, err := dir.Ensure(ctx, "owner-2", Ref{ID: existing.ID})
		if !errors.Is(err, ErrUnknownParticipant) {
			t.Errorf("Ensure() error = %v, want ErrUnknownParticipant", err)
		}
	})

	t.Run("empty ref is rejected", func(t *testing.T) {
		if _, err := dir.Ensure(ctx, "owner-1", Ref{}); !errors.Is(err, ErrEmptyRef) {
			t.Errorf("Ensure() error = %v, want ErrEmptyRef", err)
		}
	})
}

func TestDirectory_UpdateMissing(t *testing.T) {
	dir := newTestDirectory(t)
	err := dir.Update(context.Background(), "owner-1", &models.Participant{ID: "missing", Name: "X"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

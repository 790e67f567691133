package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/debtledger/pkg/api"
)

func TestAddParticipant(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
		Name:  " Alice ",
		Email: "alice@example.com",
		Phone: "555-0100",
	}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	p := resp.Msg.Participant
	if p.ID == "" {
		t.Error("expected participant id to be set")
	}
	if p.Name != "Alice" {
		t.Errorf("expected trimmed name Alice, got %q", p.Name)
	}
	if p.Email != "alice@example.com" || p.Phone != "555-0100" {
		t.Errorf("unexpected contact fields: %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestAddParticipant_Validation(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name string
		req  *api.AddParticipantRequest
	}{
		{"missing name", &api.AddParticipantRequest{}},
		{"blank name", &api.AddParticipantRequest{Name: "   "}},
		{"bad email", &api.AddParticipantRequest{Name: "Bob", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.participants.AddParticipant(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetParticipant(t *testing.T) {
	env := setupTestServer(t)

	added, err := env.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{Name: "Bob"}))
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	resp, err := env.participants.GetParticipant(context.Background(), connect.NewRequest(&api.GetParticipantRequest{
		ParticipantID: added.Msg.Participant.ID,
	}))
	if err != nil {
		t.Fatalf("GetParticipant failed: %v", err)
	}
	if resp.Msg.Participant.Name != "Bob" {
		t.Errorf("expected Bob, got %s", resp.Msg.Participant.Name)
	}

	_, err = env.participants.GetParticipant(context.Background(), connect.NewRequest(&api.GetParticipantRequest{ParticipantID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListParticipants(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.participants.ListParticipants(context.Background(), connect.NewRequest(&api.ListParticipantsRequest{}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	if len(resp.Msg.Participants) != 0 {
		t.Errorf("expected empty directory, got %d", len(resp.Msg.Participants))
	}

	for _, name := range []string{"Carol", "Alice", "Bob"} {
		if _, err := env.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{Name: name})); err != nil {
			t.Fatalf("AddParticipant(%s) failed: %v", name, err)
		}
	}

	resp, err = env.participants.ListParticipants(context.Background(), connect.NewRequest(&api.ListParticipantsRequest{}))
	if err != nil {
		t.Fatalf("ListParticipants failed: %v", err)
	}
	want := []string{"Alice", "Bob", "Carol"}
	if len(resp.Msg.Participants) != len(want) {
		t.Fatalf("expected %d participants, got %d", len(want), len(resp.Msg.Participants))
	}
	for i, p := range resp.Msg.Participants {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}

func TestUpdateParticipant(t *testing.T) {
	env := setupTestServer(t)

	debt := env.createDebt(t, groupInput("20", "Ann", "Ben"))
	annID := debt.Splits[0].ParticipantID

	resp, err := env.participants.UpdateParticipant(context.Background(), connect.NewRequest(&api.UpdateParticipantRequest{
		ParticipantID: annID,
		Name:          "Annie",
		Email:         "annie@example.com",
	}))
	if err != nil {
		t.Fatalf("UpdateParticipant failed: %v", err)
	}
	if resp.Msg.Participant.Name != "Annie" || resp.Msg.Participant.CreatedAt.IsZero() {
		t.Errorf("unexpected participant: %+v", resp.Msg.Participant)
	}

	// Debts pick up the new name on the next read.
	got := env.getDebt(t, debt.ID)
	if got.Splits[0].ParticipantName != "Annie" {
		t.Errorf("expected renamed split participant, got %s", got.Splits[0].ParticipantName)
	}

	_, err = env.participants.UpdateParticipant(context.Background(), connect.NewRequest(&api.UpdateParticipantRequest{
		ParticipantID: "missing",
		Name:          "Nobody",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteParticipant_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.participants.DeleteParticipant(context.Background(), connect.NewRequest(&api.DeleteParticipantRequest{ParticipantID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.participants.DeleteParticipant(context.Background(), connect.NewRequest(&api.DeleteParticipantRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

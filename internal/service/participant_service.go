package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/debtledger/internal/directory"
	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/pkg/api"
)

// ParticipantService implements the Connect ParticipantService over the owner's directory.
type ParticipantService struct {
	directory *directory.Directory
	validate  *validator.Validate
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(dir *directory.Directory) *ParticipantService {
	return &ParticipantService{directory: dir, validate: newValidator()}
}

// AddParticipant creates a participant in the owner's directory.
func (s *ParticipantService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("AddParticipant", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("AddParticipant", err)
	}

	p := &models.Participant{Name: req.Msg.Name, Email: req.Msg.Email, Phone: req.Msg.Phone}
	if err := s.directory.Add(ctx, ownerID, p); err != nil {
		return nil, toConnectError("AddParticipant", err)
	}

	return connect.NewResponse(&api.AddParticipantResponse{Participant: toAPIParticipant(p)}), nil
}

// GetParticipant returns one participant.
func (s *ParticipantService) GetParticipant(ctx context.Context, req *connect.Request[api.GetParticipantRequest]) (*connect.Response[api.GetParticipantResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("GetParticipant", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("GetParticipant", err)
	}

	p, err := s.directory.Get(ctx, ownerID, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError("GetParticipant", err)
	}
	return connect.NewResponse(&api.GetParticipantResponse{Participant: toAPIParticipant(p)}), nil
}

// ListParticipants returns the owner's directory ordered by name.
func (s *ParticipantService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("ListParticipants", err)
	}

	participants, err := s.directory.List(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("ListParticipants", err)
	}

	out := make([]*api.Participant, len(participants))
	for i, p := range participants {
		out[i] = toAPIParticipant(p)
	}
	return connect.NewResponse(&api.ListParticipantsResponse{Participants: out}), nil
}

// UpdateParticipant replaces a participant's display fields.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, req *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.UpdateParticipantResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("UpdateParticipant", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("UpdateParticipant", err)
	}

	p := &models.Participant{
		ID:    req.Msg.ParticipantID,
		Name:  req.Msg.Name,
		Email: req.Msg.Email,
		Phone: req.Msg.Phone,
	}
	if err := s.directory.Update(ctx, ownerID, p); err != nil {
		return nil, toConnectError("UpdateParticipant", err)
	}

	updated, err := s.directory.Get(ctx, ownerID, p.ID)
	if err != nil {
		return nil, toConnectError("UpdateParticipant", err)
	}
	return connect.NewResponse(&api.UpdateParticipantResponse{Participant: toAPIParticipant(updated)}), nil
}

// DeleteParticipant removes a participant. Debts that reference it show it as unknown.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, req *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("DeleteParticipant", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("DeleteParticipant", err)
	}

	if err := s.directory.Remove(ctx, ownerID, req.Msg.ParticipantID); err != nil {
		return nil, toConnectError("DeleteParticipant", err)
	}
	slog.Info("Participant deleted", "owner_id", ownerID, "participant_id", req.Msg.ParticipantID)

	return connect.NewResponse(&api.DeleteParticipantResponse{}), nil
}

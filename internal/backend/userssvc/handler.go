package userssvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// handlers binds the users operations to the RPC server.
type handlers struct {
	svc *Service
	v   *validator.Validate
}

// RegisterHandlers mounts every users operation on the server.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	h := &handlers{svc: svc, v: validator.New()}

	srv.Handle(rpc.PatternUserCreate, h.create)
	srv.Handle(rpc.PatternUserGetByName, h.getByUsername)
	srv.Handle(rpc.PatternUserGetByIDHash, h.getByIDHash)
	srv.Handle(rpc.PatternUserGetByID, h.getByID)
	srv.Handle(rpc.PatternUserGetUsers, h.getUsers)
	srv.Handle(rpc.PatternUserUpdate, h.update)
	srv.Handle(rpc.PatternUserSoftDelete, h.softDelete)
}

func (h *handlers) decode(payload json.RawMessage, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return &rpc.ValidationError{Messages: []string{"malformed payload"}}
	}
	if err := h.v.Struct(out); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return &rpc.ValidationError{Messages: []string{"invalid payload"}}
		}
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return &rpc.ValidationError{Messages: msgs}
	}
	return nil
}

func toRegisterInput(p createUserPayload) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		Username:    p.Username,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
	}
}

func toUpdateInput(p updateUserPayload) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		IDHash:      p.IDHash,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
	}
}

type createUserPayload struct {
	Username    string `json:"username" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

func (h *handlers) create(ctx context.Context, payload json.RawMessage) (any, error) {
	var p createUserPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Create(ctx, toRegisterInput(p))
}

type usernamePayload struct {
	Username string `json:"username" validate:"required"`
}

func (h *handlers) getByUsername(ctx context.Context, payload json.RawMessage) (any, error) {
	var p usernamePayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.GetByUsername(ctx, p.Username)
}

type idHashPayload struct {
	IDHash string `json:"idHash" validate:"required"`
}

func (h *handlers) getByIDHash(ctx context.Context, payload json.RawMessage) (any, error) {
	var p idHashPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.GetByIDHash(ctx, p.IDHash)
}

type idPayload struct {
	ID string `json:"id" validate:"required"`
}

func (h *handlers) getByID(ctx context.Context, payload json.RawMessage) (any, error) {
	var p idPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.GetByID(ctx, p.ID)
}

type pagePayload struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p *pagePayload) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
}

func (h *handlers) getUsers(ctx context.Context, payload json.RawMessage) (any, error) {
	var p pagePayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	p.normalize()
	return h.svc.GetUsers(ctx, p.Page, p.Limit)
}

type updateUserPayload struct {
	IDHash      string  `json:"idHash" validate:"required"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

func (h *handlers) update(ctx context.Context, payload json.RawMessage) (any, error) {
	var p updateUserPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Update(ctx, toUpdateInput(p))
}

func (h *handlers) softDelete(ctx context.Context, payload json.RawMessage) (any, error) {
	var p idHashPayload
	if err := h.decode(payload, &p); err != nil {
		return nil, err
	}
	user, err := h.svc.SoftDelete(ctx, p.IDHash)
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "user": user}, nil
}

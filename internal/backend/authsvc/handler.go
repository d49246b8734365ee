package authsvc

import (
	"context"
	"encoding/json"

	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// handlers binds the auth operations to the RPC server.
type handlers struct {
	svc *Service
}

// RegisterHandlers mounts every auth operation on the server.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	h := &handlers{svc: svc}

	srv.Handle(rpc.PatternAuthRegisterCredential, h.register)
	srv.Handle(rpc.PatternAuthLogin, h.login)
	srv.Handle(rpc.PatternAuthValidateToken, h.validateToken)
	srv.Handle(rpc.PatternAuthGetUserRole, h.getUserRole)
}

func decode(payload json.RawMessage, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return &rpc.ValidationError{Messages: []string{"malformed payload"}}
	}
	return nil
}

type registerPayload struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *handlers) register(ctx context.Context, payload json.RawMessage) (any, error) {
	var p registerPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	if p.UserID == "" || p.Password == "" {
		return nil, &rpc.ValidationError{Messages: []string{"userId and password are required"}}
	}
	return h.svc.Register(ctx, p.UserID, p.Password, p.Role)
}

type loginPayload struct {
	UserID   string `json:"userId"`
	IDHash   string `json:"idHash"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handlers) login(ctx context.Context, payload json.RawMessage) (any, error) {
	var p loginPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Login(ctx, toLoginInput(p))
}

func toLoginInput(p loginPayload) ports.LoginInput {
	return ports.LoginInput{
		UserID:   p.UserID,
		IDHash:   p.IDHash,
		Username: p.Username,
		Password: p.Password,
	}
}

type tokenPayload struct {
	Token string `json:"token"`
}

func (h *handlers) validateToken(ctx context.Context, payload json.RawMessage) (any, error) {
	var p tokenPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	return h.svc.Validate(ctx, p.Token), nil
}

type userIDPayload struct {
	UserID string `json:"userId"`
}

func (h *handlers) getUserRole(ctx context.Context, payload json.RawMessage) (any, error) {
	var p userIDPayload
	if err := decode(payload, &p); err != nil {
		return nil, err
	}
	role, err := h.svc.Role(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return map[string]string{"role": role}, nil
}

package clients

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// AuthClient talks to the auth service.
type AuthClient struct {
	caller *rpc.Caller
}

func NewAuthClient(caller *rpc.Caller) *AuthClient {
	return &AuthClient{caller: caller}
}

func (c *AuthClient) RegisterCredential(ctx context.Context, userID, password, role string) (*domain.Credential, error) {
	var cred domain.Credential
	payload := map[string]string{"userId": userID, "password": password, "role": role}
	if err := c.caller.Call(ctx, rpc.PatternAuthRegisterCredential, payload, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (c *AuthClient) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	var result ports.LoginResult
	if err := c.caller.Call(ctx, rpc.PatternAuthLogin, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *AuthClient) ValidateToken(ctx context.Context, token string) (*ports.TokenValidation, error) {
	var result ports.TokenValidation
	payload := map[string]string{"token": token}
	if err := c.caller.Call(ctx, rpc.PatternAuthValidateToken, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *AuthClient) GetUserRole(ctx context.Context, userID string) (string, error) {
	var reply struct {
		Role string `json:"role"`
	}
	payload := map[string]string{"userId": userID}
	if err := c.caller.Call(ctx, rpc.PatternAuthGetUserRole, payload, &reply); err != nil {
		return "", err
	}
	return reply.Role, nil
}

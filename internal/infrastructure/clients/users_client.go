// Package clients implements the gateway's backend-service ports on top
// of the rpc caller and emitter.
package clients

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// UsersClient talks to the users service.
type UsersClient struct {
	caller *rpc.Caller
}

func NewUsersClient(caller *rpc.Caller) *UsersClient {
	return &UsersClient{caller: caller}
}

func (c *UsersClient) Create(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	var user domain.User
	if err := c.caller.Call(ctx, rpc.PatternUserCreate, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UsersClient) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	payload := map[string]string{"username": username}
	if err := c.caller.Call(ctx, rpc.PatternUserGetByName, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UsersClient) GetByIDHash(ctx context.Context, idHash string) (*domain.User, error) {
	var user domain.User
	payload := map[string]string{"idHash": idHash}
	if err := c.caller.Call(ctx, rpc.PatternUserGetByIDHash, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UsersClient) GetByID(ctx context.Context, id string) (*domain.UserDisplay, error) {
	var display domain.UserDisplay
	payload := map[string]string{"id": id}
	if err := c.caller.Call(ctx, rpc.PatternUserGetByID, payload, &display); err != nil {
		return nil, err
	}
	return &display, nil
}

func (c *UsersClient) GetUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	var result domain.Page[domain.User]
	payload := map[string]int{"page": page, "limit": limit}
	if err := c.caller.Call(ctx, rpc.PatternUserGetUsers, payload, &result); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return result, nil
}

func (c *UsersClient) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	var user domain.User
	if err := c.caller.Call(ctx, rpc.PatternUserUpdate, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *UsersClient) SoftDelete(ctx context.Context, idHash string) (*domain.User, error) {
	var reply struct {
		Success bool        `json:"success"`
		User    domain.User `json:"user"`
	}
	payload := map[string]string{"idHash": idHash}
	if err := c.caller.Call(ctx, rpc.PatternUserSoftDelete, payload, &reply); err != nil {
		return nil, err
	}
	return &reply.User, nil
}

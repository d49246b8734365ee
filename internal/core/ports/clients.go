// Package ports declares the interfaces between the gateway's domain
// services and everything remote: backend service clients, the event
// emitter, and the gateway-facing service contracts.
package ports

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
)

// RegisterUserInput carries the profile fields for users.create-user.
type RegisterUserInput struct {
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// UpdateUserInput carries a partial profile update; nil fields are left
// untouched by the users service.
type UpdateUserInput struct {
	IDHash      string  `json:"idHash"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// UsersClient is the gateway's view of the users service.
type UsersClient interface {
	Create(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIDHash(ctx context.Context, idHash string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.UserDisplay, error)
	GetUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	SoftDelete(ctx context.Context, idHash string) (*domain.User, error)
}

// RevertEmitter issues the best-effort compensating event that undoes a
// user creation. Emit semantics: no reply is awaited and no error is
// returned; a lost event leaves a credentials-less profile behind, an
// accepted trade-off. Implementations are the seam for upgrading to a
// tracked, retryable operation without touching call sites.
type RevertEmitter interface {
	EmitRevertCreateUser(in RegisterUserInput)
}

// LoginInput is the auth.login payload. The gateway resolves the username
// to a user record first; the auth service authenticates by internal id.
type LoginInput struct {
	UserID   string `json:"userId"`
	IDHash   string `json:"idHash"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the auth.login reply.
type LoginResult struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// TokenValidation is the auth.validate-token reply. IsValid false inside
// a success envelope is a legitimate negative result, not an error.
type TokenValidation struct {
	IsValid bool                 `json:"isValid"`
	User    domain.IdentityClaim `json:"user"`
}

// AuthClient is the gateway's view of the auth service.
type AuthClient interface {
	RegisterCredential(ctx context.Context, userID, password, role string) (*domain.Credential, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	ValidateToken(ctx context.Context, token string) (*TokenValidation, error)
	GetUserRole(ctx context.Context, userID string) (string, error)
}

// CreateTweetInput carries the tweets.create-tweet payload.
type CreateTweetInput struct {
	AuthorID string `json:"authorId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// UpdateTweetInput carries a partial tweet update.
type UpdateTweetInput struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// TweetsClient is the gateway's view of the tweets service.
type TweetsClient interface {
	Create(ctx context.Context, in CreateTweetInput) (*domain.Tweet, error)
	GetTweets(ctx context.Context, page, limit int) (domain.Page[domain.Tweet], error)
	GetTweet(ctx context.Context, id string) (*domain.Tweet, error)
	Update(ctx context.Context, in UpdateTweetInput) (*domain.Tweet, error)
	SoftDelete(ctx context.Context, id string) (*domain.Tweet, error)
	SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}

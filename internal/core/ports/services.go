package ports

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
)

// RegisterInput is the registration intent flowing from the inbound
// request into the orchestrator. It is never persisted by the gateway.
type RegisterInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Role        string
}

// RegistrationResult is the all-or-nothing outcome of a registration:
// both the user profile and the credential, or an error.
type RegistrationResult struct {
	User *domain.User
	Auth *domain.Credential
}

// LoginUserInput is the client-facing login request.
type LoginUserInput struct {
	Username string
	Password string
}

// LoginUserResult combines the profile with the issued token.
type LoginUserResult struct {
	User  domain.User
	Role  string
	Token string
}

// AccountService is the registration orchestrator plus login.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error)
	Login(ctx context.Context, in LoginUserInput) (*LoginUserResult, error)
}

// UserWithRole joins a profile with the role held by the auth service.
type UserWithRole struct {
	domain.User
	Role string `json:"role"`
}

// UsersService aggregates users-service records with auth-service roles
// and applies the ownership policy on mutations.
type UsersService interface {
	GetUsers(ctx context.Context, page, limit int) (domain.Page[UserWithRole], error)
	GetByIDHash(ctx context.Context, idHash string) (*UserWithRole, error)
	Update(ctx context.Context, caller domain.IdentityClaim, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, idHash string) (*domain.User, error)
}

// TweetWithAuthor joins a tweet with its author's display identity.
type TweetWithAuthor struct {
	domain.Tweet
	Author domain.UserDisplay `json:"author"`
}

// TweetsService aggregates tweets with author identity and applies the
// ownership policy on mutations.
type TweetsService interface {
	List(ctx context.Context, page, limit int) (domain.Page[TweetWithAuthor], error)
	Get(ctx context.Context, id string) (*TweetWithAuthor, error)
	Post(ctx context.Context, caller domain.IdentityClaim, title, content string) (*domain.Tweet, error)
	Update(ctx context.Context, caller domain.IdentityClaim, id string, title, content *string) (*TweetWithAuthor, error)
	Delete(ctx context.Context, caller domain.IdentityClaim, id string) (*domain.Tweet, error)
}

package authsvc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// Service implements the auth operations behind the RPC surface.
type Service struct {
	repo   Repository
	tokens *TokenIssuer
	log    zerolog.Logger
}

func NewService(repo Repository, tokens *TokenIssuer, log zerolog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, log: log}
}

// Register stores the credential for a freshly created user. A duplicate
// user id is a conflict; this is the second leg of registration, so the
// gateway compensates by reverting the profile when it sees the error.
func (s *Service) Register(ctx context.Context, userID, password, role string) (*domain.Credential, error) {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &credentialRecord{
		UserID:       userID,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("role", role).Msg("credential registered")
	return &domain.Credential{UserID: userID, Role: role}, nil
}

// Login verifies the password and issues a token. A missing credential and
// a wrong password collapse into the same error so callers cannot probe
// which usernames exist.
func (s *Service) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	rec, err := s.repo.FindByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.IdentityClaim{
		SubjectID: rec.UserID,
		IDHash:    in.IDHash,
		Username:  in.Username,
		Role:      rec.Role,
	})
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{UserID: rec.UserID, Role: rec.Role, Token: token}, nil
}

// Validate checks a token. A bad or expired token is a negative result,
// not an error: the reply still travels in a success envelope so the
// gateway can tell "invalid token" apart from "auth service broken".
func (s *Service) Validate(_ context.Context, token string) ports.TokenValidation {
	claim, err := s.tokens.Verify(token)
	if err != nil {
		return ports.TokenValidation{IsValid: false}
	}
	return ports.TokenValidation{IsValid: true, User: claim}
}

// Role returns the role held by a user id.
func (s *Service) Role(ctx context.Context, userID string) (string, error) {
	rec, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return rec.Role, nil
}

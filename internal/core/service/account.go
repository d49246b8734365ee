package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/metrics"
)

// AccountService coordinates registration across the users and auth
// services, and login across the same pair. Registration is a
// compensating-transaction flow: there is no shared transactional
// boundary between the two services, so a credential failure triggers an
// explicit undo of the user creation.
type AccountService struct {
	users  ports.UsersClient
	auth   ports.AuthClient
	revert ports.RevertEmitter
	log    zerolog.Logger
}

func NewAccountService(users ports.UsersClient, auth ports.AuthClient, revert ports.RevertEmitter, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, auth: auth, revert: revert, log: log}
}

// Register creates the user profile, then the credential. Step ordering
// is strict: the credential insert needs the user id assigned by step one.
//
// Failure semantics:
//   - user-create failure: propagated unchanged, nothing to compensate.
//   - credential failure: a revert event is emitted (best effort, not
//     awaited) and the original credential error is re-raised. The caller
//     never sees a partial result.
//
// Create-user is not idempotent (duplicate username is a conflict), so a
// client retrying after a credential failure may hit "username exists"
// until the revert lands. Registration is not safely retriable blind.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegistrationResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	profile := ports.RegisterUserInput{
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
	}

	s.log.Info().Str("username", in.Username).Msg("registering user")
	user, err := s.users.Create(ctx, profile)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("user creation failed")
		metrics.RegistrationsTotal.WithLabelValues("user_create_failed").Inc()
		return nil, err
	}

	cred, err := s.auth.RegisterCredential(ctx, user.ID, in.Password, role)
	if err != nil {
		s.log.Error().Err(err).
			Str("username", in.Username).
			Str("user_id", user.ID).
			Msg("credential creation failed, reverting user creation")
		s.revert.EmitRevertCreateUser(profile)
		metrics.RegistrationsTotal.WithLabelValues("credential_failed").Inc()
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("registration complete")
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return &ports.RegistrationResult{User: user, Auth: cred}, nil
}

// Login resolves the username to a profile, then authenticates against
// the auth service. Both lookup and authentication failures collapse into
// ErrInvalidCredentials so callers cannot probe which usernames exist.
func (s *AccountService) Login(ctx context.Context, in ports.LoginUserInput) (*ports.LoginUserResult, error) {
	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Msg("login: user lookup failed")
		return nil, domain.ErrInvalidCredentials
	}

	auth, err := s.auth.Login(ctx, ports.LoginInput{
		UserID:   user.ID,
		IDHash:   user.IDHash,
		Username: user.Username,
		Password: in.Password,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("username", in.Username).Msg("login: authentication failed")
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.LoginUserResult{User: *user, Role: auth.Role, Token: auth.Token}, nil
}

package userssvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// idHashLen is the length of the public identifier derived from the
// internal id. Clients only ever see the hash.
const idHashLen = 10

// Service implements the users operations behind the RPC surface.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func newIDPair() (id, idHash string) {
	id = uuid.NewString()
	idHash = strings.ReplaceAll(uuid.NewString(), "-", "")[:idHashLen]
	return id, idHash
}

// Create inserts a new profile. Duplicate usernames are a conflict; the
// unique index is the authority, the pre-check just gives the common case
// a cleaner path.
func (s *Service) Create(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	id, idHash := newIDPair()
	user := &domain.User{
		ID:          id,
		IDHash:      idHash,
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

// RevertCreate is the compensating half of registration: it removes the
// profile a failed registration left behind. Idempotent; reverting an
// already-absent username is a no-op.
func (s *Service) RevertCreate(ctx context.Context, username string) error {
	deleted, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return err
	}
	s.log.Info().Str("username", username).Int64("deleted", deleted).Msg("user creation reverted")
	return nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *Service) GetByIDHash(ctx context.Context, idHash string) (*domain.User, error) {
	return s.repo.FindByIDHash(ctx, idHash)
}

// GetByID returns the display projection used for author joins.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.UserDisplay, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.UserDisplay{IDHash: user.IDHash, Username: user.Username}, nil
}

func (s *Service) GetUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	users, total, err := s.repo.Find(ctx, page, limit)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.NewPage(users, total, page, limit), nil
}

// Update applies a partial profile edit; nil fields stay untouched.
func (s *Service) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByIDHash(ctx, in.IDHash)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = *in.DateOfBirth
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SoftDelete marks the profile deleted and returns its final state.
func (s *Service) SoftDelete(ctx context.Context, idHash string) (*domain.User, error) {
	user, err := s.repo.FindByIDHash(ctx, idHash)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.DeletedAt = &now
	user.UpdatedAt = now

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user soft-deleted")
	return user, nil
}

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// UsersService joins users-service records with the roles held by the
// auth service and applies the ownership policy on mutations.
type UsersService struct {
	users  ports.UsersClient
	auth   ports.AuthClient
	tweets ports.TweetsClient
	log    zerolog.Logger
}

func NewUsersService(users ports.UsersClient, auth ports.AuthClient, tweets ports.TweetsClient, log zerolog.Logger) *UsersService {
	return &UsersService{users: users, auth: auth, tweets: tweets, log: log}
}

// GetUsers returns a page of profiles, each joined with its role. A role
// lookup failure fails the whole page; no degraded rendering.
func (s *UsersService) GetUsers(ctx context.Context, page, limit int) (domain.Page[ports.UserWithRole], error) {
	userPage, err := s.users.GetUsers(ctx, page, limit)
	if err != nil {
		return domain.Page[ports.UserWithRole]{}, err
	}

	joined := make([]ports.UserWithRole, 0, len(userPage.Data))
	for _, user := range userPage.Data {
		role, err := s.auth.GetUserRole(ctx, user.ID)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("role lookup failed")
			return domain.Page[ports.UserWithRole]{}, err
		}
		joined = append(joined, ports.UserWithRole{User: user, Role: role})
	}

	return domain.Page[ports.UserWithRole]{
		Data:        joined,
		TotalCount:  userPage.TotalCount,
		CurrentPage: userPage.CurrentPage,
		TotalPages:  userPage.TotalPages,
		HasNextPage: userPage.HasNextPage,
		HasPrevPage: userPage.HasPrevPage,
	}, nil
}

// GetByIDHash returns one profile joined with its role.
func (s *UsersService) GetByIDHash(ctx context.Context, idHash string) (*ports.UserWithRole, error) {
	user, err := s.users.GetByIDHash(ctx, idHash)
	if err != nil {
		return nil, err
	}
	role, err := s.auth.GetUserRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.UserWithRole{User: *user, Role: role}, nil
}

// Update applies a partial profile update after the ownership check:
// only the profile's owner or an admin may mutate it.
func (s *UsersService) Update(ctx context.Context, caller domain.IdentityClaim, in ports.UpdateUserInput) (*domain.User, error) {
	if !caller.CanActOn(in.IDHash) {
		s.log.Warn().
			Str("caller", caller.Username).
			Str("target", in.IDHash).
			Msg("update user forbidden")
		return nil, domain.ErrForbidden
	}
	return s.users.Update(ctx, in)
}

// Delete soft-deletes the profile, then cascades a soft delete of the
// user's tweets. The cascade is best effort: the profile deletion has
// already happened, so a tweets-service failure is logged, not unwound.
func (s *UsersService) Delete(ctx context.Context, idHash string) (*domain.User, error) {
	user, err := s.users.SoftDelete(ctx, idHash)
	if err != nil {
		return nil, err
	}

	if n, err := s.tweets.SoftDeleteByAuthor(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("tweet cascade delete failed")
	} else {
		s.log.Info().Str("user_id", user.ID).Int64("tweets", n).Msg("user deleted with tweets")
	}

	return user, nil
}

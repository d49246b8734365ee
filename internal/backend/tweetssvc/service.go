package tweetssvc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// Service implements the tweets operations behind the RPC surface.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, in ports.CreateTweetInput) (*domain.Tweet, error) {
	now := time.Now().UTC()
	tweet := &domain.Tweet{
		ID:        uuid.NewString(),
		AuthorID:  in.AuthorID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, tweet); err != nil {
		return nil, err
	}

	s.log.Info().Str("tweet_id", tweet.ID).Str("author_id", tweet.AuthorID).Msg("tweet created")
	return tweet, nil
}

func (s *Service) GetTweets(ctx context.Context, page, limit int) (domain.Page[domain.Tweet], error) {
	tweets, total, err := s.repo.Find(ctx, page, limit)
	if err != nil {
		return domain.Page[domain.Tweet]{}, err
	}
	return domain.NewPage(tweets, total, page, limit), nil
}

func (s *Service) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial edit; nil fields stay untouched.
func (s *Service) Update(ctx context.Context, in ports.UpdateTweetInput) (*domain.Tweet, error) {
	tweet, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		tweet.Title = *in.Title
	}
	if in.Content != nil {
		tweet.Content = *in.Content
	}
	tweet.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// SoftDelete marks one tweet deleted and returns its final state.
func (s *Service) SoftDelete(ctx context.Context, id string) (*domain.Tweet, error) {
	tweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tweet.DeletedAt = &now
	tweet.UpdatedAt = now

	if err := s.repo.Update(ctx, tweet); err != nil {
		return nil, err
	}

	s.log.Info().Str("tweet_id", tweet.ID).Msg("tweet soft-deleted")
	return tweet, nil
}

// SoftDeleteByAuthor is the cascade behind a user deletion. Zero matches
// is a valid outcome.
func (s *Service) SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	deleted, err := s.repo.SoftDeleteByAuthor(ctx, authorID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	s.log.Info().Str("author_id", authorID).Int64("deleted", deleted).Msg("author tweets soft-deleted")
	return deleted, nil
}

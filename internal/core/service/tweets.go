package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// TweetsService joins tweets with author display identity and applies the
// ownership policy on mutations.
type TweetsService struct {
	tweets ports.TweetsClient
	users  ports.UsersClient
	log    zerolog.Logger
}

func NewTweetsService(tweets ports.TweetsClient, users ports.UsersClient, log zerolog.Logger) *TweetsService {
	return &TweetsService{tweets: tweets, users: users, log: log}
}

// List returns a page of tweets, each joined with its author's display
// identity. One lookup per unique author id, memoized for the request;
// output ordering follows the tweets page. A single lookup failure fails
// the whole page rather than rendering placeholder identities.
func (s *TweetsService) List(ctx context.Context, page, limit int) (domain.Page[ports.TweetWithAuthor], error) {
	tweetPage, err := s.tweets.GetTweets(ctx, page, limit)
	if err != nil {
		return domain.Page[ports.TweetWithAuthor]{}, err
	}

	authors := make(map[string]domain.UserDisplay, len(tweetPage.Data))
	joined := make([]ports.TweetWithAuthor, 0, len(tweetPage.Data))
	for _, tweet := range tweetPage.Data {
		author, ok := authors[tweet.AuthorID]
		if !ok {
			display, err := s.users.GetByID(ctx, tweet.AuthorID)
			if err != nil {
				s.log.Error().Err(err).Str("author_id", tweet.AuthorID).Msg("author lookup failed")
				return domain.Page[ports.TweetWithAuthor]{}, err
			}
			author = *display
			authors[tweet.AuthorID] = author
		}
		joined = append(joined, ports.TweetWithAuthor{Tweet: tweet, Author: author})
	}

	return domain.Page[ports.TweetWithAuthor]{
		Data:        joined,
		TotalCount:  tweetPage.TotalCount,
		CurrentPage: tweetPage.CurrentPage,
		TotalPages:  tweetPage.TotalPages,
		HasNextPage: tweetPage.HasNextPage,
		HasPrevPage: tweetPage.HasPrevPage,
	}, nil
}

// Get returns one tweet joined with its author.
func (s *TweetsService) Get(ctx context.Context, id string) (*ports.TweetWithAuthor, error) {
	tweet, err := s.tweets.GetTweet(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, tweet.AuthorID)
	if err != nil {
		return nil, err
	}
	return &ports.TweetWithAuthor{Tweet: *tweet, Author: *author}, nil
}

// Post creates a tweet authored by the caller.
func (s *TweetsService) Post(ctx context.Context, caller domain.IdentityClaim, title, content string) (*domain.Tweet, error) {
	s.log.Info().Str("username", caller.Username).Msg("posting tweet")
	return s.tweets.Create(ctx, ports.CreateTweetInput{
		AuthorID: caller.SubjectID,
		Title:    title,
		Content:  content,
	})
}

// Update mutates a tweet after the ownership check against its stored
// author id.
func (s *TweetsService) Update(ctx context.Context, caller domain.IdentityClaim, id string, title, content *string) (*ports.TweetWithAuthor, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOnSubject(current.Tweet.AuthorID) {
		s.log.Warn().Str("caller", caller.Username).Str("tweet_id", id).Msg("update tweet forbidden")
		return nil, domain.ErrForbidden
	}

	updated, err := s.tweets.Update(ctx, ports.UpdateTweetInput{ID: id, Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	return &ports.TweetWithAuthor{Tweet: *updated, Author: current.Author}, nil
}

// Delete soft-deletes a tweet after the ownership check.
func (s *TweetsService) Delete(ctx context.Context, caller domain.IdentityClaim, id string) (*domain.Tweet, error) {
	tweet, err := s.tweets.GetTweet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOnSubject(tweet.AuthorID) {
		s.log.Warn().Str("caller", caller.Username).Str("tweet_id", id).Msg("delete tweet forbidden")
		return nil, domain.ErrForbidden
	}
	return s.tweets.SoftDelete(ctx, id)
}

package clients

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// TweetsClient talks to the tweets service.
type TweetsClient struct {
	caller *rpc.Caller
}

func NewTweetsClient(caller *rpc.Caller) *TweetsClient {
	return &TweetsClient{caller: caller}
}

func (c *TweetsClient) Create(ctx context.Context, in ports.CreateTweetInput) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := c.caller.Call(ctx, rpc.PatternTweetCreate, in, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (c *TweetsClient) GetTweets(ctx context.Context, page, limit int) (domain.Page[domain.Tweet], error) {
	var result domain.Page[domain.Tweet]
	payload := map[string]int{"page": page, "limit": limit}
	if err := c.caller.Call(ctx, rpc.PatternTweetGetTweets, payload, &result); err != nil {
		return domain.Page[domain.Tweet]{}, err
	}
	return result, nil
}

func (c *TweetsClient) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	payload := map[string]string{"id": id}
	if err := c.caller.Call(ctx, rpc.PatternTweetGetTweet, payload, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (c *TweetsClient) Update(ctx context.Context, in ports.UpdateTweetInput) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := c.caller.Call(ctx, rpc.PatternTweetUpdate, in, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (c *TweetsClient) SoftDelete(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	payload := map[string]string{"id": id}
	if err := c.caller.Call(ctx, rpc.PatternTweetSoftDelete, payload, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (c *TweetsClient) SoftDeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	var reply struct {
		Deleted int64 `json:"deleted"`
	}
	payload := map[string]string{"authorId": authorID}
	if err := c.caller.Call(ctx, rpc.PatternTweetSoftDeleteByAuthor, payload, &reply); err != nil {
		return 0, err
	}
	return reply.Deleted, nil
}

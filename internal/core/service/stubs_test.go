package service

import (
	"context"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// stubUsersClient scripts the users service for orchestrator tests.
type stubUsersClient struct {
	createFn   func(ports.RegisterUserInput) (*domain.User, error)
	createOps  []ports.RegisterUserInput
	byUsername map[string]*domain.User
	byIDHash   map[string]*domain.User
	byID       map[string]*domain.UserDisplay
	byIDCalls  int
	page       domain.Page[domain.User]
	updated    []ports.UpdateUserInput
	deleted    []string
}

func (s *stubUsersClient) Create(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	s.createOps = append(s.createOps, in)
	return s.createFn(in)
}

func (s *stubUsersClient) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsersClient) GetByIDHash(_ context.Context, idHash string) (*domain.User, error) {
	u, ok := s.byIDHash[idHash]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsersClient) GetByID(_ context.Context, id string) (*domain.UserDisplay, error) {
	s.byIDCalls++
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return d, nil
}

func (s *stubUsersClient) GetUsers(context.Context, int, int) (domain.Page[domain.User], error) {
	return s.page, nil
}

func (s *stubUsersClient) Update(_ context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	s.updated = append(s.updated, in)
	u, ok := s.byIDHash[in.IDHash]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsersClient) SoftDelete(_ context.Context, idHash string) (*domain.User, error) {
	s.deleted = append(s.deleted, idHash)
	u, ok := s.byIDHash[idHash]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// stubAuthClient scripts the auth service.
type stubAuthClient struct {
	registerFn    func(userID, password, role string) (*domain.Credential, error)
	registerCalls int
	loginFn       func(ports.LoginInput) (*ports.LoginResult, error)
	roles         map[string]string
	roleErr       error
}

func (s *stubAuthClient) RegisterCredential(_ context.Context, userID, password, role string) (*domain.Credential, error) {
	s.registerCalls++
	return s.registerFn(userID, password, role)
}

func (s *stubAuthClient) Login(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(in)
}

func (s *stubAuthClient) ValidateToken(context.Context, string) (*ports.TokenValidation, error) {
	return &ports.TokenValidation{}, nil
}

func (s *stubAuthClient) GetUserRole(_ context.Context, userID string) (string, error) {
	if s.roleErr != nil {
		return "", s.roleErr
	}
	role, ok := s.roles[userID]
	if !ok {
		return "", domain.ErrCredentialNotFound
	}
	return role, nil
}

// stubReverter records compensating revert emissions.
type stubReverter struct {
	reverts []ports.RegisterUserInput
}

func (s *stubReverter) EmitRevertCreateUser(in ports.RegisterUserInput) {
	s.reverts = append(s.reverts, in)
}

// stubTweetsClient scripts the tweets service.
type stubTweetsClient struct {
	tweets          map[string]*domain.Tweet
	page            domain.Page[domain.Tweet]
	pageErr         error
	updated         []ports.UpdateTweetInput
	deleted         []string
	deletedByAuthor []string
	byAuthorErr     error
}

func (s *stubTweetsClient) Create(_ context.Context, in ports.CreateTweetInput) (*domain.Tweet, error) {
	t := &domain.Tweet{ID: "t-new", AuthorID: in.AuthorID, Title: in.Title, Content: in.Content}
	return t, nil
}

func (s *stubTweetsClient) GetTweets(context.Context, int, int) (domain.Page[domain.Tweet], error) {
	if s.pageErr != nil {
		return domain.Page[domain.Tweet]{}, s.pageErr
	}
	return s.page, nil
}

func (s *stubTweetsClient) GetTweet(_ context.Context, id string) (*domain.Tweet, error) {
	t, ok := s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	return t, nil
}

func (s *stubTweetsClient) Update(_ context.Context, in ports.UpdateTweetInput) (*domain.Tweet, error) {
	s.updated = append(s.updated, in)
	t, ok := s.tweets[in.ID]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	updated := *t
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Content != nil {
		updated.Content = *in.Content
	}
	return &updated, nil
}

func (s *stubTweetsClient) SoftDelete(_ context.Context, id string) (*domain.Tweet, error) {
	s.deleted = append(s.deleted, id)
	t, ok := s.tweets[id]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	return t, nil
}

func (s *stubTweetsClient) SoftDeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	if s.byAuthorErr != nil {
		return 0, s.byAuthorErr
	}
	s.deletedByAuthor = append(s.deletedByAuthor, authorID)
	return 1, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
)

func tweetFixture(id, author string) domain.Tweet {
	return domain.Tweet{ID: id, AuthorID: author, Title: "t-" + id, Content: "c-" + id}
}

func TestTweetsService_List_MemoizesAuthorLookups(t *testing.T) {
	tweets := &stubTweetsClient{
		page: domain.NewPage([]domain.Tweet{
			tweetFixture("t1", "u1"),
			tweetFixture("t2", "u2"),
			tweetFixture("t3", "u1"),
			tweetFixture("t4", "u1"),
		}, 4, 1, 10),
	}
	users := &stubUsersClient{
		byID: map[string]*domain.UserDisplay{
			"u1": {IDHash: "h1", Username: "alice"},
			"u2": {IDHash: "h2", Username: "bob"},
		},
	}
	svc := NewTweetsService(tweets, users, zerolog.Nop())

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	// Two unique authors → exactly two lookups despite four tweets.
	if users.byIDCalls != 2 {
		t.Fatalf("author lookups = %d, want 2 (memoized)", users.byIDCalls)
	}
	// Output ordering matches input record ordering.
	wantOrder := []string{"t1", "t2", "t3", "t4"}
	for i, tw := range page.Data {
		if tw.Tweet.ID != wantOrder[i] {
			t.Fatalf("position %d: got %s, want %s", i, tw.Tweet.ID, wantOrder[i])
		}
	}
	if page.Data[0].Author.Username != "alice" || page.Data[1].Author.Username != "bob" {
		t.Fatalf("authors not joined: %+v", page.Data)
	}
}

func TestTweetsService_List_AuthorLookupFailureFailsPage(t *testing.T) {
	tweets := &stubTweetsClient{
		page: domain.NewPage([]domain.Tweet{
			tweetFixture("t1", "u1"),
			tweetFixture("t2", "missing"),
		}, 2, 1, 10),
	}
	users := &stubUsersClient{
		byID: map[string]*domain.UserDisplay{"u1": {IDHash: "h1", Username: "alice"}},
	}
	svc := NewTweetsService(tweets, users, zerolog.Nop())

	if _, err := svc.List(context.Background(), 1, 10); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected fail-all on lookup failure, got %v", err)
	}
}

func TestTweetsService_List_PaginationCountersPreserved(t *testing.T) {
	tweets := &stubTweetsClient{
		page: domain.NewPage([]domain.Tweet{tweetFixture("t1", "u1")}, 25, 1, 10),
	}
	users := &stubUsersClient{
		byID: map[string]*domain.UserDisplay{"u1": {IDHash: "h1", Username: "alice"}},
	}
	svc := NewTweetsService(tweets, users, zerolog.Nop())

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalPages != 3 || !page.HasNextPage || page.HasPrevPage {
		t.Fatalf("pagination counters wrong: %+v", page)
	}
}

func TestTweetsService_Update_OwnershipPolicy(t *testing.T) {
	owner := domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser}
	admin := domain.IdentityClaim{SubjectID: "u9", IDHash: "h9", Username: "root", Role: domain.RoleAdmin}
	other := domain.IdentityClaim{SubjectID: "u2", IDHash: "h2", Username: "bob", Role: domain.RoleUser}

	newTitle := "edited"
	cases := []struct {
		name      string
		caller    domain.IdentityClaim
		forbidden bool
	}{
		{"owner may update", owner, false},
		{"admin may update", admin, false},
		{"other is forbidden", other, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tw := tweetFixture("t1", "u1")
			tweets := &stubTweetsClient{tweets: map[string]*domain.Tweet{"t1": &tw}}
			users := &stubUsersClient{
				byID: map[string]*domain.UserDisplay{"u1": {IDHash: "h1", Username: "alice"}},
			}
			svc := NewTweetsService(tweets, users, zerolog.Nop())

			res, err := svc.Update(context.Background(), tc.caller, "t1", &newTitle, nil)
			if tc.forbidden {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				if len(tweets.updated) != 0 {
					t.Fatalf("update must not reach the tweets service")
				}
				return
			}
			if err != nil {
				t.Fatalf("Update returned error: %v", err)
			}
			if res.Tweet.Title != "edited" {
				t.Fatalf("title not updated: %+v", res.Tweet)
			}
		})
	}
}

func TestTweetsService_Delete_OwnershipPolicy(t *testing.T) {
	other := domain.IdentityClaim{SubjectID: "u2", IDHash: "h2", Username: "bob", Role: domain.RoleUser}
	tw := tweetFixture("t1", "u1")
	tweets := &stubTweetsClient{tweets: map[string]*domain.Tweet{"t1": &tw}}
	users := &stubUsersClient{}
	svc := NewTweetsService(tweets, users, zerolog.Nop())

	if _, err := svc.Delete(context.Background(), other, "t1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(tweets.deleted) != 0 {
		t.Fatalf("delete must not reach the tweets service")
	}

	owner := domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser}
	if _, err := svc.Delete(context.Background(), owner, "t1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(tweets.deleted) != 1 || tweets.deleted[0] != "t1" {
		t.Fatalf("delete not forwarded: %v", tweets.deleted)
	}
}

func TestTweetsService_Post_UsesCallerIdentity(t *testing.T) {
	caller := domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser}
	tweets := &stubTweetsClient{}
	svc := NewTweetsService(tweets, &stubUsersClient{}, zerolog.Nop())

	tw, err := svc.Post(context.Background(), caller, "hello", "first post")
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if tw.AuthorID != "u1" {
		t.Fatalf("authorId = %q, want the caller's subject id", tw.AuthorID)
	}
}

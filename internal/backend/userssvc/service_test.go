package userssvc

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

type memRepo struct {
	users map[string]domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]domain.User)}
}

func (r *memRepo) Insert(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) findLive(match func(domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findLive(func(u domain.User) bool { return u.Username == username })
}

func (r *memRepo) FindByIDHash(_ context.Context, idHash string) (*domain.User, error) {
	return r.findLive(func(u domain.User) bool { return u.IDHash == idHash })
}

func (r *memRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.findLive(func(u domain.User) bool { return u.ID == id })
}

func (r *memRepo) Find(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	var live []domain.User
	for _, u := range r.users {
		if u.DeletedAt == nil {
			live = append(live, u)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].CreatedAt.Before(live[j].CreatedAt) })

	total := int64(len(live))
	start := (page - 1) * limit
	if start >= len(live) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(live) {
		end = len(live)
	}
	return live[start:end], total, nil
}

func (r *memRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) DeleteByUsername(_ context.Context, username string) (int64, error) {
	for id, u := range r.users {
		if u.Username == username {
			delete(r.users, id)
			return 1, nil
		}
	}
	return 0, nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, zerolog.Nop()), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Create(context.Background(), ports.RegisterUserInput{
		Username:    "alice",
		FirstName:   "Alice",
		LastName:    "Doe",
		DateOfBirth: "1990-05-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("missing internal id")
	}
	if len(user.IDHash) != idHashLen {
		t.Fatalf("idHash length %d, want %d", len(user.IDHash), idHashLen)
	}
	if user.IDHash == user.ID {
		t.Fatalf("public hash must differ from internal id")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	in := ports.RegisterUserInput{Username: "alice", FirstName: "A", LastName: "D", DateOfBirth: "1990-05-01"}

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestService_RevertCreate_Idempotent(t *testing.T) {
	svc, repo := newTestService()
	in := ports.RegisterUserInput{Username: "alice", FirstName: "A", LastName: "D", DateOfBirth: "1990-05-01"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.RevertCreate(context.Background(), "alice"); err != nil {
		t.Fatalf("first revert: %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("profile not removed")
	}

	// Reverting again, or reverting a user that never existed, is a no-op.
	if err := svc.RevertCreate(context.Background(), "alice"); err != nil {
		t.Fatalf("second revert: %v", err)
	}
	if err := svc.RevertCreate(context.Background(), "ghost"); err != nil {
		t.Fatalf("revert of unknown username: %v", err)
	}

	// Username is free again after the revert.
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("re-create after revert: %v", err)
	}
}

func TestService_Update_Partial(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), ports.RegisterUserInput{
		Username: "alice", FirstName: "Alice", LastName: "Doe", DateOfBirth: "1990-05-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newFirst := "Alicia"
	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		IDHash:    created.IDHash,
		FirstName: &newFirst,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Alicia" {
		t.Fatalf("first name not updated: %q", updated.FirstName)
	}
	if updated.LastName != "Doe" || updated.DateOfBirth != "1990-05-01" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt not advanced")
	}
}

func TestService_SoftDelete_HidesFromReads(t *testing.T) {
	svc, repo := newTestService()
	created, err := svc.Create(context.Background(), ports.RegisterUserInput{
		Username: "alice", FirstName: "A", LastName: "D", DateOfBirth: "1990-05-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.SoftDelete(context.Background(), created.IDHash)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Fatalf("deletedAt not set")
	}
	// The document survives for audit, reads no longer see it.
	if len(repo.users) != 1 {
		t.Fatalf("document removed instead of soft-deleted")
	}
	if _, err := svc.GetByIDHash(context.Background(), created.IDHash); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after soft delete, got %v", err)
	}
	if _, err := svc.GetByUsername(context.Background(), "alice"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound by username, got %v", err)
	}
}

func TestService_GetUsers_Pagination(t *testing.T) {
	svc, _ := newTestService()
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		if _, err := svc.Create(context.Background(), ports.RegisterUserInput{
			Username: name, FirstName: "F", LastName: "L", DateOfBirth: "1990-05-01",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := svc.GetUsers(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if page.TotalCount != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", page)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page.Data))
	}
	if !page.HasNextPage || !page.HasPrevPage {
		t.Fatalf("middle page must have both neighbours: %+v", page)
	}
}

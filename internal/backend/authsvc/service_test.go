package authsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

type memCredRepo struct {
	records map[string]credentialRecord
}

func newMemCredRepo() *memCredRepo {
	return &memCredRepo{records: make(map[string]credentialRecord)}
}

func (r *memCredRepo) Insert(_ context.Context, rec *credentialRecord) error {
	if _, ok := r.records[rec.UserID]; ok {
		return domain.ErrCredentialExists
	}
	r.records[rec.UserID] = *rec
	return nil
}

func (r *memCredRepo) FindByUserID(_ context.Context, userID string) (*credentialRecord, error) {
	rec, ok := r.records[userID]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &rec, nil
}

func newTestService(ttl time.Duration) (*Service, *memCredRepo) {
	repo := newMemCredRepo()
	return NewService(repo, NewTokenIssuer("test-secret", ttl), zerolog.Nop()), repo
}

func TestService_Register(t *testing.T) {
	svc, repo := newTestService(time.Hour)

	cred, err := svc.Register(context.Background(), "u1", "supersecret", domain.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if cred.UserID != "u1" || cred.Role != domain.RoleUser {
		t.Fatalf("unexpected credential: %+v", cred)
	}

	rec := repo.records["u1"]
	if rec.PasswordHash == "supersecret" || rec.PasswordHash == "" {
		t.Fatalf("password stored in the clear or not at all")
	}
}

func TestService_Register_UnknownRoleDefaultsToUser(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	cred, err := svc.Register(context.Background(), "u1", "supersecret", "superuser")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if cred.Role != domain.RoleUser {
		t.Fatalf("expected default role, got %q", cred.Role)
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	if _, err := svc.Register(context.Background(), "u1", "supersecret", domain.RoleUser); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "u1", "other", domain.RoleUser)
	if !errors.Is(err, domain.ErrCredentialExists) {
		t.Fatalf("expected ErrCredentialExists, got %v", err)
	}
}

func TestService_LoginAndValidate_RoundTrip(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	if _, err := svc.Register(context.Background(), "u1", "supersecret", domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), ports.LoginInput{
		UserID:   "u1",
		IDHash:   "h1",
		Username: "alice",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Role != domain.RoleAdmin || result.Token == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	validation := svc.Validate(context.Background(), result.Token)
	if !validation.IsValid {
		t.Fatalf("freshly issued token rejected")
	}
	want := domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleAdmin}
	if validation.User != want {
		t.Fatalf("claims mismatch: got %+v want %+v", validation.User, want)
	}
}

func TestService_Login_FailuresCollapse(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	if _, err := svc.Register(context.Background(), "u1", "supersecret", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Wrong password and unknown user produce the same error.
	_, wrongPass := svc.Login(context.Background(), ports.LoginInput{UserID: "u1", Password: "nope"})
	_, unknown := svc.Login(context.Background(), ports.LoginInput{UserID: "ghost", Password: "supersecret"})

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestService_Validate_NegativeResults(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	for name, token := range map[string]string{
		"garbage": "not-a-jwt",
		"empty":   "",
	} {
		if v := svc.Validate(context.Background(), token); v.IsValid {
			t.Fatalf("%s token accepted", name)
		}
	}
}

func TestService_Validate_ExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Issue(domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc := NewService(newMemCredRepo(), NewTokenIssuer("test-secret", time.Hour), zerolog.Nop())
	if v := svc.Validate(context.Background(), token); v.IsValid {
		t.Fatalf("expired token accepted")
	}
}

func TestService_Validate_WrongSecret(t *testing.T) {
	other := NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Issue(domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc, _ := newTestService(time.Hour)
	if v := svc.Validate(context.Background(), token); v.IsValid {
		t.Fatalf("token signed with a different secret accepted")
	}
}

func TestService_Role(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	if _, err := svc.Register(context.Background(), "u1", "supersecret", domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	role, err := svc.Role(context.Background(), "u1")
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("unexpected role %q, err %v", role, err)
	}

	if _, err := svc.Role(context.Background(), "ghost"); !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}

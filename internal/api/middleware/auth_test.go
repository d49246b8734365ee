package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

type stubAuthValidator struct {
	validateFn func(token string) (*ports.TokenValidation, error)
	calls      int
}

func (s *stubAuthValidator) ValidateToken(_ context.Context, token string) (*ports.TokenValidation, error) {
	s.calls++
	return s.validateFn(token)
}

func (s *stubAuthValidator) RegisterCredential(context.Context, string, string, string) (*domain.Credential, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthValidator) Login(context.Context, ports.LoginInput) (*ports.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthValidator) GetUserRole(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

func newAuthContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	auth := &stubAuthValidator{
		validateFn: func(token string) (*ports.TokenValidation, error) {
			if token != "abc" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.TokenValidation{
				IsValid: true,
				User:    domain.IdentityClaim{SubjectID: "u1", IDHash: "h1", Username: "alice", Role: domain.RoleUser},
			}, nil
		},
	}
	c, rec := newAuthContext(t, "Bearer abc")

	called := false
	handler := Auth(auth, zerolog.Nop())(func(c echo.Context) error {
		called = true
		claim, ok := Identity(c)
		if !ok {
			t.Fatalf("identity not attached")
		}
		if claim.SubjectID != "u1" || claim.Role != domain.RoleUser {
			t.Fatalf("unexpected claim: %+v", claim)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeaderSkipsRemoteCall(t *testing.T) {
	auth := &stubAuthValidator{
		validateFn: func(string) (*ports.TokenValidation, error) {
			t.Fatalf("remote validation must not run without a token")
			return nil, nil
		},
	}
	c, _ := newAuthContext(t, "")

	err := Auth(auth, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	var se *rpc.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.StatusCode != http.StatusUnauthorized || se.Code != domain.CodeGatewayUnauthorized {
		t.Fatalf("unexpected rejection: %+v", se)
	}
	if auth.calls != 0 {
		t.Fatalf("auth service called %d times, want 0", auth.calls)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	auth := &stubAuthValidator{
		validateFn: func(string) (*ports.TokenValidation, error) {
			t.Fatalf("remote validation must not run for a malformed header")
			return nil, nil
		},
	}

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		c, _ := newAuthContext(t, header)
		err := Auth(auth, zerolog.Nop())(func(echo.Context) error { return nil })(c)
		var se *rpc.ServiceError
		if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_NegativeValidationInsideSuccessEnvelope(t *testing.T) {
	// The remote call succeeded but wrapped a negative result; the guard
	// must still reject.
	auth := &stubAuthValidator{
		validateFn: func(string) (*ports.TokenValidation, error) {
			return &ports.TokenValidation{IsValid: false}, nil
		},
	}
	c, _ := newAuthContext(t, "Bearer expired")

	err := Auth(auth, zerolog.Nop())(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	var se *rpc.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.StatusCode != http.StatusUnauthorized || se.Code != domain.CodeGatewayUnauthorized {
		t.Fatalf("unexpected rejection: %+v", se)
	}
}

func TestAuth_ValidFlagWithoutIdentityRejected(t *testing.T) {
	auth := &stubAuthValidator{
		validateFn: func(string) (*ports.TokenValidation, error) {
			return &ports.TokenValidation{IsValid: true}, nil // empty identity payload
		},
	}
	c, _ := newAuthContext(t, "Bearer abc")

	err := Auth(auth, zerolog.Nop())(func(echo.Context) error { return nil })(c)
	var se *rpc.ServiceError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for empty identity, got %v", err)
	}
}

func TestAuth_UpstreamFailureDistinguishable(t *testing.T) {
	// An auth service outage must not masquerade as a bad token.
	auth := &stubAuthValidator{
		validateFn: func(string) (*ports.TokenValidation, error) {
			return nil, rpc.NewUpstreamError(true)
		},
	}
	c, _ := newAuthContext(t, "Bearer abc")

	err := Auth(auth, zerolog.Nop())(func(echo.Context) error { return nil })(c)
	var se *rpc.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if !se.Upstream() {
		t.Fatalf("outage classified as %+v, want upstream", se)
	}
	if se.StatusCode == http.StatusUnauthorized {
		t.Fatalf("outage must not surface as 401")
	}
}

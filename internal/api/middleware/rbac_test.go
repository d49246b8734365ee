package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/rpc"
)

func contextWithClaim(claim *domain.IdentityClaim) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claim != nil {
		c.Set(identityKey, *claim)
	}
	return c
}

func TestRBAC_Allows(t *testing.T) {
	c := contextWithClaim(&domain.IdentityClaim{SubjectID: "u1", Role: domain.RoleAdmin})

	called := false
	err := RBAC(domain.RoleAdmin, domain.RoleUser)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_Forbids(t *testing.T) {
	c := contextWithClaim(&domain.IdentityClaim{SubjectID: "u1", Role: domain.RoleUser})

	err := RBAC(domain.RoleAdmin)(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var se *rpc.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.StatusCode != http.StatusForbidden || se.Code != domain.CodeGatewayForbidden {
		t.Fatalf("unexpected rejection: %+v", se)
	}
}

func TestRBAC_EmptyAllowListAdmitsAnyAuthenticated(t *testing.T) {
	c := contextWithClaim(&domain.IdentityClaim{SubjectID: "u1", Role: domain.RoleUser})

	called := false
	err := RBAC()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil || !called {
		t.Fatalf("authenticated caller must pass an empty allow-list (err=%v)", err)
	}
}

func TestRBAC_MissingIdentityIsInternalError(t *testing.T) {
	// Role checks on an absent identity are a wiring bug, not an allow
	// and not a plain 403.
	c := contextWithClaim(nil)

	err := RBAC(domain.RoleAdmin)(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var se *rpc.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", se.StatusCode)
	}
}

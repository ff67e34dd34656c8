package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

type stubAuthService struct {
	subjects map[string]string // token → subject
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.TokenPair, error) {
	panic("not used")
}

func (s *stubAuthService) Refresh(context.Context, string) (*ports.TokenPair, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) ExtractSubject(tokenString string) (string, error) {
	if subject, ok := s.subjects[tokenString]; ok {
		return subject, nil
	}
	return "", domain.ErrTokenInvalid
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.Email] = u
	return u, nil
}

func newAuthMiddleware() echo.MiddlewareFunc {
	auth := &stubAuthService{subjects: map[string]string{
		"good-token":   "alice@example.com",
		"orphan-token": "ghost@example.com",
	}}
	users := &stubUserRepo{users: map[string]*domain.User{
		"alice@example.com": {ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin},
	}}
	return Authenticate(auth, users)
}

func TestAuthenticate_NoHeader_Anonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := newAuthMiddleware()(func(c echo.Context) error {
		called = true
		if CurrentPrincipal(c) != nil {
			t.Fatalf("expected no principal for anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_NonBearerHeader_Anonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := newAuthMiddleware()(func(c echo.Context) error {
		called = true
		if CurrentPrincipal(c) != nil {
			t.Fatalf("expected no principal for non-bearer header")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_ValidToken_BindsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newAuthMiddleware()(func(c echo.Context) error {
		principal := CurrentPrincipal(c)
		if principal == nil {
			t.Fatalf("expected principal")
		}
		if principal.Email != "alice@example.com" || principal.Role != domain.RoleAdmin {
			t.Fatalf("unexpected principal: %+v", principal)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthenticate_MalformedToken_Rejected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newAuthMiddleware()(func(c echo.Context) error {
		t.Fatalf("business logic must not run for malformed tokens")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthenticate_UnknownSubject_Rejected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer orphan-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newAuthMiddleware()(func(c echo.Context) error {
		t.Fatalf("business logic must not run for unknown subjects")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

// Reused execution contexts must not leak identity between requests: each
// echo context is fresh per request, so a second anonymous request through
// the same middleware sees no principal.
func TestAuthenticate_NoLeakBetweenRequests(t *testing.T) {
	e := echo.New()
	mw := newAuthMiddleware()

	authed := httptest.NewRequest(http.MethodGet, "/", nil)
	authed.Header.Set("Authorization", "Bearer good-token")
	c1 := e.NewContext(authed, httptest.NewRecorder())
	_ = mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c1)

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	c2 := e.NewContext(anon, httptest.NewRecorder())
	_ = mw(func(c echo.Context) error {
		if CurrentPrincipal(c) != nil {
			t.Fatalf("principal leaked into unrelated request")
		}
		return c.NoContent(http.StatusOK)
	})(c2)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/api/middleware"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

type stubAuthService struct {
	loginPair   *ports.TokenPair
	loginErr    error
	refreshPair *ports.TokenPair
	refreshUser *domain.User
	refreshErr  error

	gotEmail    string
	gotPassword string
	gotRefresh  string
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.TokenPair, error) {
	s.gotEmail, s.gotPassword = email, password
	return s.loginPair, s.loginErr
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (*ports.TokenPair, *domain.User, error) {
	s.gotRefresh = refreshToken
	return s.refreshPair, s.refreshUser, s.refreshErr
}

func (s *stubAuthService) ExtractSubject(string) (string, error) {
	return "", domain.ErrTokenInvalid
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &stubAuthService{
		loginPair: &ports.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: expires},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"ana@example.com","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.gotEmail != "ana@example.com" || svc.gotPassword != "s3cret" {
		t.Fatalf("credentials not forwarded: email=%q password=%q", svc.gotEmail, svc.gotPassword)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
	if !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("expires_at = %v, want %v", resp.ExpiresAt, expires)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(t, `{"email":"ana@example.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(t, `{"email":`)
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 HTTPError", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(t, `{"email":"not-an-email"}`)
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400 HTTPError", err)
	}
	if svc.gotEmail != "" {
		t.Fatal("service called despite failed validation")
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleUser}
	svc := &stubAuthService{
		refreshPair: &ports.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		refreshUser: user,
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"refreshToken":"old-refresh"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.gotRefresh != "old-refresh" {
		t.Fatalf("refresh token not forwarded: %q", svc.gotRefresh)
	}

	p := middleware.CurrentPrincipal(c)
	if p == nil {
		t.Fatal("principal not bound after refresh")
	}
	if p.Email != user.Email || p.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	svc := &stubAuthService{refreshErr: domain.ErrTokenInvalid}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(t, `{"refreshToken":"garbage"}`)
	err := h.Refresh(c)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("error = %v, want ErrTokenInvalid", err)
	}
	if p := middleware.CurrentPrincipal(c); p != nil {
		t.Fatalf("principal bound despite failed refresh: %+v", p)
	}
}

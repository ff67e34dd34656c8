package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
	"github.com/random-knowledge/knowledge-api/internal/core/token"
)

// AuthService issues and validates token pairs. Access and refresh tokens
// are signed by the same codec and differ only in TTL.
type AuthService struct {
	users      ports.UserRepository
	codec      *token.Codec
	audit      ports.AuditRecorder
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	codec *token.Codec,
	audit ports.AuditRecorder,
	accessTTL, refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		audit:      audit,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
		now:        time.Now,
	}
}

// Login verifies the credentials and issues a fresh token pair. An unknown
// email and a wrong password both surface as authentication failures; the
// distinction is never exposed to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.record(email, domain.AuditLogin, false)
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(email, domain.AuditLogin, false)
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.record(email, domain.AuditLogin, true)
	s.log.Debug().Str("email", email).Msg("user obtained a new access token")
	return pair, nil
}

// Refresh validates the presented token, resolves its subject and issues a
// brand-new pair. Presenting the same refresh token twice yields two valid,
// independent pairs; there is no rotation or reuse tracking.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, *domain.User, error) {
	subject, err := s.codec.Verify(refreshToken)
	if err != nil {
		s.record("", domain.AuditRefresh, false)
		return nil, nil, err
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		s.record(subject, domain.AuditRefresh, false)
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(subject, domain.AuditRefresh, true)
	s.log.Debug().Str("email", subject).Msg("user obtained a new access token with refresh token")
	return pair, user, nil
}

// ExtractSubject validates a bearer token and returns its subject.
func (s *AuthService) ExtractSubject(tokenString string) (string, error) {
	return s.codec.Verify(tokenString)
}

func (s *AuthService) issuePair(user *domain.User) (*ports.TokenPair, error) {
	now := s.now().UTC()
	accessExpiry := now.Add(s.accessTTL)

	access, err := s.codec.Issue(user.Email, accessExpiry)
	if err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("failed to sign access token")
		return nil, err
	}

	refresh, err := s.codec.Issue(user.Email, now.Add(s.refreshTTL))
	if err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("failed to sign refresh token")
		return nil, err
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *AuthService) record(email string, action domain.AuditAction, success bool) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Email:     email,
		Action:    action,
		Success:   success,
		Timestamp: s.now().UTC(),
	})
}

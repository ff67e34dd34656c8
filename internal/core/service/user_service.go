package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

// UserService implements account registration.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, log: log}
}

// SignUp creates a USER-role account. The role is always forced to USER;
// admins are seeded at startup, never self-registered.
func (s *UserService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Warn().Str("email", email).Msg("sign-up rejected: email already in use")
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Email:     email,
			Action:    domain.AuditSignUp,
			Success:   true,
			Timestamp: time.Now().UTC(),
		})
	}
	s.log.Debug().Str("email", email).Msg("user registered")
	return created, nil
}

package domain

import (
	"errors"
	"time"
)

// Role is the closed set of access levels a user can hold.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// authorities maps each role to the full set of authorities it grants.
// ADMIN subsumes USER; there is no expansion beyond this table.
var authorities = map[Role][]Role{
	RoleAdmin: {RoleAdmin, RoleUser},
	RoleUser:  {RoleUser},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := authorities[r]
	return ok
}

// Authorities returns the authorities granted by the role.
func (r Role) Authorities() []Role {
	return authorities[r]
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenCreation = errors.New("token creation failed")

// User is the stored credential record. The email doubles as the login
// identifier and the token subject.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the request-scoped identity resolved from a verified token.
// It lives only for the duration of one request and is never persisted.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// NewPrincipal builds the principal for a resolved user.
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// HasAuthority reports whether the principal's role grants the given authority.
func (p *Principal) HasAuthority(required Role) bool {
	for _, a := range p.Role.Authorities() {
		if a == required {
			return true
		}
	}
	return false
}

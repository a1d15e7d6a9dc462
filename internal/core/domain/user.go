package domain

import "time"

// Role is the access level attached to a user and to every session derived from it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User models a registered identity.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthSession is a point-in-time copy of a user without its credential,
// plus the bearer token issued at login or registration.
type AuthSession struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Token     string    `json:"token"`
}

// NewAuthSession copies u into a session bound to token.
func NewAuthSession(u *User, token string) *AuthSession {
	return &AuthSession{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Token:     token,
	}
}

func (s *AuthSession) IsAdmin() bool { return s != nil && s.Role == RoleAdmin }
func (s *AuthSession) IsUser() bool  { return s != nil && s.Role == RoleUser }

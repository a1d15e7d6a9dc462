package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.IdentityService = (*IdentityService)(nil)

// IdentityConfig holds token and hashing settings.
type IdentityConfig struct {
	JWTSecret string
	// TokenTTL of zero issues tokens without an expiry claim.
	TokenTTL   time.Duration
	BcryptCost int
}

// IdentityService implements registration, login and the current session.
type IdentityService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	cfg      IdentityConfig
	logger   zerolog.Logger
}

// NewIdentityService wires the service. sessions may be nil for callers that
// carry the token themselves; nothing is persisted as "current" then.
func NewIdentityService(users ports.UserRepository, sessions ports.SessionRepository, cfg IdentityConfig, logger zerolog.Logger) *IdentityService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &IdentityService{users: users, sessions: sessions, cfg: cfg, logger: logger}
}

// HashPassword returns a bcrypt hasher with the given cost.
func HashPassword(cost int) func(string) (string, error) {
	return func(plain string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	}
}

func (s *IdentityService) Register(ctx context.Context, input ports.RegisterInput) (*domain.AuthSession, error) {
	hash, err := HashPassword(s.cfg.BcryptCost)(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           "user-" + uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return s.startSession(ctx, user)
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return s.startSession(ctx, user)
}

// Logout is idempotent.
func (s *IdentityService) Logout(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Clear(ctx)
}

// CurrentSession returns the stored session as is; token freshness is not checked.
func (s *IdentityService) CurrentSession(ctx context.Context) (*domain.AuthSession, error) {
	if s.sessions == nil {
		return nil, nil
	}
	return s.sessions.Current(ctx)
}

func (s *IdentityService) Profile(ctx context.Context, userID string) (*domain.AuthSession, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.NewAuthSession(user, ""), nil
}

func (s *IdentityService) startSession(ctx context.Context, user *domain.User) (*domain.AuthSession, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	session := domain.NewAuthSession(user, token)
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist session")
			return nil, err
		}
	}
	return session, nil
}

func (s *IdentityService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"jti":   uuid.NewString(),
	}
	if s.cfg.TokenTTL > 0 {
		claims["exp"] = now.Add(s.cfg.TokenTTL).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.AuthSession, error) {
			if input.Name != "Alice" || input.Email != "alice@example.com" || input.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.AuthSession{ID: "user-1", Name: input.Name, Email: input.Email, Role: domain.RoleUser, Token: "tok"}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"name":" Alice ","email":"alice@example.com","password":"secret1","confirmPassword":"secret1"}`)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected top-level token, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "user" || user["token"] != "" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.AuthSession, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","confirmPassword":"secret2"}`)

	err := NewAuthHandler(stub).Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubIdentityService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.AuthSession, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"name":"John","email":"john@example.com","password":"secret1","confirmPassword":"secret1"}`)

	err := NewAuthHandler(stub).Register(c)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, email, password string) (*domain.AuthSession, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"john@example.com","password":"wrong"}`)

	err := NewAuthHandler(stub).Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubIdentityService{
		loginFn: func(ctx context.Context, email, password string) (*domain.AuthSession, error) {
			return &domain.AuthSession{ID: "user-admin", Role: domain.RoleAdmin, Token: "tok"}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"admin@carbooking.com","password":"admin123"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_RequiresPrincipal(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/auth/me", "")

	err := NewAuthHandler(&stubIdentityService{}).Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubIdentityService{
		profileFn: func(ctx context.Context, userID string) (*domain.AuthSession, error) {
			if userID != "user-john" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.AuthSession{ID: userID, Name: "John Doe", Role: domain.RoleUser}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/auth/me", "")
	withPrincipal(c, "user-john", domain.RoleUser)

	if err := NewAuthHandler(stub).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

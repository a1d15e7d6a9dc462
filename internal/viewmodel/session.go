package viewmodel

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/forms"
)

// Requirement describes what a route needs from the session.
type Requirement int

const (
	RequireAuth Requirement = iota
	RequireAdmin
	RequireUser
)

// Redirect targets returned by Gate.
const (
	RouteLogin = "/login"
	RouteHome  = "/"
	RouteAdmin = "/admin"
)

type SessionViewModel struct {
	state
	identity ports.IdentityService
	session  *domain.AuthSession
}

func NewSessionViewModel(identity ports.IdentityService) *SessionViewModel {
	return &SessionViewModel{identity: identity}
}

// Load restores the persisted session, if any.
func (vm *SessionViewModel) Load(ctx context.Context) error {
	vm.begin()
	session, err := vm.identity.CurrentSession(ctx)
	if err == nil {
		vm.setSession(session)
	}
	return vm.end(err)
}

func (vm *SessionViewModel) Login(ctx context.Context, form forms.LoginForm) (*domain.AuthSession, error) {
	if err := forms.Validate(form); err != nil {
		return nil, vm.fail(err)
	}

	vm.begin()
	session, err := vm.identity.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, vm.end(err)
	}
	vm.setSession(session)
	return session, vm.end(nil)
}

func (vm *SessionViewModel) Register(ctx context.Context, form forms.RegisterForm) (*domain.AuthSession, error) {
	if err := forms.Validate(form); err != nil {
		return nil, vm.fail(err)
	}

	vm.begin()
	session, err := vm.identity.Register(ctx, form.Input())
	if err != nil {
		return nil, vm.end(err)
	}
	vm.setSession(session)
	return session, vm.end(nil)
}

func (vm *SessionViewModel) Logout(ctx context.Context) error {
	vm.begin()
	err := vm.identity.Logout(ctx)
	if err == nil {
		vm.setSession(nil)
	}
	return vm.end(err)
}

func (vm *SessionViewModel) Session() *domain.AuthSession {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.session
}

func (vm *SessionViewModel) IsAuthenticated() bool { return vm.Session() != nil }
func (vm *SessionViewModel) IsAdmin() bool         { return vm.Session().IsAdmin() }

// Gate returns where to redirect a caller that does not meet req, or "" when
// access is allowed.
func (vm *SessionViewModel) Gate(req Requirement) string {
	s := vm.Session()
	switch {
	case s == nil:
		return RouteLogin
	case req == RequireAdmin && !s.IsAdmin():
		return RouteHome
	case req == RequireUser && !s.IsUser():
		return RouteAdmin
	}
	return ""
}

func (vm *SessionViewModel) setSession(s *domain.AuthSession) {
	vm.mu.Lock()
	vm.session = s
	vm.mu.Unlock()
}

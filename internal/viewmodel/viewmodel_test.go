package viewmodel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/service"
	"github.com/driveway/rental-system/internal/forms"
	"github.com/driveway/rental-system/internal/infrastructure/db/kv"
	"github.com/driveway/rental-system/internal/infrastructure/db/memory"
)

type stack struct {
	session   *SessionViewModel
	inventory *InventoryViewModel
	bookings  *BookingViewModel
}

func newStack(t *testing.T) *stack {
	t.Helper()
	fixture, err := kv.DefaultFixture(service.HashPassword(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	a := kv.NewAdapter(memory.NewStore(), "", fixture)
	cars := kv.NewCarRepository(a)

	identity := service.NewIdentityService(kv.NewUserRepository(a), kv.NewSessionRepository(a),
		service.IdentityConfig{JWTSecret: "test", BcryptCost: bcrypt.MinCost}, zerolog.Nop())
	session := NewSessionViewModel(identity)

	return &stack{
		session:   session,
		inventory: NewInventoryViewModel(service.NewInventoryService(cars, zerolog.Nop())),
		bookings:  NewBookingViewModel(service.NewBookingService(kv.NewBookingRepository(a), cars, zerolog.Nop()), session),
	}
}

func (s *stack) login(t *testing.T, email, password string) {
	t.Helper()
	if _, err := s.session.Login(context.Background(), forms.LoginForm{Email: email, Password: password}); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
}

func TestSessionViewModel_Gate(t *testing.T) {
	s := newStack(t)

	if got := s.session.Gate(RequireAuth); got != RouteLogin {
		t.Errorf("anonymous: expected %s, got %q", RouteLogin, got)
	}

	s.login(t, "admin@carbooking.com", "admin123")
	if got := s.session.Gate(RequireUser); got != RouteAdmin {
		t.Errorf("admin on user route: expected %s, got %q", RouteAdmin, got)
	}
	if got := s.session.Gate(RequireAdmin); got != "" {
		t.Errorf("admin on admin route: expected access, got %q", got)
	}

	s.login(t, "john@example.com", "user123")
	if got := s.session.Gate(RequireAdmin); got != RouteHome {
		t.Errorf("user on admin route: expected %s, got %q", RouteHome, got)
	}
	if got := s.session.Gate(RequireUser); got != "" {
		t.Errorf("user on user route: expected access, got %q", got)
	}
}

func TestSessionViewModel_LoginFailureCapturesMessage(t *testing.T) {
	s := newStack(t)

	_, err := s.session.Login(context.Background(), forms.LoginForm{Email: "john@example.com", Password: "nope"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if s.session.ErrorMessage() != "invalid email or password" {
		t.Errorf("unexpected message %q", s.session.ErrorMessage())
	}
	if s.session.Loading() {
		t.Errorf("loading must be cleared after failure")
	}

	s.login(t, "john@example.com", "user123")
	if s.session.ErrorMessage() != "" {
		t.Errorf("expected error cleared on success, got %q", s.session.ErrorMessage())
	}
}

func TestSessionViewModel_ValidationNeverReachesService(t *testing.T) {
	s := newStack(t)

	_, err := s.session.Register(context.Background(), forms.RegisterForm{Name: "Jo", Email: "jo@example.com", Password: "secret1", ConfirmPassword: "other"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if s.session.IsAuthenticated() {
		t.Errorf("expected no session after failed registration")
	}
}

func TestSessionViewModel_LoadAndLogout(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.session.Register(ctx, forms.RegisterForm{Name: "Jo", Email: "jo@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	restored := NewSessionViewModel(s.session.identity)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if restored.Session() == nil || restored.Session().Email != "jo@example.com" {
		t.Fatalf("expected persisted session, got %+v", restored.Session())
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := s.session.Load(ctx); err != nil || s.session.IsAuthenticated() {
		t.Errorf("expected session gone after logout, err=%v", err)
	}
}

func TestInventoryViewModel_SearchUsesActiveCriteria(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.inventory.SetFilters(domain.CarFilters{Category: "sedan"})
	s.inventory.SetSort(domain.SortPriceDesc)
	if err := s.inventory.Search(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	cars := s.inventory.Cars()
	if len(cars) != 1 || cars[0].ID != "car-1" {
		t.Errorf("expected only car-1, got %d cars", len(cars))
	}

	if err := s.inventory.Fetch(ctx); err != nil || len(s.inventory.Cars()) != 6 {
		t.Errorf("expected full listing from Fetch, got %d err=%v", len(s.inventory.Cars()), err)
	}
}

func TestInventoryViewModel_CreateAndDelete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	if _, err := s.inventory.Create(ctx, forms.CarForm{Name: "X"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if !strings.Contains(s.inventory.ErrorMessage(), "name must be at least 3 characters") {
		t.Errorf("unexpected message %q", s.inventory.ErrorMessage())
	}

	car, err := s.inventory.Create(ctx, forms.CarForm{
		Name: "Kia Niro", Brand: "Kia", Model: "Niro", Year: 2023,
		Category: "electric", Transmission: "automatic", FuelType: "electric",
		SeatingCapacity: 5, Color: "White", PricePerDay: 60,
		Images: []string{"niro.jpg"}, Features: []string{"Heat pump"},
		Description: "Efficient crossover EV.", Location: "Airport", Mileage: "1,000 km", IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(s.inventory.Cars()) != 7 {
		t.Errorf("expected listing refreshed with 7 cars, got %d", len(s.inventory.Cars()))
	}

	if err := s.inventory.Delete(ctx, car.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.inventory.Delete(ctx, car.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
	if s.inventory.ErrorMessage() != "car not found" {
		t.Errorf("unexpected message %q", s.inventory.ErrorMessage())
	}
}

func validBookingForm(carID string) forms.BookingForm {
	return forms.BookingForm{
		CarID:           carID,
		PickupLocation:  "Downtown",
		DropoffLocation: "Airport",
		PickupDateTime:  "2024-01-01T10:00",
		ReturnDateTime:  "2024-01-03T10:00",
		AcceptTerms:     true,
	}
}

func TestBookingViewModel_CreateRequiresSession(t *testing.T) {
	s := newStack(t)

	_, err := s.bookings.Create(context.Background(), validBookingForm("car-1"))
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got: %v", err)
	}
	if s.bookings.ErrorMessage() != "user not authenticated" {
		t.Errorf("unexpected message %q", s.bookings.ErrorMessage())
	}
}

func TestBookingViewModel_UserFlowRefreshesOwnList(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.login(t, "john@example.com", "user123")

	booking, err := s.bookings.Create(ctx, validBookingForm("car-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.NumberOfDays != 2 || booking.TotalCost != 90 {
		t.Errorf("expected 2 days at 45/day, got %d / %v", booking.NumberOfDays, booking.TotalCost)
	}

	list := s.bookings.Bookings()
	if len(list) != 4 || list[0].ID != booking.ID {
		t.Fatalf("expected refreshed list with new booking first, got %d", len(list))
	}

	if err := s.bookings.Cancel(ctx, "booking-1"); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("cancel approved: expected ErrInvalidState, got: %v", err)
	}
	if err := s.bookings.Cancel(ctx, booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := s.bookings.Approve(ctx, "booking-2"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("user approve: expected ErrUnauthorized, got: %v", err)
	}
}

func TestBookingViewModel_AdminTransitions(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.login(t, "admin@carbooking.com", "admin123")

	if err := s.bookings.Reject(ctx, "booking-2", forms.RejectForm{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected reason required, got: %v", err)
	}
	if err := s.bookings.Approve(ctx, "booking-2"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := s.bookings.Complete(ctx, "booking-2"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.bookings.Reject(ctx, "booking-2", forms.RejectForm{Reason: "late"}); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected terminal booking to stay completed, got: %v", err)
	}

	s.bookings.SetFilters(domain.BookingFilters{Status: string(domain.BookingCompleted)})
	if err := s.bookings.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(s.bookings.Bookings()) != 2 {
		t.Errorf("expected 2 completed bookings, got %d", len(s.bookings.Bookings()))
	}
}

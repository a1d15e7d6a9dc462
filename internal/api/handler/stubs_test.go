package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/api/middleware"
	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

type stubIdentityService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.AuthSession, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.AuthSession, error)
	profileFn  func(ctx context.Context, userID string) (*domain.AuthSession, error)
}

func (s *stubIdentityService) Register(ctx context.Context, input ports.RegisterInput) (*domain.AuthSession, error) {
	return s.registerFn(ctx, input)
}

func (s *stubIdentityService) Login(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubIdentityService) Logout(context.Context) error { return nil }

func (s *stubIdentityService) CurrentSession(context.Context) (*domain.AuthSession, error) {
	return nil, nil
}

func (s *stubIdentityService) Profile(ctx context.Context, userID string) (*domain.AuthSession, error) {
	return s.profileFn(ctx, userID)
}

type stubInventoryService struct {
	searchFn  func(ctx context.Context, filters domain.CarFilters, sort domain.SortOption) ([]domain.Car, error)
	popularFn func(ctx context.Context, limit int) ([]domain.Car, error)
	createFn  func(ctx context.Context, input domain.CarInput) (*domain.Car, error)
	updateFn  func(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (s *stubInventoryService) List(context.Context) ([]domain.Car, error)      { return nil, nil }
func (s *stubInventoryService) Available(context.Context) ([]domain.Car, error) { return nil, nil }
func (s *stubInventoryService) Brands(context.Context) ([]string, error)        { return nil, nil }

func (s *stubInventoryService) GetByID(_ context.Context, id string) (*domain.Car, error) {
	return nil, domain.ErrCarNotFound
}

func (s *stubInventoryService) Search(ctx context.Context, filters domain.CarFilters, sort domain.SortOption) ([]domain.Car, error) {
	return s.searchFn(ctx, filters, sort)
}

func (s *stubInventoryService) Popular(ctx context.Context, limit int) ([]domain.Car, error) {
	return s.popularFn(ctx, limit)
}

func (s *stubInventoryService) Create(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	return s.createFn(ctx, input)
}

func (s *stubInventoryService) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubInventoryService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubBookingService struct {
	createFn       func(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error)
	updateStatusFn func(ctx context.Context, id string, status domain.BookingStatus, actorID, reason string) (*domain.Booking, error)
	cancelFn       func(ctx context.Context, id, userID string) (*domain.Booking, error)
	filterFn       func(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, domain.ErrBookingNotFound
}

func (s *stubBookingService) List(context.Context) ([]domain.Booking, error) { return nil, nil }

func (s *stubBookingService) ListByUser(context.Context, string) ([]domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, actorID, reason string) (*domain.Booking, error) {
	return s.updateStatusFn(ctx, id, status, actorID, reason)
}

func (s *stubBookingService) Cancel(ctx context.Context, id, userID string) (*domain.Booking, error) {
	return s.cancelFn(ctx, id, userID)
}

func (s *stubBookingService) Filter(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error) {
	return s.filterFn(ctx, filters)
}

func (s *stubBookingService) PendingCount(context.Context) (int, error)     { return 0, nil }
func (s *stubBookingService) TotalRevenue(context.Context) (float64, error) { return 0, nil }

// newContext builds an echo context with the shared validator; a non-empty
// body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPrincipal(c echo.Context, id string, role domain.Role) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, string(role))
	c.Set(middleware.CtxName, "John Doe")
	c.Set(middleware.CtxEmail, "john@example.com")
	c.Set(middleware.CtxPhone, "+1-555-0101")
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

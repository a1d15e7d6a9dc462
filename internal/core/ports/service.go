package ports

import (
	"context"
	"time"

	"github.com/driveway/rental-system/internal/core/domain"
)

// RegisterInput carries the registration form after validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// IdentityService registers users and manages the current session.
type IdentityService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.AuthSession, error)
	Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*domain.AuthSession, error)
	// Profile loads the session view of a user without issuing a token.
	Profile(ctx context.Context, userID string) (*domain.AuthSession, error)
}

// InventoryService exposes catalogue queries and admin CRUD over cars.
type InventoryService interface {
	List(ctx context.Context) ([]domain.Car, error)
	Available(ctx context.Context) ([]domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	Search(ctx context.Context, filters domain.CarFilters, sort domain.SortOption) ([]domain.Car, error)
	Brands(ctx context.Context) ([]string, error)
	Popular(ctx context.Context, limit int) ([]domain.Car, error)
	Create(ctx context.Context, input domain.CarInput) (*domain.Car, error)
	Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}

// CreateBookingInput carries everything needed to open a rental request.
type CreateBookingInput struct {
	CarID     string
	Requester domain.Requester
	Request   domain.BookingRequest
}

// BookingService runs the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, actorID, rejectionReason string) (*domain.Booking, error)
	Cancel(ctx context.Context, id, userID string) (*domain.Booking, error)
	Filter(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error)
	PendingCount(ctx context.Context) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// CarBookingCount pairs a car with how many bookings reference it.
type CarBookingCount struct {
	Car          domain.Car `json:"car"`
	BookingCount int        `json:"bookingCount"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalCars         int               `json:"totalCars"`
	TotalBookings     int               `json:"totalBookings"`
	PendingApprovals  int               `json:"pendingApprovals"`
	TotalRevenue      float64           `json:"totalRevenue"`
	ThisMonthBookings int               `json:"thisMonthBookings"`
	PopularCars       []CarBookingCount `json:"popularCars"`
	GeneratedAt       time.Time         `json:"generatedAt"`
}

// DashboardService aggregates inventory and booking figures for administrators.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

package ports

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
)

// UserRepository persists registered identities.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create appends user unless another user already has the same email, in
	// which case it returns domain.ErrDuplicateEmail and stores nothing.
	Create(ctx context.Context, user *domain.User) error
}

// SessionRepository holds the single current session (last login wins).
type SessionRepository interface {
	Save(ctx context.Context, session *domain.AuthSession) error
	// Current returns nil, nil when nobody is logged in.
	Current(ctx context.Context) (*domain.AuthSession, error)
	Clear(ctx context.Context) error
}

// CarRepository persists the inventory in insertion order.
type CarRepository interface {
	List(ctx context.Context) ([]domain.Car, error)
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	Insert(ctx context.Context, car *domain.Car) error
	// Update applies fn to the stored car and persists the result.
	Update(ctx context.Context, id string, fn func(*domain.Car) error) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}

// BookingRepository persists rental requests in insertion order.
type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	Insert(ctx context.Context, booking *domain.Booking) error
	// Update applies fn to the stored booking and persists the result. If fn
	// returns an error nothing is written.
	Update(ctx context.Context, id string, fn func(*domain.Booking) error) (*domain.Booking, error)
}

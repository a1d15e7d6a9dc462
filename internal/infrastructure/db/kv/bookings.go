package kv

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.BookingRepository = (*BookingRepository)(nil)

// BookingRepository stores rental requests under KeyBookings.
type BookingRepository struct {
	bookings collection[domain.Booking]
}

func NewBookingRepository(a *Adapter) *BookingRepository {
	return &BookingRepository{bookings: collection[domain.Booking]{
		adapter: a,
		name:    KeyBookings,
		seed:    func() ([]domain.Booking, error) { return decodeSeed[domain.Booking](a.fixture.bookings) },
	}}
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.bookings.load(ctx)
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	bookings, err := r.bookings.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *BookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	return r.bookings.mutate(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		return append(bookings, *booking), nil
	})
}

func (r *BookingRepository) Update(ctx context.Context, id string, fn func(*domain.Booking) error) (*domain.Booking, error) {
	var updated domain.Booking
	err := r.bookings.mutate(ctx, func(bookings []domain.Booking) ([]domain.Booking, error) {
		for i := range bookings {
			if bookings[i].ID != id {
				continue
			}
			b := bookings[i]
			if err := fn(&b); err != nil {
				return nil, err
			}
			bookings[i] = b
			updated = b
			return bookings, nil
		}
		return nil, domain.ErrBookingNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

package service

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubCarRepo struct {
	cars    []domain.Car
	listErr error
}

func (r *stubCarRepo) List(context.Context) ([]domain.Car, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Car(nil), r.cars...), nil
}

func (r *stubCarRepo) FindByID(_ context.Context, id string) (*domain.Car, error) {
	for i := range r.cars {
		if r.cars[i].ID == id {
			c := r.cars[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCarNotFound
}

func (r *stubCarRepo) Insert(_ context.Context, car *domain.Car) error {
	r.cars = append(r.cars, *car)
	return nil
}

func (r *stubCarRepo) Update(_ context.Context, id string, fn func(*domain.Car) error) (*domain.Car, error) {
	for i := range r.cars {
		if r.cars[i].ID != id {
			continue
		}
		c := r.cars[i]
		if err := fn(&c); err != nil {
			return nil, err
		}
		r.cars[i] = c
		return &c, nil
	}
	return nil, domain.ErrCarNotFound
}

func (r *stubCarRepo) Delete(_ context.Context, id string) error {
	for i := range r.cars {
		if r.cars[i].ID == id {
			r.cars = append(r.cars[:i], r.cars[i+1:]...)
			return nil
		}
	}
	return domain.ErrCarNotFound
}

type stubBookingRepo struct {
	bookings  []domain.Booking
	insertErr error
}

func (r *stubBookingRepo) List(context.Context) ([]domain.Booking, error) {
	return append([]domain.Booking(nil), r.bookings...), nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	for i := range r.bookings {
		if r.bookings[i].ID == id {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) Insert(_ context.Context, b *domain.Booking) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *stubBookingRepo) Update(_ context.Context, id string, fn func(*domain.Booking) error) (*domain.Booking, error) {
	for i := range r.bookings {
		if r.bookings[i].ID != id {
			continue
		}
		b := r.bookings[i]
		if err := fn(&b); err != nil {
			return nil, err
		}
		r.bookings[i] = b
		return &b, nil
	}
	return nil, domain.ErrBookingNotFound
}

type stubUserRepo struct {
	users []domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.users = append(r.users, *user)
	return nil
}

type stubSessionRepo struct {
	current *domain.AuthSession
	saves   int
}

func (r *stubSessionRepo) Save(_ context.Context, s *domain.AuthSession) error {
	c := *s
	r.current = &c
	r.saves++
	return nil
}

func (r *stubSessionRepo) Current(context.Context) (*domain.AuthSession, error) {
	return r.current, nil
}

func (r *stubSessionRepo) Clear(context.Context) error {
	r.current = nil
	return nil
}

func ptr[T any](v T) *T { return &v }

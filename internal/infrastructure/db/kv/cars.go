package kv

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.CarRepository = (*CarRepository)(nil)

// CarRepository stores the inventory under KeyCars.
type CarRepository struct {
	cars collection[domain.Car]
}

func NewCarRepository(a *Adapter) *CarRepository {
	return &CarRepository{cars: collection[domain.Car]{
		adapter: a,
		name:    KeyCars,
		seed:    func() ([]domain.Car, error) { return decodeSeed[domain.Car](a.fixture.cars) },
	}}
}

func (r *CarRepository) List(ctx context.Context) ([]domain.Car, error) {
	return r.cars.load(ctx)
}

func (r *CarRepository) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	cars, err := r.cars.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		if cars[i].ID == id {
			return &cars[i], nil
		}
	}
	return nil, domain.ErrCarNotFound
}

func (r *CarRepository) Insert(ctx context.Context, car *domain.Car) error {
	return r.cars.mutate(ctx, func(cars []domain.Car) ([]domain.Car, error) {
		return append(cars, *car), nil
	})
}

func (r *CarRepository) Update(ctx context.Context, id string, fn func(*domain.Car) error) (*domain.Car, error) {
	var updated domain.Car
	err := r.cars.mutate(ctx, func(cars []domain.Car) ([]domain.Car, error) {
		for i := range cars {
			if cars[i].ID != id {
				continue
			}
			car := cars[i]
			if err := fn(&car); err != nil {
				return nil, err
			}
			cars[i] = car
			updated = car
			return cars, nil
		}
		return nil, domain.ErrCarNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the car. Bookings referencing it are left untouched.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	return r.cars.mutate(ctx, func(cars []domain.Car) ([]domain.Car, error) {
		kept := cars[:0]
		for _, c := range cars {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(cars) {
			return nil, domain.ErrCarNotFound
		}
		return kept, nil
	})
}

package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.InventoryService = (*InventoryService)(nil)

type InventoryService struct {
	cars   ports.CarRepository
	logger zerolog.Logger
}

func NewInventoryService(cars ports.CarRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{cars: cars, logger: logger}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Car, error) {
	return s.cars.List(ctx)
}

func (s *InventoryService) Available(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterCars(cars, func(c *domain.Car) bool { return c.IsAvailable }), nil
}

func (s *InventoryService) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	return s.cars.FindByID(ctx, id)
}

// Search filters, then sorts. The stored inventory is never modified.
func (s *InventoryService) Search(ctx context.Context, filters domain.CarFilters, sortBy domain.SortOption) ([]domain.Car, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}

	if q := strings.ToLower(strings.TrimSpace(filters.Search)); q != "" {
		cars = filterCars(cars, func(c *domain.Car) bool {
			return strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Brand), q) ||
				strings.Contains(strings.ToLower(c.Model), q)
		})
	}
	if active(filters.Category) {
		cars = filterCars(cars, func(c *domain.Car) bool { return string(c.Category) == filters.Category })
	}
	if active(filters.Brand) {
		cars = filterCars(cars, func(c *domain.Car) bool { return c.Brand == filters.Brand })
	}
	if active(filters.Transmission) {
		cars = filterCars(cars, func(c *domain.Car) bool { return string(c.Transmission) == filters.Transmission })
	}
	if active(filters.FuelType) {
		cars = filterCars(cars, func(c *domain.Car) bool { return string(c.FuelType) == filters.FuelType })
	}
	if filters.MinPrice != nil {
		cars = filterCars(cars, func(c *domain.Car) bool { return c.PricePerDay >= *filters.MinPrice })
	}
	if filters.MaxPrice != nil {
		cars = filterCars(cars, func(c *domain.Car) bool { return c.PricePerDay <= *filters.MaxPrice })
	}
	if filters.SeatingCapacity > 0 {
		cars = filterCars(cars, func(c *domain.Car) bool { return c.SeatingCapacity >= filters.SeatingCapacity })
	}

	sortCars(cars, sortBy)
	return cars, nil
}

// Brands returns the distinct brands in ascending order.
func (s *InventoryService) Brands(ctx context.Context) ([]string, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(cars))
	brands := make([]string, 0, len(cars))
	for _, c := range cars {
		if _, ok := seen[c.Brand]; ok {
			continue
		}
		seen[c.Brand] = struct{}{}
		brands = append(brands, c.Brand)
	}
	sort.Strings(brands)
	return brands, nil
}

// Popular ranks available cars by rating × review count.
func (s *InventoryService) Popular(ctx context.Context, limit int) ([]domain.Car, error) {
	cars, err := s.Available(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(cars, func(i, j int) bool {
		return cars[i].PopularityScore() > cars[j].PopularityScore()
	})
	if limit < 0 {
		limit = 0
	}
	if limit < len(cars) {
		cars = cars[:limit]
	}
	return cars, nil
}

func (s *InventoryService) Create(ctx context.Context, input domain.CarInput) (*domain.Car, error) {
	now := time.Now().UTC()
	car := &domain.Car{
		ID:              "car-" + uuid.NewString(),
		Name:            input.Name,
		Brand:           input.Brand,
		Model:           input.Model,
		Year:            input.Year,
		Category:        input.Category,
		Transmission:    input.Transmission,
		FuelType:        input.FuelType,
		SeatingCapacity: input.SeatingCapacity,
		Color:           input.Color,
		PricePerDay:     input.PricePerDay,
		WeekendPrice:    input.WeekendPrice,
		WeeklyDiscount:  input.WeeklyDiscount,
		Images:          nonNil(input.Images),
		Features:        nonNil(input.Features),
		Description:     input.Description,
		Location:        input.Location,
		Mileage:         input.Mileage,
		IsAvailable:     input.IsAvailable,
		Rating:          input.Rating,
		TotalReviews:    input.TotalReviews,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.cars.Insert(ctx, car); err != nil {
		s.logger.Error().Err(err).Msg("failed to create car")
		return nil, err
	}

	s.logger.Info().Str("car_id", car.ID).Msg("car created")
	return car, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	now := time.Now().UTC()
	car, err := s.cars.Update(ctx, id, func(c *domain.Car) error {
		patch.Apply(c)
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("car_id", id).Msg("car updated")
	return car, nil
}

// Delete leaves bookings that reference the car untouched.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("car_id", id).Msg("car deleted")
	return nil
}

func active(v string) bool {
	return v != "" && v != domain.FilterAll
}

func filterCars(cars []domain.Car, keep func(*domain.Car) bool) []domain.Car {
	out := make([]domain.Car, 0, len(cars))
	for i := range cars {
		if keep(&cars[i]) {
			out = append(out, cars[i])
		}
	}
	return out
}

func sortCars(cars []domain.Car, by domain.SortOption) {
	var less func(a, b *domain.Car) bool
	switch by {
	case domain.SortPriceAsc:
		less = func(a, b *domain.Car) bool { return a.PricePerDay < b.PricePerDay }
	case domain.SortPriceDesc:
		less = func(a, b *domain.Car) bool { return a.PricePerDay > b.PricePerDay }
	case domain.SortRating:
		less = func(a, b *domain.Car) bool { return a.RatingOrZero() > b.RatingOrZero() }
	case domain.SortNewest:
		less = func(a, b *domain.Car) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(cars, func(i, j int) bool { return less(&cars[i], &cars[j]) })
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

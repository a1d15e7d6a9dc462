package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

const popularCarsLimit = 5

var _ ports.DashboardService = (*DashboardService)(nil)

// DashboardService aggregates inventory and booking figures for the admin overview.
type DashboardService struct {
	cars     ports.CarRepository
	bookings ports.BookingRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewDashboardService(cars ports.CarRepository, bookings ports.BookingRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{cars: cars, bookings: bookings, logger: logger, now: time.Now}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &ports.DashboardStats{
		TotalCars:     len(cars),
		TotalBookings: len(bookings),
		GeneratedAt:   now,
	}

	counts := make(map[string]int, len(cars))
	for _, b := range bookings {
		counts[b.CarID]++
		if b.Status == domain.BookingPending {
			stats.PendingApprovals++
		}
		if b.Status.CountsAsRevenue() {
			stats.TotalRevenue += b.TotalCost
		}
		if !b.CreatedAt.Before(monthStart) {
			stats.ThisMonthBookings++
		}
	}

	// Cars deleted since booking are not in the inventory and drop out here.
	popular := make([]ports.CarBookingCount, 0, len(cars))
	for _, c := range cars {
		if n := counts[c.ID]; n > 0 {
			popular = append(popular, ports.CarBookingCount{Car: c, BookingCount: n})
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].BookingCount > popular[j].BookingCount
	})
	if len(popular) > popularCarsLimit {
		popular = popular[:popularCarsLimit]
	}
	stats.PopularCars = popular

	s.logger.Debug().
		Int("total_cars", stats.TotalCars).
		Int("total_bookings", stats.TotalBookings).
		Msg("dashboard stats computed")

	return stats, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/api/metrics"
	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.BookingService = (*BookingService)(nil)

type BookingService struct {
	bookings ports.BookingRepository
	cars     ports.CarRepository
	logger   zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, cars ports.CarRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, cars: cars, logger: logger}
}

// Create opens a pending rental request. The car's availability flag is only
// checked, never changed, and overlapping bookings are allowed.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	car, err := s.cars.FindByID(ctx, input.CarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.BookingErrorsTotal.WithLabelValues("car_not_found").Inc()
			return nil, domain.ErrCarNotFound
		}
		return nil, err
	}
	if !car.IsAvailable {
		metrics.BookingErrorsTotal.WithLabelValues("car_unavailable").Inc()
		return nil, domain.ErrCarUnavailable
	}

	req := input.Request
	days := domain.DaysBetween(req.PickupDateTime, req.ReturnDateTime)
	if days <= 0 {
		metrics.BookingErrorsTotal.WithLabelValues("invalid_date_range").Inc()
		return nil, domain.ErrInvalidDateRange
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:        "booking-" + uuid.NewString(),
		UserID:    input.Requester.ID,
		UserName:  input.Requester.Name,
		UserEmail: input.Requester.Email,
		UserPhone: input.Requester.Phone,
		CarID:     car.ID,
		CarDetails: domain.CarSnapshot{
			Name:        car.Name,
			Model:       car.Model,
			Image:       car.CoverImage(),
			PricePerDay: car.PricePerDay,
		},
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupDateTime:  req.PickupDateTime.UTC(),
		ReturnDateTime:  req.ReturnDateTime.UTC(),
		NumberOfDays:    days,
		TotalCost:       car.PricePerDay * float64(days),
		Status:          domain.BookingPending,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.bookings.Insert(ctx, booking); err != nil {
		metrics.BookingErrorsTotal.WithLabelValues("storage").Inc()
		s.logger.Error().Err(err).Str("car_id", car.ID).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(string(car.Category)).Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("car_id", car.ID).
		Str("user_id", booking.UserID).
		Int("days", days).
		Msg("booking created")

	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpdateStatus applies an admin transition. Approval stamps the actor and time;
// rejection stores the reason as given, even when empty.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, actorID, rejectionReason string) (*domain.Booking, error) {
	var from domain.BookingStatus
	now := time.Now().UTC()

	booking, err := s.bookings.Update(ctx, id, func(b *domain.Booking) error {
		from = b.Status
		if !b.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidState, b.Status, status)
		}
		b.Status = status
		b.UpdatedAt = now
		switch status {
		case domain.BookingApproved:
			if actorID != "" {
				b.ApprovedBy = actorID
				b.ApprovedAt = &now
			}
		case domain.BookingRejected:
			b.RejectionReason = rejectionReason
		}
		return nil
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(from), string(status)).Inc()
	s.logger.Info().
		Str("booking_id", id).
		Str("from", string(from)).
		Str("status", string(status)).
		Str("actor_id", actorID).
		Msg("booking status updated")

	return booking, nil
}

// Cancel withdraws a pending booking on behalf of its owner.
func (s *BookingService) Cancel(ctx context.Context, id, userID string) (*domain.Booking, error) {
	now := time.Now().UTC()

	booking, err := s.bookings.Update(ctx, id, func(b *domain.Booking) error {
		if b.UserID != userID {
			return fmt.Errorf("%w to cancel this booking", domain.ErrUnauthorized)
		}
		if b.Status != domain.BookingPending {
			return fmt.Errorf("%w: can only cancel pending bookings", domain.ErrInvalidState)
		}
		b.Status = domain.BookingCancelled
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(domain.BookingPending), string(domain.BookingCancelled)).Inc()
	s.logger.Info().Str("booking_id", id).Str("user_id", userID).Msg("booking cancelled")
	return booking, nil
}

// Filter returns matching bookings, newest first.
func (s *BookingService) Filter(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(all))
	for i := range all {
		if filters.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *BookingService) PendingCount(ctx context.Context) (int, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range all {
		if b.Status == domain.BookingPending {
			n++
		}
	}
	return n, nil
}

// TotalRevenue sums approved and completed bookings.
func (s *BookingService) TotalRevenue(ctx context.Context) (float64, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, b := range all {
		if b.Status.CountsAsRevenue() {
			total += b.TotalCost
		}
	}
	return total, nil
}

func (s *BookingService) recordFailure(err error) {
	reason := "storage"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		reason = "unauthorized"
	case errors.Is(err, domain.ErrInvalidState):
		reason = "invalid_state"
	default:
		s.logger.Error().Err(err).Msg("booking update failed")
	}
	metrics.BookingErrorsTotal.WithLabelValues(reason).Inc()
}

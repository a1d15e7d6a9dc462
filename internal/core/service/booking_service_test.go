package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

func newBookingSvc(cars ...domain.Car) (*BookingService, *stubBookingRepo, *stubCarRepo) {
	carRepo := &stubCarRepo{cars: cars}
	bookingRepo := &stubBookingRepo{}
	return NewBookingService(bookingRepo, carRepo, zerolog.Nop()), bookingRepo, carRepo
}

func carA() domain.Car {
	return domain.Car{ID: "car-a", Name: "Car A", Model: "A1", Category: domain.CategorySedan, PricePerDay: 40, IsAvailable: true, Images: []string{"a.jpg", "b.jpg"}}
}

func bookingInput(carID string, pickup, ret time.Time) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		CarID:     carID,
		Requester: domain.Requester{ID: "u1", Name: "Jane", Email: "jane@example.com", Phone: "555"},
		Request: domain.BookingRequest{
			PickupLocation:  "Downtown",
			DropoffLocation: "Airport",
			PickupDateTime:  pickup,
			ReturnDateTime:  ret,
		},
	}
}

var (
	pickup   = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	returned = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
)

func TestBookingService_Create_HappyPath(t *testing.T) {
	svc, repo, _ := newBookingSvc(carA())

	b, err := svc.Create(context.Background(), bookingInput("car-a", pickup, returned))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if b.NumberOfDays != 2 || b.TotalCost != 80 || b.Status != domain.BookingPending {
		t.Errorf("expected 2 days / 80 / pending, got %d / %v / %s", b.NumberOfDays, b.TotalCost, b.Status)
	}
	if !strings.HasPrefix(b.ID, "booking-") {
		t.Errorf("unexpected id %q", b.ID)
	}
	if b.CarDetails.Image != "a.jpg" || b.CarDetails.Name != "Car A" || b.UserEmail != "jane@example.com" {
		t.Errorf("unexpected snapshot: %+v", b)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("expected booking persisted")
	}
}

func TestBookingService_Create_DoesNotTouchCarAvailability(t *testing.T) {
	svc, _, cars := newBookingSvc(carA())
	ctx := context.Background()

	if _, err := svc.Create(ctx, bookingInput("car-a", pickup, returned)); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.Create(ctx, bookingInput("car-a", pickup, returned)); err != nil {
		t.Fatalf("overlapping booking should be accepted, got: %v", err)
	}
	if !cars.cars[0].IsAvailable {
		t.Errorf("car availability must not change")
	}
}

func TestBookingService_Create_Failures(t *testing.T) {
	unavailable := carA()
	unavailable.ID = "car-off"
	unavailable.IsAvailable = false
	svc, repo, _ := newBookingSvc(carA(), unavailable)
	ctx := context.Background()

	if _, err := svc.Create(ctx, bookingInput("missing", pickup, returned)); !errors.Is(err, domain.ErrCarNotFound) {
		t.Errorf("expected ErrCarNotFound, got: %v", err)
	}
	if _, err := svc.Create(ctx, bookingInput("car-off", pickup, returned)); !errors.Is(err, domain.ErrCarUnavailable) {
		t.Errorf("expected ErrCarUnavailable, got: %v", err)
	}
	if _, err := svc.Create(ctx, bookingInput("car-a", returned, pickup)); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("reversed dates: expected ErrInvalidDateRange, got: %v", err)
	}
	if _, err := svc.Create(ctx, bookingInput("car-a", pickup, pickup.Add(23*time.Hour))); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("under one day: expected ErrInvalidDateRange, got: %v", err)
	}
	if len(repo.bookings) != 0 {
		t.Errorf("expected nothing persisted, got %d", len(repo.bookings))
	}
}

func TestBookingService_TotalCostNotRecomputed(t *testing.T) {
	svc, _, cars := newBookingSvc(carA())
	ctx := context.Background()

	b, _ := svc.Create(ctx, bookingInput("car-a", pickup, returned))
	cars.cars[0].PricePerDay = 999

	got, _ := svc.GetByID(ctx, b.ID)
	if got.TotalCost != 80 || got.CarDetails.PricePerDay != 40 {
		t.Errorf("expected original pricing kept, got %v / %v", got.TotalCost, got.CarDetails.PricePerDay)
	}
}

func TestBookingService_DeletedCarKeepsSnapshot(t *testing.T) {
	svc, _, cars := newBookingSvc(carA())
	ctx := context.Background()

	b, _ := svc.Create(ctx, bookingInput("car-a", pickup, returned))
	if err := cars.Delete(ctx, "car-a"); err != nil {
		t.Fatalf("delete car: %v", err)
	}

	got, err := svc.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("booking should remain retrievable, got: %v", err)
	}
	if got.CarDetails.Name != "Car A" {
		t.Errorf("expected snapshot intact, got %+v", got.CarDetails)
	}
	if _, err := cars.FindByID(ctx, got.CarID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected car lookup to fail, got: %v", err)
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	svc, _, _ := newBookingSvc(carA())
	ctx := context.Background()

	approved, _ := svc.Create(ctx, bookingInput("car-a", pickup, returned))
	got, err := svc.UpdateStatus(ctx, approved.ID, domain.BookingApproved, "admin-1", "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.ApprovedBy != "admin-1" || got.ApprovedAt == nil {
		t.Errorf("expected approver stamped, got %+v", got)
	}

	completed, err := svc.UpdateStatus(ctx, approved.ID, domain.BookingCompleted, "admin-1", "")
	if err != nil || completed.Status != domain.BookingCompleted {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, approved.ID, domain.BookingPending, "admin-1", ""); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected terminal state to stay terminal, got: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", domain.BookingApproved, "admin-1", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got: %v", err)
	}
}

func TestBookingService_RejectWithEmptyReason(t *testing.T) {
	svc, _, _ := newBookingSvc(carA())
	ctx := context.Background()

	b, _ := svc.Create(ctx, bookingInput("car-a", pickup, returned))
	got, err := svc.UpdateStatus(ctx, b.ID, domain.BookingRejected, "admin-1", "")
	if err != nil {
		t.Fatalf("expected empty reason accepted, got: %v", err)
	}
	stored, _ := svc.GetByID(ctx, b.ID)
	if got.Status != domain.BookingRejected || stored.Status != domain.BookingRejected || stored.RejectionReason != "" {
		t.Errorf("expected rejected with empty reason, got %+v", stored)
	}
}

func TestBookingService_Cancel(t *testing.T) {
	svc, _, _ := newBookingSvc(carA())
	ctx := context.Background()

	b, _ := svc.Create(ctx, bookingInput("car-a", pickup, returned))

	_, err := svc.Cancel(ctx, b.ID, "someone-else")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
	if err.Error() != "unauthorized to cancel this booking" {
		t.Errorf("unexpected message %q", err.Error())
	}

	got, err := svc.Cancel(ctx, b.ID, "u1")
	if err != nil || got.Status != domain.BookingCancelled {
		t.Fatalf("expected cancelled, got %v err=%v", got, err)
	}

	if _, err := svc.Cancel(ctx, "missing", "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got: %v", err)
	}
}

func TestBookingService_Cancel_OnlyPending(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingApproved, domain.BookingRejected, domain.BookingCompleted, domain.BookingCancelled} {
		svc, repo, _ := newBookingSvc(carA())
		repo.bookings = []domain.Booking{{ID: "b1", UserID: "u1", Status: status}}

		_, err := svc.Cancel(context.Background(), "b1", "u1")
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("status %s: expected ErrInvalidState, got: %v", status, err)
		}
		if repo.bookings[0].Status != status {
			t.Errorf("status %s: expected no change, got %s", status, repo.bookings[0].Status)
		}
	}
}

func TestBookingService_FilterAndAggregates(t *testing.T) {
	svc, repo, _ := newBookingSvc()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	repo.bookings = []domain.Booking{
		{ID: "b1", UserID: "u1", Status: domain.BookingPending, TotalCost: 100, CreatedAt: day(1)},
		{ID: "b2", UserID: "u2", Status: domain.BookingApproved, TotalCost: 200, CreatedAt: day(5)},
		{ID: "b3", UserID: "u1", Status: domain.BookingCompleted, TotalCost: 50, CreatedAt: day(10)},
		{ID: "b4", UserID: "u1", Status: domain.BookingRejected, TotalCost: 75, CreatedAt: day(3)},
	}
	ctx := context.Background()

	all, _ := svc.Filter(ctx, domain.BookingFilters{Status: domain.FilterAll})
	if got := bookingIDs(all); got != "b3,b2,b4,b1" {
		t.Errorf("expected newest first, got %s", got)
	}

	from, to := day(3), day(5)
	ranged, _ := svc.Filter(ctx, domain.BookingFilters{DateFrom: &from, DateTo: &to})
	if got := bookingIDs(ranged); got != "b2,b4" {
		t.Errorf("expected inclusive range b2,b4, got %s", got)
	}

	pending, _ := svc.Filter(ctx, domain.BookingFilters{Status: "pending"})
	if got := bookingIDs(pending); got != "b1" {
		t.Errorf("expected b1, got %s", got)
	}

	mine, _ := svc.ListByUser(ctx, "u1")
	if got := bookingIDs(mine); got != "b1,b3,b4" {
		t.Errorf("expected u1 bookings in stored order, got %s", got)
	}

	if n, _ := svc.PendingCount(ctx); n != 1 {
		t.Errorf("expected 1 pending, got %d", n)
	}
	if rev, _ := svc.TotalRevenue(ctx); rev != 250 {
		t.Errorf("expected revenue 250, got %v", rev)
	}
}

func bookingIDs(bs []domain.Booking) string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return strings.Join(out, ",")
}

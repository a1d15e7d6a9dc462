package viewmodel

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/forms"
)

// BookingViewModel re-fetches its listing after every mutation: the caller's
// own bookings for users, the filtered global list for admins.
type BookingViewModel struct {
	state
	bookings ports.BookingService
	session  SessionProvider
	list     []domain.Booking
	filters  domain.BookingFilters
}

func NewBookingViewModel(bookings ports.BookingService, session SessionProvider) *BookingViewModel {
	return &BookingViewModel{
		bookings: bookings,
		session:  session,
		filters:  domain.BookingFilters{Status: domain.FilterAll},
	}
}

func (vm *BookingViewModel) Bookings() []domain.Booking {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]domain.Booking(nil), vm.list...)
}

func (vm *BookingViewModel) Filters() domain.BookingFilters {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filters
}

func (vm *BookingViewModel) SetFilters(f domain.BookingFilters) {
	vm.mu.Lock()
	vm.filters = f
	vm.mu.Unlock()
}

// FetchUser loads the caller's bookings that match the active filters.
// Without a session it does nothing.
func (vm *BookingViewModel) FetchUser(ctx context.Context) error {
	s := vm.session.Session()
	if s == nil {
		return nil
	}

	vm.begin()
	all, err := vm.bookings.Filter(ctx, vm.Filters())
	if err != nil {
		return vm.end(err)
	}
	mine := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.UserID == s.ID {
			mine = append(mine, b)
		}
	}
	vm.setList(mine)
	return vm.end(nil)
}

// FetchAll loads every booking matching the active filters.
func (vm *BookingViewModel) FetchAll(ctx context.Context) error {
	vm.begin()
	all, err := vm.bookings.Filter(ctx, vm.Filters())
	if err == nil {
		vm.setList(all)
	}
	return vm.end(err)
}

func (vm *BookingViewModel) Refresh(ctx context.Context) error {
	if vm.session.Session().IsAdmin() {
		return vm.FetchAll(ctx)
	}
	return vm.FetchUser(ctx)
}

func (vm *BookingViewModel) Create(ctx context.Context, form forms.BookingForm) (*domain.Booking, error) {
	s := vm.session.Session()
	if s == nil {
		return nil, vm.fail(domain.ErrNotAuthenticated)
	}
	if err := forms.Validate(form); err != nil {
		return nil, vm.fail(err)
	}
	req, err := form.Request()
	if err != nil {
		return nil, vm.fail(err)
	}

	vm.begin()
	booking, err := vm.bookings.Create(ctx, ports.CreateBookingInput{
		CarID:     form.CarID,
		Requester: domain.Requester{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone},
		Request:   req,
	})
	if err != nil {
		return nil, vm.end(err)
	}
	vm.end(nil)
	return booking, vm.FetchUser(ctx)
}

func (vm *BookingViewModel) Cancel(ctx context.Context, id string) error {
	s := vm.session.Session()
	if s == nil {
		return vm.fail(domain.ErrNotAuthenticated)
	}

	vm.begin()
	if _, err := vm.bookings.Cancel(ctx, id, s.ID); err != nil {
		return vm.end(err)
	}
	vm.end(nil)
	return vm.FetchUser(ctx)
}

func (vm *BookingViewModel) Approve(ctx context.Context, id string) error {
	return vm.transition(ctx, id, domain.BookingApproved, "")
}

// Reject requires a reason here even though the service would store an empty one.
func (vm *BookingViewModel) Reject(ctx context.Context, id string, form forms.RejectForm) error {
	if err := forms.Validate(form); err != nil {
		return vm.fail(err)
	}
	return vm.transition(ctx, id, domain.BookingRejected, form.Reason)
}

func (vm *BookingViewModel) Complete(ctx context.Context, id string) error {
	return vm.transition(ctx, id, domain.BookingCompleted, "")
}

func (vm *BookingViewModel) transition(ctx context.Context, id string, status domain.BookingStatus, reason string) error {
	s := vm.session.Session()
	if !s.IsAdmin() {
		return vm.fail(domain.ErrUnauthorized)
	}

	vm.begin()
	if _, err := vm.bookings.UpdateStatus(ctx, id, status, s.ID, reason); err != nil {
		return vm.end(err)
	}
	vm.end(nil)
	return vm.FetchAll(ctx)
}

func (vm *BookingViewModel) setList(list []domain.Booking) {
	vm.mu.Lock()
	vm.list = list
	vm.mu.Unlock()
}

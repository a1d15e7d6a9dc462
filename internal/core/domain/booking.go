package domain

import "time"

// BookingStatus represents the lifecycle state of a rental request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. Statuses
// without an entry are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingApproved, BookingRejected, BookingCancelled},
	BookingApproved: {BookingCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CountsAsRevenue reports whether a booking in status s contributes to revenue.
func (s BookingStatus) CountsAsRevenue() bool {
	return s == BookingApproved || s == BookingCompleted
}

// CarSnapshot freezes the car's display fields at booking time so the booking
// stays stable when the car record later changes or disappears.
type CarSnapshot struct {
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	Image       string  `json:"image"`
	PricePerDay float64 `json:"pricePerDay"`
}

// Booking is a rental request.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	UserName        string        `json:"userName"`
	UserEmail       string        `json:"userEmail"`
	UserPhone       string        `json:"userPhone"`
	CarID           string        `json:"carId"`
	CarDetails      CarSnapshot   `json:"carDetails"`
	PickupLocation  string        `json:"pickupLocation"`
	DropoffLocation string        `json:"dropoffLocation"`
	PickupDateTime  time.Time     `json:"pickupDateTime"`
	ReturnDateTime  time.Time     `json:"returnDateTime"`
	NumberOfDays    int           `json:"numberOfDays"`
	TotalCost       float64       `json:"totalCost"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	ApprovedBy      string        `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Requester is the identity snapshot copied onto a booking.
type Requester struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// BookingRequest is the rental form submitted by a user.
type BookingRequest struct {
	PickupLocation  string
	DropoffLocation string
	PickupDateTime  time.Time
	ReturnDateTime  time.Time
	SpecialRequests string
}

// BookingFilters narrows a booking listing. An empty Status or FilterAll
// matches every status; nil bounds are open.
type BookingFilters struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Matches reports whether b satisfies every set criterion. Date bounds are inclusive
// and apply to the creation time.
func (f BookingFilters) Matches(b *Booking) bool {
	if f.Status != "" && f.Status != FilterAll && string(b.Status) != f.Status {
		return false
	}
	if f.DateFrom != nil && b.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && b.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/forms"
)

// BookingHandler serves the booking lifecycle. The caller identity always comes
// from the token, never from the payload.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /v1/bookings.
//
// @Summary      Request a rental
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      forms.BookingForm  true  "Rental details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req forms.BookingForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	rental, err := req.Request()
	if err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		CarID:     req.CarID,
		Requester: p.requester(),
		Request:   rental,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// Mine handles GET /v1/bookings/mine.
//
// @Summary      My bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Status or all"
// @Param        dateFrom  query     string  false  "Created on or after"
// @Param        dateTo    query     string  false  "Created on or before"
// @Success      200       {object}  bookingListResponse
// @Router       /v1/bookings/mine [get]
func (h *BookingHandler) Mine(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	filters, err := bindBookingFilters(c)
	if err != nil {
		return err
	}

	all, err := h.bookings.Filter(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	mine := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if b.UserID == p.ID {
			mine = append(mine, b)
		}
	}
	return c.JSON(http.StatusOK, bookingListResponse{Bookings: mine, Count: len(mine)})
}

// Cancel handles POST /v1/bookings/:id/cancel.
//
// @Summary      Cancel my pending booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Cancel(c.Request().Context(), c.Param("id"), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// List handles GET /v1/bookings (admin).
//
// @Summary      All bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Status or all"
// @Param        dateFrom  query     string  false  "Created on or after"
// @Param        dateTo    query     string  false  "Created on or before"
// @Success      200       {object}  bookingListResponse
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	filters, err := bindBookingFilters(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.Filter(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingListResponse{Bookings: bookings, Count: len(bookings)})
}

// Approve handles POST /v1/bookings/:id/approve (admin).
//
// @Summary      Approve a pending booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c echo.Context) error {
	return h.transition(c, domain.BookingApproved, "")
}

// Reject handles POST /v1/bookings/:id/reject (admin).
//
// @Summary      Reject a pending booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Booking id"
// @Param        body  body      forms.RejectForm  true  "Reason"
// @Success      200   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c echo.Context) error {
	var req forms.RejectForm
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.transition(c, domain.BookingRejected, req.Reason)
}

// Complete handles POST /v1/bookings/:id/complete (admin).
//
// @Summary      Mark an approved booking completed
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      409  {object}  errorResponse
// @Router       /v1/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c echo.Context) error {
	return h.transition(c, domain.BookingCompleted, "")
}

func (h *BookingHandler) transition(c echo.Context, status domain.BookingStatus, reason string) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.UpdateStatus(c.Request().Context(), c.Param("id"), status, p.ID, reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

func bindBookingFilters(c echo.Context) (domain.BookingFilters, error) {
	var q bookingFilterQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return domain.BookingFilters{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return domain.BookingFilters{}, err
	}
	return q.filters()
}

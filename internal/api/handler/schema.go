package handler

import (
	"fmt"
	"strconv"

	"github.com/driveway/rental-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type carListResponse struct {
	Cars  []domain.Car `json:"cars"`
	Count int          `json:"count"`
}

type brandsResponse struct {
	Brands []string `json:"brands"`
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Count    int              `json:"count"`
}

// carSearchQuery mirrors the search form; empty values and "all" disable a filter.
type carSearchQuery struct {
	Search          string `query:"search"`
	Category        string `query:"category"`
	Brand           string `query:"brand"`
	Transmission    string `query:"transmission"`
	FuelType        string `query:"fuelType"`
	MinPrice        string `query:"minPrice" validate:"omitempty,numeric"`
	MaxPrice        string `query:"maxPrice" validate:"omitempty,numeric"`
	SeatingCapacity int    `query:"seatingCapacity" validate:"omitempty,gte=0"`
	Sort            string `query:"sort" validate:"omitempty,oneof=price-asc price-desc rating newest"`
}

func (q carSearchQuery) filters() (domain.CarFilters, error) {
	minPrice, err := parsePrice("minPrice", q.MinPrice)
	if err != nil {
		return domain.CarFilters{}, err
	}
	maxPrice, err := parsePrice("maxPrice", q.MaxPrice)
	if err != nil {
		return domain.CarFilters{}, err
	}
	return domain.CarFilters{
		Search:          q.Search,
		Category:        q.Category,
		Brand:           q.Brand,
		Transmission:    q.Transmission,
		FuelType:        q.FuelType,
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
		SeatingCapacity: q.SeatingCapacity,
	}, nil
}

func parsePrice(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, name)
	}
	return &v, nil
}

type bookingFilterQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=all pending approved rejected completed cancelled"`
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
}

func (q bookingFilterQuery) filters() (domain.BookingFilters, error) {
	from, err := domain.ParseDateBound(q.DateFrom, false)
	if err != nil {
		return domain.BookingFilters{}, err
	}
	to, err := domain.ParseDateBound(q.DateTo, true)
	if err != nil {
		return domain.BookingFilters{}, err
	}
	return domain.BookingFilters{Status: q.Status, DateFrom: from, DateTo: to}, nil
}

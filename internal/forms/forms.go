package forms

import (
	"strings"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

type RegisterForm struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string `json:"phone,omitempty"`
}

func (f RegisterForm) Input() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Phone:    strings.TrimSpace(f.Phone),
	}
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BookingForm carries date/times as submitted; they are parsed by Request.
type BookingForm struct {
	CarID           string `json:"carId" validate:"required"`
	PickupLocation  string `json:"pickupLocation" validate:"required,min=3"`
	DropoffLocation string `json:"dropoffLocation" validate:"required,min=3"`
	PickupDateTime  string `json:"pickupDateTime" validate:"required"`
	ReturnDateTime  string `json:"returnDateTime" validate:"required"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"eq=true"`
}

// Request parses the date/time fields.
func (f BookingForm) Request() (domain.BookingRequest, error) {
	pickup, err := domain.ParseDateTime(f.PickupDateTime)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	ret, err := domain.ParseDateTime(f.ReturnDateTime)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	return domain.BookingRequest{
		PickupLocation:  strings.TrimSpace(f.PickupLocation),
		DropoffLocation: strings.TrimSpace(f.DropoffLocation),
		PickupDateTime:  pickup,
		ReturnDateTime:  ret,
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
	}, nil
}

type CarForm struct {
	Name            string   `json:"name" validate:"required,min=3"`
	Brand           string   `json:"brand" validate:"required,min=2"`
	Model           string   `json:"model" validate:"required,min=1"`
	Year            int      `json:"year" validate:"required,caryear"`
	Category        string   `json:"category" validate:"required,oneof=sedan suv hatchback luxury sports electric"`
	Transmission    string   `json:"transmission" validate:"required,oneof=automatic manual"`
	FuelType        string   `json:"fuelType" validate:"required,oneof=petrol diesel electric hybrid"`
	SeatingCapacity int      `json:"seatingCapacity" validate:"required,min=2,max=9"`
	Color           string   `json:"color" validate:"required,min=2"`
	PricePerDay     float64  `json:"pricePerDay" validate:"required,gte=1"`
	WeekendPrice    *float64 `json:"weekendPrice,omitempty" validate:"omitempty,gte=0"`
	WeeklyDiscount  *float64 `json:"weeklyDiscount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Images          []string `json:"images" validate:"min=1,dive,required"`
	Features        []string `json:"features" validate:"min=1,dive,required"`
	Description     string   `json:"description" validate:"required,min=10"`
	Location        string   `json:"location" validate:"required,min=3"`
	Mileage         string   `json:"mileage" validate:"required,min=1"`
	IsAvailable     bool     `json:"isAvailable"`
	Rating          *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	TotalReviews    *int     `json:"totalReviews,omitempty" validate:"omitempty,gte=0"`
}

func (f CarForm) Input() domain.CarInput {
	return domain.CarInput{
		Name:            strings.TrimSpace(f.Name),
		Brand:           strings.TrimSpace(f.Brand),
		Model:           strings.TrimSpace(f.Model),
		Year:            f.Year,
		Category:        domain.CarCategory(f.Category),
		Transmission:    domain.Transmission(f.Transmission),
		FuelType:        domain.FuelType(f.FuelType),
		SeatingCapacity: f.SeatingCapacity,
		Color:           strings.TrimSpace(f.Color),
		PricePerDay:     f.PricePerDay,
		WeekendPrice:    f.WeekendPrice,
		WeeklyDiscount:  f.WeeklyDiscount,
		Images:          f.Images,
		Features:        f.Features,
		Description:     strings.TrimSpace(f.Description),
		Location:        strings.TrimSpace(f.Location),
		Mileage:         strings.TrimSpace(f.Mileage),
		IsAvailable:     f.IsAvailable,
		Rating:          f.Rating,
		TotalReviews:    f.TotalReviews,
	}
}

// RejectForm requires a reason even though the booking service accepts an empty one.
type RejectForm struct {
	Reason string `json:"reason" validate:"required"`
}

package domain

import "time"

type CarCategory string

const (
	CategorySedan     CarCategory = "sedan"
	CategorySUV       CarCategory = "suv"
	CategoryHatchback CarCategory = "hatchback"
	CategoryLuxury    CarCategory = "luxury"
	CategorySports    CarCategory = "sports"
	CategoryElectric  CarCategory = "electric"
)

type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// FilterAll is the sentinel filter value meaning "no constraint on this field".
const FilterAll = "all"

// Car is a rental unit in the inventory.
type Car struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Brand           string       `json:"brand"`
	Model           string       `json:"model"`
	Year            int          `json:"year"`
	Category        CarCategory  `json:"category"`
	Transmission    Transmission `json:"transmission"`
	FuelType        FuelType     `json:"fuelType"`
	SeatingCapacity int          `json:"seatingCapacity"`
	Color           string       `json:"color"`
	PricePerDay     float64      `json:"pricePerDay"`
	WeekendPrice    *float64     `json:"weekendPrice,omitempty"`
	WeeklyDiscount  *float64     `json:"weeklyDiscount,omitempty"`
	Images          []string     `json:"images"`
	Features        []string     `json:"features"`
	Description     string       `json:"description"`
	Location        string       `json:"location"`
	Mileage         string       `json:"mileage"`
	IsAvailable     bool         `json:"isAvailable"`
	Rating          *float64     `json:"rating,omitempty"`
	TotalReviews    *int         `json:"totalReviews,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// RatingOrZero returns the rating, treating a missing one as 0.
func (c *Car) RatingOrZero() float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

// PopularityScore is rating × review count with missing values as 0.
func (c *Car) PopularityScore() float64 {
	if c.TotalReviews == nil {
		return 0
	}
	return c.RatingOrZero() * float64(*c.TotalReviews)
}

// CoverImage is the first image URL, or "" when the car has none.
func (c *Car) CoverImage() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}

// CarInput carries every writable car attribute; the store assigns id and timestamps.
type CarInput struct {
	Name            string
	Brand           string
	Model           string
	Year            int
	Category        CarCategory
	Transmission    Transmission
	FuelType        FuelType
	SeatingCapacity int
	Color           string
	PricePerDay     float64
	WeekendPrice    *float64
	WeeklyDiscount  *float64
	Images          []string
	Features        []string
	Description     string
	Location        string
	Mileage         string
	IsAvailable     bool
	Rating          *float64
	TotalReviews    *int
}

// CarPatch is a partial update; nil fields are left untouched.
type CarPatch struct {
	Name            *string       `json:"name,omitempty" validate:"omitempty,min=3"`
	Brand           *string       `json:"brand,omitempty" validate:"omitempty,min=2"`
	Model           *string       `json:"model,omitempty" validate:"omitempty,min=1"`
	Year            *int          `json:"year,omitempty" validate:"omitempty,caryear"`
	Category        *CarCategory  `json:"category,omitempty" validate:"omitempty,oneof=sedan suv hatchback luxury sports electric"`
	Transmission    *Transmission `json:"transmission,omitempty" validate:"omitempty,oneof=automatic manual"`
	FuelType        *FuelType     `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel electric hybrid"`
	SeatingCapacity *int          `json:"seatingCapacity,omitempty" validate:"omitempty,min=2,max=9"`
	Color           *string       `json:"color,omitempty" validate:"omitempty,min=2"`
	PricePerDay     *float64      `json:"pricePerDay,omitempty" validate:"omitempty,gte=1"`
	WeekendPrice    *float64      `json:"weekendPrice,omitempty" validate:"omitempty,gte=0"`
	WeeklyDiscount  *float64      `json:"weeklyDiscount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Images          []string      `json:"images,omitempty" validate:"omitempty,min=1,dive,required"`
	Features        []string      `json:"features,omitempty" validate:"omitempty,min=1,dive,required"`
	Description     *string       `json:"description,omitempty" validate:"omitempty,min=10"`
	Location        *string       `json:"location,omitempty" validate:"omitempty,min=3"`
	Mileage         *string       `json:"mileage,omitempty" validate:"omitempty,min=1"`
	IsAvailable     *bool         `json:"isAvailable,omitempty"`
	Rating          *float64      `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	TotalReviews    *int          `json:"totalReviews,omitempty" validate:"omitempty,gte=0"`
}

// Apply merges the set fields of p over c.
func (p CarPatch) Apply(c *Car) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Brand != nil {
		c.Brand = *p.Brand
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.Year != nil {
		c.Year = *p.Year
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Transmission != nil {
		c.Transmission = *p.Transmission
	}
	if p.FuelType != nil {
		c.FuelType = *p.FuelType
	}
	if p.SeatingCapacity != nil {
		c.SeatingCapacity = *p.SeatingCapacity
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.PricePerDay != nil {
		c.PricePerDay = *p.PricePerDay
	}
	if p.WeekendPrice != nil {
		c.WeekendPrice = p.WeekendPrice
	}
	if p.WeeklyDiscount != nil {
		c.WeeklyDiscount = p.WeeklyDiscount
	}
	if p.Images != nil {
		c.Images = p.Images
	}
	if p.Features != nil {
		c.Features = p.Features
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Mileage != nil {
		c.Mileage = *p.Mileage
	}
	if p.IsAvailable != nil {
		c.IsAvailable = *p.IsAvailable
	}
	if p.Rating != nil {
		c.Rating = p.Rating
	}
	if p.TotalReviews != nil {
		c.TotalReviews = p.TotalReviews
	}
}

// CarFilters narrows a car search. Empty strings and FilterAll disable a field;
// nil price bounds and a zero seating capacity do the same.
type CarFilters struct {
	Search          string
	Category        string
	Brand           string
	Transmission    string
	FuelType        string
	MinPrice        *float64
	MaxPrice        *float64
	SeatingCapacity int
}

// SortOption orders search results. The zero value keeps the filtered order.
type SortOption string

const (
	SortNone      SortOption = ""
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortRating    SortOption = "rating"
	SortNewest    SortOption = "newest"
)

// Valid reports whether s is one of the known sort options (or none).
func (s SortOption) Valid() bool {
	switch s {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	}
	return false
}

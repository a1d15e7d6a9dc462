package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/driveway/rental-system/internal/core/domain"
)

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func day(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func printCars(out io.Writer, cars []domain.Car) error {
	if len(cars) == 0 {
		fmt.Fprintln(out, "No cars found.")
		return nil
	}
	w := table(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSEATS\tPRICE/DAY\tRATING\tAVAILABLE")
	for _, c := range cars {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.1f\t%t\n",
			c.ID, c.Name, c.Category, c.SeatingCapacity, money(c.PricePerDay), c.RatingOrZero(), c.IsAvailable)
	}
	return w.Flush()
}

func printCar(out io.Writer, c *domain.Car) error {
	w := table(out)
	fmt.Fprintf(w, "ID\t%s\n", c.ID)
	fmt.Fprintf(w, "Name\t%s\n", c.Name)
	fmt.Fprintf(w, "Brand / model\t%s %s (%d)\n", c.Brand, c.Model, c.Year)
	fmt.Fprintf(w, "Category\t%s\n", c.Category)
	fmt.Fprintf(w, "Transmission\t%s\n", c.Transmission)
	fmt.Fprintf(w, "Fuel\t%s\n", c.FuelType)
	fmt.Fprintf(w, "Seats\t%d\n", c.SeatingCapacity)
	fmt.Fprintf(w, "Color\t%s\n", c.Color)
	fmt.Fprintf(w, "Price/day\t%s\n", money(c.PricePerDay))
	if c.WeekendPrice != nil {
		fmt.Fprintf(w, "Weekend price\t%s\n", money(*c.WeekendPrice))
	}
	if c.WeeklyDiscount != nil {
		fmt.Fprintf(w, "Weekly discount\t%.0f%%\n", *c.WeeklyDiscount)
	}
	fmt.Fprintf(w, "Location\t%s\n", c.Location)
	fmt.Fprintf(w, "Mileage\t%s\n", c.Mileage)
	fmt.Fprintf(w, "Features\t%s\n", strings.Join(c.Features, ", "))
	fmt.Fprintf(w, "Available\t%t\n", c.IsAvailable)
	if c.Rating != nil {
		reviews := 0
		if c.TotalReviews != nil {
			reviews = *c.TotalReviews
		}
		fmt.Fprintf(w, "Rating\t%.1f (%d reviews)\n", *c.Rating, reviews)
	}
	fmt.Fprintf(w, "Description\t%s\n", c.Description)
	return w.Flush()
}

func printBookings(out io.Writer, bookings []domain.Booking, withCustomer bool) error {
	if len(bookings) == 0 {
		fmt.Fprintln(out, "No bookings found.")
		return nil
	}
	w := table(out)
	header := "ID\tCAR\tPICKUP\tRETURN\tDAYS\tTOTAL\tSTATUS"
	if withCustomer {
		header += "\tCUSTOMER"
	}
	fmt.Fprintln(w, header)
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s",
			b.ID, b.CarDetails.Name, day(b.PickupDateTime), day(b.ReturnDateTime),
			b.NumberOfDays, money(b.TotalCost), b.Status)
		if withCustomer {
			fmt.Fprintf(w, "\t%s <%s>", b.UserName, b.UserEmail)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/forms"
	"github.com/driveway/rental-system/internal/viewmodel"
)

func carsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "cars",
		Usage: "browse and manage the fleet",
		Subcommands: []*cli.Command{
			carsListCommand(e),
			{
				Name:      "show",
				Usage:     "show one car",
				ArgsUsage: "CAR_ID",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "CAR_ID")
					if err != nil {
						return err
					}
					car, err := e.inventory.CarByID(c.Context, id)
					if err != nil {
						return failed(e.inventory.ErrorMessage(), err)
					}
					return printCar(e.out, car)
				},
			},
			{
				Name:  "popular",
				Usage: "best rated available cars",
				Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Value: 6}},
				Action: func(c *cli.Context) error {
					cars, err := e.inventory.Popular(c.Context, c.Int("limit"))
					if err != nil {
						return failed(e.inventory.ErrorMessage(), err)
					}
					return printCars(e.out, cars)
				},
			},
			{
				Name:  "brands",
				Usage: "list the brands in the fleet",
				Action: func(c *cli.Context) error {
					brands, err := e.inventory.Brands(c.Context)
					if err != nil {
						return failed(e.inventory.ErrorMessage(), err)
					}
					for _, b := range brands {
						fmt.Fprintln(e.out, b)
					}
					return nil
				},
			},
			carsAddCommand(e),
			carsUpdateCommand(e),
			{
				Name:      "delete",
				Usage:     "remove a car (admin)",
				ArgsUsage: "CAR_ID",
				Action: func(c *cli.Context) error {
					if err := e.gate(viewmodel.RequireAdmin); err != nil {
						return err
					}
					id, err := requireArg(c, "CAR_ID")
					if err != nil {
						return err
					}
					if err := e.inventory.Delete(c.Context, id); err != nil {
						return failed(e.inventory.ErrorMessage(), err)
					}
					fmt.Fprintf(e.out, "Deleted %s.\n", id)
					return nil
				},
			},
		},
	}
}

func carsListCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "search the fleet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "match name, brand or model"},
			&cli.StringFlag{Name: "category", Value: domain.FilterAll},
			&cli.StringFlag{Name: "brand", Value: domain.FilterAll},
			&cli.StringFlag{Name: "transmission", Value: domain.FilterAll},
			&cli.StringFlag{Name: "fuel", Value: domain.FilterAll},
			&cli.Float64Flag{Name: "min-price"},
			&cli.Float64Flag{Name: "max-price"},
			&cli.IntFlag{Name: "seats", Usage: "minimum seating capacity"},
			&cli.StringFlag{Name: "sort", Usage: "price-asc, price-desc, rating or newest"},
		},
		Action: func(c *cli.Context) error {
			sort := domain.SortOption(c.String("sort"))
			if !sort.Valid() {
				return cli.Exit(fmt.Sprintf("unknown sort %q", sort), 1)
			}

			filters := domain.CarFilters{
				Search:          c.String("search"),
				Category:        c.String("category"),
				Brand:           c.String("brand"),
				Transmission:    c.String("transmission"),
				FuelType:        c.String("fuel"),
				SeatingCapacity: c.Int("seats"),
			}
			if c.IsSet("min-price") {
				v := c.Float64("min-price")
				filters.MinPrice = &v
			}
			if c.IsSet("max-price") {
				v := c.Float64("max-price")
				filters.MaxPrice = &v
			}

			e.inventory.SetFilters(filters)
			e.inventory.SetSort(sort)
			if err := e.inventory.Search(c.Context); err != nil {
				return failed(e.inventory.ErrorMessage(), err)
			}
			return printCars(e.out, e.inventory.Cars())
		},
	}
}

// carFlags are shared by add and update; on update every flag is optional.
func carFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: required},
		&cli.StringFlag{Name: "brand", Required: required},
		&cli.StringFlag{Name: "model", Required: required},
		&cli.IntFlag{Name: "year", Required: required},
		&cli.StringFlag{Name: "category", Required: required, Usage: "sedan, suv, hatchback, luxury, sports or electric"},
		&cli.StringFlag{Name: "transmission", Required: required, Usage: "automatic or manual"},
		&cli.StringFlag{Name: "fuel", Required: required, Usage: "petrol, diesel, electric or hybrid"},
		&cli.IntFlag{Name: "seats", Required: required},
		&cli.StringFlag{Name: "color", Required: required},
		&cli.Float64Flag{Name: "price", Required: required, Usage: "price per day"},
		&cli.Float64Flag{Name: "weekend-price"},
		&cli.Float64Flag{Name: "weekly-discount", Usage: "percent"},
		&cli.StringSliceFlag{Name: "image", Required: required},
		&cli.StringSliceFlag{Name: "feature", Required: required},
		&cli.StringFlag{Name: "description", Required: required},
		&cli.StringFlag{Name: "location", Required: required},
		&cli.StringFlag{Name: "mileage", Required: required},
		&cli.BoolFlag{Name: "available", Value: required},
	}
}

func carsAddCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add a car to the fleet (admin)",
		Flags: carFlags(true),
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireAdmin); err != nil {
				return err
			}
			form := forms.CarForm{
				Name:            c.String("name"),
				Brand:           c.String("brand"),
				Model:           c.String("model"),
				Year:            c.Int("year"),
				Category:        c.String("category"),
				Transmission:    c.String("transmission"),
				FuelType:        c.String("fuel"),
				SeatingCapacity: c.Int("seats"),
				Color:           c.String("color"),
				PricePerDay:     c.Float64("price"),
				Images:          c.StringSlice("image"),
				Features:        c.StringSlice("feature"),
				Description:     c.String("description"),
				Location:        c.String("location"),
				Mileage:         c.String("mileage"),
				IsAvailable:     c.Bool("available"),
			}
			if c.IsSet("weekend-price") {
				v := c.Float64("weekend-price")
				form.WeekendPrice = &v
			}
			if c.IsSet("weekly-discount") {
				v := c.Float64("weekly-discount")
				form.WeeklyDiscount = &v
			}

			car, err := e.inventory.Create(c.Context, form)
			if err != nil {
				return failed(e.inventory.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "Added %s as %s.\n", car.Name, car.ID)
			return nil
		},
	}
}

func carsUpdateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "change some attributes of a car (admin)",
		ArgsUsage: "CAR_ID",
		Flags:     carFlags(false),
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireAdmin); err != nil {
				return err
			}
			id, err := requireArg(c, "CAR_ID")
			if err != nil {
				return err
			}

			patch := carPatchFromFlags(c)
			car, err := e.inventory.Update(c.Context, id, patch)
			if err != nil {
				return failed(e.inventory.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "Updated %s.\n", car.ID)
			return printCar(e.out, car)
		},
	}
}

func carPatchFromFlags(c *cli.Context) domain.CarPatch {
	var p domain.CarPatch
	str := func(name string) *string {
		if !c.IsSet(name) {
			return nil
		}
		v := strings.TrimSpace(c.String(name))
		return &v
	}
	num := func(name string) *int {
		if !c.IsSet(name) {
			return nil
		}
		v := c.Int(name)
		return &v
	}
	dec := func(name string) *float64 {
		if !c.IsSet(name) {
			return nil
		}
		v := c.Float64(name)
		return &v
	}

	p.Name = str("name")
	p.Brand = str("brand")
	p.Model = str("model")
	p.Year = num("year")
	if v := str("category"); v != nil {
		cat := domain.CarCategory(*v)
		p.Category = &cat
	}
	if v := str("transmission"); v != nil {
		tr := domain.Transmission(*v)
		p.Transmission = &tr
	}
	if v := str("fuel"); v != nil {
		fuel := domain.FuelType(*v)
		p.FuelType = &fuel
	}
	p.SeatingCapacity = num("seats")
	p.Color = str("color")
	p.PricePerDay = dec("price")
	p.WeekendPrice = dec("weekend-price")
	p.WeeklyDiscount = dec("weekly-discount")
	if c.IsSet("image") {
		p.Images = c.StringSlice("image")
	}
	if c.IsSet("feature") {
		p.Features = c.StringSlice("feature")
	}
	p.Description = str("description")
	p.Location = str("location")
	p.Mileage = str("mileage")
	if c.IsSet("available") {
		v := c.Bool("available")
		p.IsAvailable = &v
	}
	return p
}

func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", cli.Exit(fmt.Sprintf("missing %s argument", name), 1)
	}
	return v, nil
}

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/forms"
	"github.com/driveway/rental-system/internal/viewmodel"
)

func bookingsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "request, review and manage rentals",
		Subcommands: []*cli.Command{
			bookingsListCommand(e),
			bookingsCreateCommand(e),
			{
				Name:      "cancel",
				Usage:     "cancel one of your pending bookings",
				ArgsUsage: "BOOKING_ID",
				Action: func(c *cli.Context) error {
					if err := e.gate(viewmodel.RequireUser); err != nil {
						return err
					}
					id, err := requireArg(c, "BOOKING_ID")
					if err != nil {
						return err
					}
					if err := e.bookings.Cancel(c.Context, id); err != nil {
						return failed(e.bookings.ErrorMessage(), err)
					}
					fmt.Fprintf(e.out, "Cancelled %s.\n", id)
					return nil
				},
			},
			transitionCommand(e, "approve", "approve a pending booking (admin)", "Approved", func(c *cli.Context, id string) error {
				return e.bookings.Approve(c.Context, id)
			}),
			{
				Name:      "reject",
				Usage:     "reject a pending booking (admin)",
				ArgsUsage: "BOOKING_ID",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "reason"}},
				Action: func(c *cli.Context) error {
					if err := e.gate(viewmodel.RequireAdmin); err != nil {
						return err
					}
					id, err := requireArg(c, "BOOKING_ID")
					if err != nil {
						return err
					}
					if err := e.bookings.Reject(c.Context, id, forms.RejectForm{Reason: c.String("reason")}); err != nil {
						return failed(e.bookings.ErrorMessage(), err)
					}
					fmt.Fprintf(e.out, "Rejected %s.\n", id)
					return nil
				},
			},
			transitionCommand(e, "complete", "mark an approved booking completed (admin)", "Completed", func(c *cli.Context, id string) error {
				return e.bookings.Complete(c.Context, id)
			}),
		},
	}
}

func bookingsListCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "your bookings, or every booking for administrators",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Value: domain.FilterAll},
			&cli.StringFlag{Name: "from", Usage: "created on or after (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "to", Usage: "created on or before (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireAuth); err != nil {
				return err
			}
			from, err := domain.ParseDateBound(c.String("from"), false)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			to, err := domain.ParseDateBound(c.String("to"), true)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			e.bookings.SetFilters(domain.BookingFilters{Status: c.String("status"), DateFrom: from, DateTo: to})
			if err := e.bookings.Refresh(c.Context); err != nil {
				return failed(e.bookings.ErrorMessage(), err)
			}
			return printBookings(e.out, e.bookings.Bookings(), e.session.IsAdmin())
		},
	}
}

func bookingsCreateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "request a rental",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "car", Required: true},
			&cli.StringFlag{Name: "pickup-location", Required: true},
			&cli.StringFlag{Name: "dropoff-location", Required: true},
			&cli.StringFlag{Name: "pickup", Required: true, Usage: "YYYY-MM-DD or YYYY-MM-DDTHH:MM"},
			&cli.StringFlag{Name: "return", Required: true, Usage: "YYYY-MM-DD or YYYY-MM-DDTHH:MM"},
			&cli.StringFlag{Name: "requests", Usage: "special requests"},
			&cli.BoolFlag{Name: "accept-terms", Usage: "accept the rental terms"},
		},
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireUser); err != nil {
				return err
			}
			b, err := e.bookings.Create(c.Context, forms.BookingForm{
				CarID:           c.String("car"),
				PickupLocation:  c.String("pickup-location"),
				DropoffLocation: c.String("dropoff-location"),
				PickupDateTime:  c.String("pickup"),
				ReturnDateTime:  c.String("return"),
				SpecialRequests: c.String("requests"),
				AcceptTerms:     c.Bool("accept-terms"),
			})
			if err != nil {
				return failed(e.bookings.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "Requested %s: %s for %d day(s), %s, awaiting approval.\n",
				b.ID, b.CarDetails.Name, b.NumberOfDays, money(b.TotalCost))
			return nil
		},
	}
}

func transitionCommand(e *env, name, usage, done string, run func(c *cli.Context, id string) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "BOOKING_ID",
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireAdmin); err != nil {
				return err
			}
			id, err := requireArg(c, "BOOKING_ID")
			if err != nil {
				return err
			}
			if err := run(c, id); err != nil {
				return failed(e.bookings.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "%s %s.\n", done, id)
			return nil
		},
	}
}

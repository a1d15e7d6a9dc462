package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/driveway/rental-system/internal/viewmodel"
)

func dashboardCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "fleet and booking figures (admin)",
		Action: func(c *cli.Context) error {
			if err := e.gate(viewmodel.RequireAdmin); err != nil {
				return err
			}
			stats, err := e.svc.Dashboard.Stats(c.Context)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			w := table(e.out)
			fmt.Fprintf(w, "Cars\t%d\n", stats.TotalCars)
			fmt.Fprintf(w, "Bookings\t%d\n", stats.TotalBookings)
			fmt.Fprintf(w, "Pending approvals\t%d\n", stats.PendingApprovals)
			fmt.Fprintf(w, "Revenue\t%s\n", money(stats.TotalRevenue))
			fmt.Fprintf(w, "Booked this month\t%d\n", stats.ThisMonthBookings)
			if err := w.Flush(); err != nil {
				return err
			}

			if len(stats.PopularCars) == 0 {
				return nil
			}
			fmt.Fprintln(e.out, "\nMost booked:")
			w = table(e.out)
			for _, pc := range stats.PopularCars {
				fmt.Fprintf(w, "  %s\t%s\t%d\n", pc.Car.ID, pc.Car.Name, pc.BookingCount)
			}
			return w.Flush()
		},
	}
}

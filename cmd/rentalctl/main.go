// Command rentalctl drives the rental view-models from a terminal. The
// signed-in user is kept in the configured store, so pick a shared backend
// (redis, mongo or postgres) for sessions to survive between invocations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/driveway/rental-system/internal/app"
	"github.com/driveway/rental-system/internal/pkg/config"
	"github.com/driveway/rental-system/internal/viewmodel"
	"github.com/driveway/rental-system/pkg/logger"
)

func main() {
	cliApp := newCLI(os.Stdout, openFromEnv)
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openFromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	lvl := cfg.LogLevel
	if lvl == "info" {
		lvl = "warn"
	}
	log := logger.Init(logger.Options{Level: lvl, Pretty: true, Output: os.Stderr, Component: "rentalctl"})
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
	}
	if cfg.Store.Backend == config.BackendMemory {
		log.Warn().Msg("memory store: nothing is kept after this command exits")
	}
	return app.New(ctx, cfg, log, app.Options{PersistSession: true})
}

// env is shared by every command of one invocation.
type env struct {
	out       io.Writer
	svc       *app.App
	session   *viewmodel.SessionViewModel
	inventory *viewmodel.InventoryViewModel
	bookings  *viewmodel.BookingViewModel
}

func newCLI(out io.Writer, open func(ctx context.Context) (*app.App, error)) *cli.App {
	e := &env{out: out}

	return &cli.App{
		Name:      "rentalctl",
		Usage:     "browse cars, book rentals and manage the fleet",
		Writer:    out,
		ErrWriter: out,
		// main reports the error and picks the exit code.
		ExitErrHandler: func(*cli.Context, error) {},
		Before: func(c *cli.Context) error {
			svc, err := open(c.Context)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			e.svc = svc
			e.session = viewmodel.NewSessionViewModel(svc.Identity)
			e.inventory = viewmodel.NewInventoryViewModel(svc.Inventory)
			e.bookings = viewmodel.NewBookingViewModel(svc.Bookings, e.session)
			if err := e.session.Load(c.Context); err != nil {
				return cli.Exit(e.session.ErrorMessage(), 1)
			}
			return nil
		},
		After: func(*cli.Context) error {
			if e.svc != nil {
				e.svc.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			registerCommand(e),
			loginCommand(e),
			logoutCommand(e),
			whoamiCommand(e),
			carsCommand(e),
			bookingsCommand(e),
			dashboardCommand(e),
		},
	}
}

// gate refuses the command when the current session does not meet req.
func (e *env) gate(req viewmodel.Requirement) error {
	switch e.session.Gate(req) {
	case "":
		return nil
	case viewmodel.RouteLogin:
		return cli.Exit("please log in first", 1)
	case viewmodel.RouteHome:
		return cli.Exit("administrator access required", 1)
	default:
		return cli.Exit("this command is for customers, administrators manage bookings with approve/reject/complete", 1)
	}
}

// failed turns a view-model error into a non-zero exit carrying its message.
func failed(message string, err error) error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return cli.Exit(message, 1)
}

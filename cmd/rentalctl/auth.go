package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/driveway/rental-system/internal/forms"
)

func registerCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create a customer account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "confirm", Usage: "repeat the password", Required: true},
			&cli.StringFlag{Name: "phone"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.session.Register(c.Context, forms.RegisterForm{
				Name:            c.String("name"),
				Email:           c.String("email"),
				Password:        c.String("password"),
				ConfirmPassword: c.String("confirm"),
				Phone:           c.String("phone"),
			})
			if err != nil {
				return failed(e.session.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "Welcome, %s! You are signed in as %s.\n", s.Name, s.Email)
			return nil
		},
	}
}

func loginCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			s, err := e.session.Login(c.Context, forms.LoginForm{
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if err != nil {
				return failed(e.session.ErrorMessage(), err)
			}
			fmt.Fprintf(e.out, "Signed in as %s (%s).\n", s.Name, s.Role)
			return nil
		},
	}
}

func logoutCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out",
		Action: func(c *cli.Context) error {
			if err := e.session.Logout(c.Context); err != nil {
				return failed(e.session.ErrorMessage(), err)
			}
			fmt.Fprintln(e.out, "Signed out.")
			return nil
		},
	}
}

func whoamiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: func(c *cli.Context) error {
			s := e.session.Session()
			if s == nil {
				fmt.Fprintln(e.out, "Not signed in.")
				return nil
			}
			w := table(e.out)
			fmt.Fprintf(w, "ID\t%s\n", s.ID)
			fmt.Fprintf(w, "Name\t%s\n", s.Name)
			fmt.Fprintf(w, "Email\t%s\n", s.Email)
			if s.Phone != "" {
				fmt.Fprintf(w, "Phone\t%s\n", s.Phone)
			}
			fmt.Fprintf(w, "Role\t%s\n", s.Role)
			return w.Flush()
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-session/client"
	"github.com/jrsteele09/go-auth-session/internal/app"
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/urfave/cli/v2"
)

func loginCommand(application **app.App) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "store a token, or sign in with a username and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Usage: "bearer token to log in with", EnvVars: []string{"SESSION_TOKEN"}},
			&cli.StringFlag{Name: "tenant", Usage: "tenant / faculty, overrides the token's tenant claim"},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"SESSION_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			a := *application
			token := c.String("token")
			tenant := c.String("tenant")

			if token == "" {
				if c.String("username") == "" {
					return cli.Exit("either --token or --username is required", 2)
				}
				var err error
				token, err = a.Client.SignIn(c.Context, client.Credentials{
					Username: c.String("username"),
					Password: c.String("password"),
					Tenant:   tenant,
				})
				if err != nil {
					return err
				}
			}

			if err := a.Session.Login(token, tenant); err != nil {
				return err
			}
			return printSession(c.App.Writer, a)
		},
	}
}

func logoutCommand(application **app.App) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *cli.Context) error {
			if err := (*application).Session.Logout(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(c.App.Writer, "logged out")
			return err
		},
	}
}

func whoamiCommand(application **app.App) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session",
		Action: func(c *cli.Context) error {
			return printSession(c.App.Writer, *application)
		},
	}
}

func requestCommand(application **app.App) *cli.Command {
	return &cli.Command{
		Name:      "request",
		Usage:     "send an authenticated request and print the JSON response",
		ArgsUsage: "METHOD PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON request body"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit("usage: request METHOD PATH", 2)
			}
			method := strings.ToUpper(c.Args().Get(0))
			path := c.Args().Get(1)

			var body any
			if data := c.String("data"); data != "" {
				raw := json.RawMessage(data)
				if !json.Valid(raw) {
					return cli.Exit("--data is not valid JSON", 2)
				}
				body = raw
			}

			var out json.RawMessage
			if err := (*application).Client.Do(c.Context, method, path, body, &out); err != nil {
				var apiErr *client.APIError
				if apperrors.As(err, &apiErr) {
					return cli.Exit(apiErr.Error(), 1)
				}
				return err
			}
			if len(out) == 0 {
				return nil
			}
			_, err := fmt.Fprintln(c.App.Writer, string(out))
			return err
		},
	}
}

func tokenCommand(application **app.App) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "print the bearer token, for use in scripts",
		Action: func(c *cli.Context) error {
			tok, err := (*application).Session.TokenSource().Token()
			if apperrors.Is(err, apperrors.ErrNotAuthenticated) {
				return cli.Exit("not logged in", 1)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, tok.AccessToken)
			return err
		},
	}
}

func printSession(w io.Writer, a *app.App) error {
	s := a.Session.Snapshot()
	if !s.IsAuthenticated() {
		_, err := fmt.Fprintln(w, "not logged in")
		return err
	}

	fmt.Fprintf(w, "token:   %s\n", redact(s.Token))
	fmt.Fprintf(w, "tenant:  %s\n", orNone(s.TenantID))
	fmt.Fprintf(w, "role:    %s\n", orNone(s.Role))
	fmt.Fprintf(w, "user:    %s\n", orNone(s.UserID))

	c := a.Session.Claims()
	if c == nil {
		_, err := fmt.Fprintln(w, "claims:  unreadable")
		return err
	}
	if iss := c.Issuer(); iss != "" {
		fmt.Fprintf(w, "issuer:  %s\n", iss)
	}
	if exp, ok := c.ExpiresAt(); ok {
		fmt.Fprintf(w, "expires: %s\n", exp.Format(time.RFC1123))
	}
	return nil
}

func redact(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:6] + "..." + token[len(token)-6:]
}

func orNone(v string) string {
	if v == "" {
		return "<none>"
	}
	return v
}

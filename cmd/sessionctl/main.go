package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-auth-session/internal/app"
	"github.com/jrsteele09/go-auth-session/internal/config"
	apperrors "github.com/jrsteele09/go-auth-session/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = loadDotEnv(".env")

	if err := newCLI(config.New()).Run(os.Args); err != nil {
		event := log.Err(err)
		if apperrors.Is(err, apperrors.ErrStorage) {
			event = event.Str("hint", "check SESSION_STORE and SESSION_PATH")
		}
		event.Msg("sessionctl failed")
		os.Exit(1)
	}
}

func newCLI(cfg config.Config) *cli.App {
	var application *app.App

	return &cli.App{
		Name:  "sessionctl",
		Usage: "log in to the API gateway and send authenticated requests",
		Before: func(c *cli.Context) error {
			configureLogging(cfg.GetEnv(), cfg.GetLogLevel())
			if c.Args().Len() == 0 {
				return nil
			}
			var err error
			application, err = app.New(cfg, log.Logger)
			return err
		},
		After: func(c *cli.Context) error {
			if application == nil {
				return nil
			}
			return application.Close()
		},
		Action: func(c *cli.Context) error {
			displayAppname(cfg.GetAppName())
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			loginCommand(&application),
			logoutCommand(&application),
			whoamiCommand(&application),
			requestCommand(&application),
			tokenCommand(&application),
		},
	}
}

// loadDotEnv loads path when it exists. A malformed file is logged and
// otherwise ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring malformed .env")
		return err
	}
	return nil
}

// configureLogging writes human readable logs in DEV and JSON elsewhere
func configureLogging(env, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if strings.EqualFold(env, "DEV") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

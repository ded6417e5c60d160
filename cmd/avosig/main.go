package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/DeprecatedLuar/avosig/internal/commands"
	"github.com/DeprecatedLuar/avosig/internal/config"
	"github.com/DeprecatedLuar/avosig/internal/logging"
	"github.com/DeprecatedLuar/avosig/internal/ui"
)

// Set via ldflags
var Version = "dev"

// Every failure, including a bad developer id, exits with this status.
const exitFailure = 1

// Swapped out in tests
var (
	newPrompter func() ui.Prompter = func() ui.Prompter { return ui.NewTerminal() }
	stdout      io.Writer          = os.Stdout
	stderr      io.Writer          = os.Stderr
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "avosig",
		Usage:   "Generate and test an Avocado API developer signature",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML file overriding endpoints and headers",
				EnvVars: []string{"AVOSIG_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "login-url",
				Usage:   "Override the login endpoint",
				EnvVars: []string{"AVOSIG_LOGIN_URL"},
			},
			&cli.StringFlag{
				Name:    "couple-url",
				Usage:   "Override the couple (verification) endpoint",
				EnvVars: []string{"AVOSIG_COUPLE_URL"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Diagnostic log level: trace, debug, info, warn, error, off",
				Value: logging.DefaultLevel,
			},
			&cli.BoolFlag{
				Name:  "skip-verify",
				Usage: "Print the derived signature without testing it",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if u := c.String("login-url"); u != "" {
		cfg.LoginURL = u
	}
	if u := c.String("couple-url"); u != "" {
		cfg.CoupleURL = u
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &commands.Runner{
		Config:     cfg,
		Prompter:   newPrompter(),
		Log:        logging.New(c.String("log-level"), stderr),
		Out:        stdout,
		Status:     stderr,
		SkipVerify: c.Bool("skip-verify"),
	}

	state, err := runner.Run(ctx)
	if err != nil {
		var inputErr *commands.InvalidInputError
		if errors.As(err, &inputErr) {
			return cli.Exit(inputErr.Error(), exitFailure)
		}
		return err
	}
	if state != commands.StateSuccess {
		return cli.Exit("", exitFailure)
	}
	return nil
}

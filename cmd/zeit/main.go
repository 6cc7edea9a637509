package main

import (
	"fmt"
	"os"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/clock"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/config"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/db"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --verbose is read before cobra so the logger exists during wiring.
	verbose := false
	fs := pflag.NewFlagSet("zeit", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	_ = fs.Parse(os.Args[1:])

	logger := newLogger(verbose)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	adjustmentRepo := repository.NewSQLiteAdjustmentRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	clk := clock.System{}
	rev := service.NewRevision()

	reports, err := service.NewReportService(sessionRepo, adjustmentRepo, logRepo, clk, loc, rev)
	if err != nil {
		return err
	}

	app := &cli.App{
		Tracker:  service.NewTrackerService(userRepo, sessionRepo, uow, clk, loc, rev, cfg.AllowedUsers, logger),
		Reports:  reports,
		Users:    service.NewUserService(userRepo, rev, logger),
		Clock:    clk,
		Loc:      loc,
		LogLimit: cfg.LogLimit,
	}

	// Detect interactive terminal for the huh form and the track view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	return rootCmd.Execute()
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

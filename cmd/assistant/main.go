package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/config"
	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/logging"
	"github.com/smileynet/assistant/internal/repl"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for assistant.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Chat    ChatCmd          `cmd:"" default:"withargs" help:"Start an interactive contact book session (default)."`
}

// ChatCmd runs the interactive session.
type ChatCmd struct {
	Config   string `help:"Project config file." default:".assistant/config.yaml" type:"path"`
	NoTUI    bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
	LogLevel string `help:"Override log level (debug, info, warn, error)."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig(projectPath string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/assistant/config.yaml"),
		projectPath,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the chat command.
func (c *ChatCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	// Apply CLI flag overrides.
	if c.NoTUI {
		cfg.REPL.Plain = true
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	logger, closeLog, err := logging.Open(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	defer func() { _ = closeLog() }()

	// Interrupt keeps its default meaning in plain mode; the TUI reads ctrl+c as a key.
	return c.run(context.Background(), cfg, logger, os.Stdin, os.Stdout)
}

// run builds the book, registry, and display, enabling testable wiring.
func (c *ChatCmd) run(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	leapDay, err := contact.ParseLeapDayPolicy(cfg.Birthdays.LeapDay)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	book := contact.NewAddressBook(
		contact.WithWindow(cfg.Birthdays.WindowDays),
		contact.WithLeapDayPolicy(leapDay),
	)

	reg := command.NewRegistry(command.WithLogger(logger))
	command.RegisterBuiltins(reg)

	logger.Info("session started", "window_days", cfg.Birthdays.WindowDays, "leap_day", leapDay)

	display := repl.NewDisplay(repl.Options{
		In:         in,
		Out:        out,
		ForcePlain: cfg.REPL.Plain,
		Prompt:     cfg.REPL.Prompt,
		Greeting:   cfg.REPL.Greeting,
		Book:       book,
		Dispatcher: reg,
		Logger:     logger,
	})

	if err := display.Run(ctx); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	logger.Info("session ended", "contacts", book.Len())
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("An interactive contact book with birthday reminders."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/bonk-grid/internal/config"
	"github.com/iburimskiy/bonk-grid/internal/game"
	"github.com/iburimskiy/bonk-grid/internal/term"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	useTerm := flag.Bool("term", false, "Run in the terminal instead of a window")
	logPath := flag.String("log", "", "Write logs to this file (default stderr, discarded with -term)")
	debug := flag.Bool("debug", false, "Log bonks and resizes")
	flag.Parse()

	logger, closeLog, err := newLogger(*logPath, *useTerm, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		report(logger, "failed to load config", err, !*useTerm)
		return 1
	}

	if *useTerm {
		err = runTerminal(cfg, logger)
	} else {
		err = game.Run(cfg, logger)
	}
	if err != nil {
		report(logger, "host failed", err, !*useTerm)
		return 1
	}
	return 0
}

func runTerminal(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	h, err := term.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer h.Close()
	return h.Run(ctx)
}

func newLogger(path string, quiet, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { _ = f.Close() }
	case quiet:
		// the terminal host owns stderr
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// report logs a fatal err. Windowed runs also get a native dialog since
// there may be no console to read.
func report(logger *slog.Logger, msg string, err error, dialog bool) {
	logger.Error(msg, "error", err)
	if !dialog {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		return
	}
	if derr := zenity.Error(fmt.Sprintf("%s: %v", msg, err),
		zenity.Title("bonk"),
		zenity.ErrorIcon,
	); derr != nil && !errors.Is(derr, zenity.ErrCanceled) {
		logger.Warn("error dialog failed", "error", derr)
	}
}

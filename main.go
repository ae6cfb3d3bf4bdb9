package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chopsticks/config"
	"chopsticks/engine"
	"chopsticks/game"
	"chopsticks/report"
)

const usage = "Usage : chopsticks {abcd|a b c d}"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run evaluates every position reachable from the opening and prints either the whole table
// (no arguments) or the neighborhood of the queried position. It returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()

	var query *game.Position
	switch len(args) {
	case 0:
	case 1, 4:
		p, err := game.ParsePosition(args)
		if err != nil {
			log.Error().Err(err).Msg("bad position")
			fmt.Fprintln(stdout, usage)
			return 1
		}
		query = &p
	default:
		fmt.Fprintln(stdout, usage)
		return 1
	}

	cfg := &config.Config{}
	if err := cfg.Load(); err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Debug().Msgf("loaded config: %v", cfg.AllSettings())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := engine.New(engine.WithPasses(cfg.Passes()))
	if _, err := e.Run(ctx); err != nil {
		log.Error().Err(err).Msg("evaluation stopped")
		return 1
	}

	if dir := cfg.ExportDir(); dir != "" {
		if err := export(dir, e); err != nil {
			log.Error().Err(err).Msg("export failed")
			return 1
		}
	}

	if query == nil {
		if err := report.WriteTable(stdout, e.Table()); err != nil {
			log.Error().Err(err).Msg("failed to write table")
			return 1
		}
		return 0
	}

	view, err := e.Lookup(*query)
	if errors.Is(err, engine.ErrNotSimulated) {
		log.Debug().Err(err).Send()
		return 1
	}
	if err != nil {
		log.Error().Err(err).Msg("lookup failed")
		return 1
	}
	if err := report.WritePosition(stdout, view); err != nil {
		log.Error().Err(err).Msg("failed to write position")
		return 1
	}
	return 0
}

func export(dir string, e *engine.Engine) error {
	w, err := report.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := w.WriteRecords(e.Table()); err != nil {
		return err
	}
	if err := w.WriteEdges(e.Table()); err != nil {
		return err
	}
	log.Info().Str("dir", w.Dir()).Msg("exported table")
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/polyfit/internal/metrics"
	"github.com/drakos74/polyfit/internal/model"
	"github.com/drakos74/polyfit/internal/report"
	"github.com/drakos74/polyfit/internal/sweep"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	opts, err := parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}
	if opts.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	err = run(opts, os.Stdout)
	if err != nil {
		if model.IsConfigError(err) {
			log.Error().Err(err).Msg("invalid configuration")
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("sweep failed")
	}
}

// run executes the sweep and the optional residual study, printing the results to w.
func run(opts options, w io.Writer) error {
	s, err := sweep.New(opts.config)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(w).
		WithDiagnostics(opts.diagnostics).
		WithGraph(opts.graph)
	s.WithListener(printer)

	if opts.plot != "" {
		s.WithListener(report.NewPlotter(opts.plot).
			WithFormat(opts.format).
			WithGrid(s.Config().Grid))
	}

	var m *metrics.Metrics
	if opts.metrics != "" {
		m = metrics.New()
		s.WithListener(m)
	}

	if err := printer.Header(s.ID(), s.Config()); err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}

	studies, err := s.Studies()
	if err != nil {
		return fmt.Errorf("could not run studies: %w", err)
	}
	for _, st := range studies {
		if err := printer.Study(st); err != nil {
			return err
		}
	}

	if m != nil {
		return m.Write(opts.metrics)
	}
	return nil
}

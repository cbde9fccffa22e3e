package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/drakos74/polyfit/infra/config"
	"github.com/drakos74/polyfit/internal/model"
	"github.com/drakos74/polyfit/internal/report"
	"github.com/drakos74/polyfit/internal/sweep"
)

type options struct {
	config      sweep.Config
	plot        string
	format      string
	metrics     string
	debug       bool
	diagnostics bool
	graph       int
}

// parse reads the command line. Flags that are set explicitly override the loaded config.
func parse(args []string) (options, error) {
	var opts options

	flags := flag.NewFlagSet("polyfit", flag.ContinueOnError)
	key := flags.String("config", sweep.ConfigKey, "config key under "+config.Path+" or path to a json config file")
	seed := flags.Uint64("seed", 0, "non-zero seed of the random source, a seed is derived from the clock when omitted")
	mu := flags.Float64("mu", 0, "mean of the noise")
	sigma := flags.Float64("sigma", 0, "standard deviation of the noise")
	functions := flags.String("functions", "A,B", "comma separated reference functions")
	degrees := flags.String("degrees", "1,3,10", "comma separated polynomial degrees")
	xmin := flags.Float64("xmin", 0, "lower bound of x, replaces the configured stages")
	xmax := flags.Float64("xmax", 1, "upper bound of x, replaces the configured stages")
	n := flags.Int("n", 10, "number of samples, replaces the configured stages")
	grid := flags.Int("grid", report.DefaultGrid, "number of points the fitted polynomials are plotted with")
	trials := flags.Int("trials", 0, "number of trials of the residual study, 0 disables it")
	method := flags.String("method", "auto", "least squares solver: auto, qr or svd")
	flags.StringVar(&opts.plot, "plot", "", "directory to save the plots into, empty disables plotting")
	flags.StringVar(&opts.format, "plot-format", report.PNG, "plot image format: png or svg")
	flags.StringVar(&opts.metrics, "metrics", "", "file to write the prometheus metrics into")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.diagnostics, "diagnostics", false, "print the diagnostics of ill-conditioned fits")
	flags.IntVar(&opts.graph, "graph", 0, "height of an ascii graph of every fit, 0 disables it")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments %v: %w", flags.Args(), model.ErrInvalidConfig)
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	cfg, err := load(*key, set["config"])
	if err != nil {
		return opts, err
	}

	if set["seed"] {
		if *seed == 0 {
			return opts, fmt.Errorf("seed must not be 0, omit the flag to derive one from the clock: %w", model.ErrInvalidConfig)
		}
		cfg.Seed = *seed
	}
	if set["mu"] {
		cfg.Noise.Mu = *mu
	}
	if set["sigma"] {
		cfg.Noise.Sigma = *sigma
	}
	if set["functions"] {
		cfg.Functions = split(*functions)
	}
	if set["degrees"] {
		cfg.Degrees, err = ints(*degrees)
		if err != nil {
			return opts, err
		}
	}
	if set["xmin"] || set["xmax"] || set["n"] {
		stage := sweep.Stage{
			Range: model.Range{Min: *xmin, Max: *xmax},
			N:     *n,
		}
		if len(cfg.Stages) > 0 {
			first := cfg.Stages[0]
			if !set["xmin"] {
				stage.Range.Min = first.Range.Min
			}
			if !set["xmax"] {
				stage.Range.Max = first.Range.Max
			}
			if !set["n"] {
				stage.N = first.N
			}
		}
		cfg.Stages = []sweep.Stage{stage}
	}
	if set["grid"] {
		cfg.Grid = *grid
	}
	if set["trials"] {
		cfg.Trials = *trials
	}
	if set["method"] {
		cfg.Method = *method
	}

	if opts.format != report.PNG && opts.format != report.SVG {
		return opts, fmt.Errorf("unsupported plot format '%s': %w", opts.format, model.ErrInvalidConfig)
	}

	opts.config = cfg
	return opts, cfg.Validate()
}

// load reads the config for the key.
// A missing default config falls back to the built-in sweep.
func load(key string, explicit bool) (sweep.Config, error) {
	cfg := sweep.DefaultConfig()
	_, err := config.Load(config.Path, key, &cfg)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("key", key).Msg("no config file, using the default sweep")
		return sweep.DefaultConfig(), nil
	}
	return cfg, fmt.Errorf("%s: %w", err.Error(), model.ErrInvalidConfig)
}

func split(s string) []string {
	ss := make([]string, 0)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			ss = append(ss, v)
		}
	}
	return ss
}

func ints(s string) ([]int, error) {
	ii := make([]int, 0)
	for _, v := range split(s) {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s': %w", v, model.ErrInvalidConfig)
		}
		ii = append(ii, i)
	}
	return ii, nil
}

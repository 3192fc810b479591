package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-envelope/dataset"
	"github.com/cwbudde/algo-envelope/detect"
	"github.com/cwbudde/algo-envelope/dsp/core"
	"gopkg.in/yaml.v3"
)

// Config holds the analysis parameters. The YAML keys mirror the flag names;
// flags given explicitly override the file.
type Config struct {
	SampleRate float64 `yaml:"sample_rate"`
	BandLow    float64 `yaml:"band_low"`
	BandHigh   float64 `yaml:"band_high"`
	Order      int     `yaml:"order"`
	Confidence float64 `yaml:"confidence"`
	TrainCount int     `yaml:"train_count"`
	Channel    string  `yaml:"channel"`
	Workers    int     `yaml:"workers"`
	Database   string  `yaml:"database"`
	Spectrum   bool    `yaml:"spectrum"`
	LogLevel   string  `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		SampleRate: core.DefaultSampleRate,
		BandLow:    detect.DefaultLowCutoff,
		BandHigh:   detect.DefaultHighCutoff,
		Order:      detect.DefaultOrder,
		Confidence: detect.DefaultConfidence,
		Channel:    dataset.Horizontal.String(),
		Workers:    detect.DefaultWorkers,
		LogLevel:   "info",
	}
}

// loadConfig reads a YAML file over the defaults, so partial files work.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// parseBand splits a "low:high" passband argument in Hz.
func parseBand(s string) (low, high float64, err error) {
	lowStr, highStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("band %q: expected low:high in Hz", s)
	}
	if low, err = strconv.ParseFloat(strings.TrimSpace(lowStr), 64); err != nil {
		return 0, 0, fmt.Errorf("band %q: %w", s, err)
	}
	if high, err = strconv.ParseFloat(strings.TrimSpace(highStr), 64); err != nil {
		return 0, 0, fmt.Errorf("band %q: %w", s, err)
	}

	return low, high, nil
}

// options carries the parsed command line: the flag values, which of them
// were given explicitly, and the paths that never live in the YAML file.
type options struct {
	configPath string
	trainDir   string
	testDir    string
	demo       bool

	channel    string
	trainCount int
	confidence float64
	bandLow    float64
	bandHigh   float64
	order      int
	sampleRate float64
	workers    int
	database   string
	spectrum   bool
	logLevel   string

	set map[string]bool
}

// parseFlags defines the envdetect flags on fs and parses args. The values
// are recorded together with which flags were set, so a config file can be
// overlaid in between parsing and merge.
func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	def := defaultConfig()
	opts := &options{set: make(map[string]bool)}

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.trainDir, "train", "", "directory of healthy training captures (CSV)")
	fs.StringVar(&opts.testDir, "test", "", "directory of captures to classify (CSV)")
	fs.BoolVar(&opts.demo, "demo", false, "classify a built-in synthetic corpus instead of CSV directories")
	fs.StringVar(&opts.channel, "channel", def.Channel, "capture channel: horizontal or vertical")
	fs.IntVar(&opts.trainCount, "n", def.TrainCount, "training captures to average (0 = whole directory)")
	fs.Float64Var(&opts.confidence, "confidence", def.Confidence, "confidence level in (0, 1)")
	band := fs.String("band", fmt.Sprintf("%g:%g", def.BandLow, def.BandHigh), "analysis passband as low:high in Hz")
	fs.IntVar(&opts.order, "order", def.Order, "Butterworth order per band edge")
	fs.Float64Var(&opts.sampleRate, "rate", def.SampleRate, "sample rate in Hz")
	fs.IntVar(&opts.workers, "workers", def.Workers, "parallel preprocessing workers")
	fs.StringVar(&opts.database, "db", "", "SQLite file for run history (optional)")
	fs.BoolVar(&opts.spectrum, "spectrum", def.Spectrum, "list the strongest envelope-spectrum lines per flagged capture")
	fs.StringVar(&opts.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.set["band"] {
		low, high, err := parseBand(*band)
		if err != nil {
			return nil, err
		}
		opts.bandLow, opts.bandHigh = low, high
	}

	if opts.demo {
		if opts.trainDir != "" || opts.testDir != "" {
			return nil, errors.New("-demo replaces -train and -test")
		}
	} else if opts.trainDir == "" || opts.testDir == "" {
		return nil, errors.New("both -train and -test are required (or -demo)")
	}

	return opts, nil
}

// merge overlays the explicitly set flags onto cfg.
func (o *options) merge(cfg *Config) {
	if o.set["rate"] {
		cfg.SampleRate = o.sampleRate
	}
	if o.set["band"] {
		cfg.BandLow, cfg.BandHigh = o.bandLow, o.bandHigh
	}
	if o.set["order"] {
		cfg.Order = o.order
	}
	if o.set["confidence"] {
		cfg.Confidence = o.confidence
	}
	if o.set["n"] {
		cfg.TrainCount = o.trainCount
	}
	if o.set["channel"] {
		cfg.Channel = o.channel
	}
	if o.set["workers"] {
		cfg.Workers = o.workers
	}
	if o.set["db"] {
		cfg.Database = o.database
	}
	if o.set["spectrum"] {
		cfg.Spectrum = o.spectrum
	}
	if o.set["log-level"] {
		cfg.LogLevel = o.logLevel
	}
}

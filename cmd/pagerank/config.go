package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hupe1980/pagerank"
	"github.com/hupe1980/pagerank/graph"
	"github.com/hupe1980/pagerank/power"
	"github.com/hupe1980/pagerank/resource"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a run.
// Values are populated from .pagerank.yaml, PAGERANK_* env vars, flags and
// positional arguments, in increasing priority.
type Config struct {
	Input         string  `mapstructure:"input"`
	Output        string  `mapstructure:"output"`
	TopOutput     string  `mapstructure:"top_output"`
	Beta          float64 `mapstructure:"beta"`
	Iterations    int     `mapstructure:"iterations"`
	Top           int     `mapstructure:"top"`
	Workers       int     `mapstructure:"workers"`
	Tolerance     float64 `mapstructure:"tolerance"`
	Sinks         string  `mapstructure:"sinks"`
	Dangling      string  `mapstructure:"dangling"`
	StrictMass    bool    `mapstructure:"strict_mass"`
	Validation    bool    `mapstructure:"validation"`
	CommentPrefix string  `mapstructure:"comment_prefix"`
	Region        string  `mapstructure:"region"`
	MemoryLimit   int64   `mapstructure:"memory_limit_bytes"`
	IOLimit       int64   `mapstructure:"io_limit_bytes_per_sec"`
	LogLevel      string  `mapstructure:"log_level"`
	LogFormat     string  `mapstructure:"log_format"`
	MetricsFile   string  `mapstructure:"metrics_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "web-Google.txt")
	v.SetDefault("output", "PageRank.txt")
	v.SetDefault("top_output", "Top10PageRank.txt")
	v.SetDefault("beta", pagerank.DefaultBeta)
	v.SetDefault("iterations", pagerank.DefaultIterations)
	v.SetDefault("top", pagerank.DefaultTopK)
	v.SetDefault("workers", 1)
	v.SetDefault("tolerance", 0.0)
	v.SetDefault("sinks", graph.SinksExcluded.String())
	v.SetDefault("dangling", power.DanglingDrop.String())
	v.SetDefault("strict_mass", false)
	v.SetDefault("validation", true)
	v.SetDefault("comment_prefix", "#")
	v.SetDefault("region", "")
	v.SetDefault("memory_limit_bytes", 0)
	v.SetDefault("io_limit_bytes_per_sec", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("metrics_file", "")
}

// Load applies built-in defaults for any values not set by config file,
// environment or flags, then overlays the positional arguments
// [input [pagerank-out [topk-out [beta]]]].
func Load(v *viper.Viper, args []string) (Config, error) {
	setDefaults(v)

	keys := []string{"input", "output", "top_output"}
	for i, arg := range args {
		if i < len(keys) {
			v.Set(keys[i], arg)
			continue
		}
		beta, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Config{}, fmt.Errorf("beta %q: %w", arg, err)
		}
		v.Set("beta", beta)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options translates the configuration into session options.
func (c Config) Options(logger *pagerank.Logger, mc pagerank.MetricsCollector, rc *resource.Controller) ([]pagerank.Option, error) {
	opts := []pagerank.Option{
		pagerank.WithBeta(c.Beta),
		pagerank.WithIterations(c.Iterations),
		pagerank.WithTopK(c.Top),
		pagerank.WithWorkers(c.Workers),
		pagerank.WithConvergence(c.Tolerance),
		pagerank.WithCommentPrefix(c.CommentPrefix),
		pagerank.WithLogger(logger),
		pagerank.WithMetricsCollector(mc),
		pagerank.WithResourceController(rc),
	}

	switch strings.ToLower(c.Sinks) {
	case graph.SinksExcluded.String():
	case graph.SinksIncluded.String():
		opts = append(opts, pagerank.WithSinkPolicy(graph.SinksIncluded))
	default:
		return nil, fmt.Errorf("sinks must be %q or %q, got %q", graph.SinksExcluded, graph.SinksIncluded, c.Sinks)
	}

	switch strings.ToLower(c.Dangling) {
	case power.DanglingDrop.String():
	case power.DanglingRedistribute.String():
		opts = append(opts, pagerank.WithDanglingPolicy(power.DanglingRedistribute))
	default:
		return nil, fmt.Errorf("dangling must be %q or %q, got %q", power.DanglingDrop, power.DanglingRedistribute, c.Dangling)
	}

	if c.StrictMass {
		opts = append(opts, pagerank.WithStrictMass())
	}

	return opts, nil
}

// Resources builds the resource controller for the run.
func (c Config) Resources() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   c.MemoryLimit,
		MaxWorkers:         int64(max(c.Workers, 1)),
		IOLimitBytesPerSec: c.IOLimit,
	})
}

// Logger builds the structured logger selected by log_level and log_format.
func (c Config) Logger() (*pagerank.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text":
		return pagerank.NewTextLogger(level), nil
	case "json":
		return pagerank.NewJSONLogger(level), nil
	}
	return nil, fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
}

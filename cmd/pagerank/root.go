package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagerank [input [pagerank-out [topk-out [beta]]]]",
		Short: "Compute PageRank over a directed edge list",
		Long: "pagerank reads an edge list (local path, s3:// or minio:// URL), runs damped power\n" +
			"iteration and writes the full rank table, a validation table from one extra\n" +
			"iteration, and the top-K table, which is also printed to stdout.",
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Load(v, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default .pagerank.yaml)")
	flags.StringP("input", "i", "", "edge list location")
	flags.StringP("output", "o", "", "full rank table location")
	flags.String("top-output", "", "top-K table location")
	flags.Float64P("beta", "b", 0, "damping factor")
	flags.IntP("iterations", "n", 0, "iteration budget")
	flags.IntP("top", "k", 0, "number of top nodes to report")
	flags.IntP("workers", "w", 0, "accumulation shards")
	flags.Float64("tolerance", 0, "stop once the max rank change falls below this value (0 disables)")
	flags.String("sinks", "", "destination-only nodes: exclude or include")
	flags.String("dangling", "", "dangling node mass: drop or redistribute")
	flags.Bool("strict-mass", false, "re-zero invalid indices after every step")
	flags.Bool("validation", true, "write <output>.validation after one extra iteration")
	flags.String("comment-prefix", "", "prefix of comment lines")
	flags.String("region", "", "AWS region for s3:// locations")
	flags.Int64("memory-limit-bytes", 0, "memory budget for shard accumulators (0 = unlimited)")
	flags.Int64("io-limit-bytes-per-sec", 0, "edge list read and report write throughput (0 = unlimited)")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "text or json")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile")

	for _, name := range []string{
		"input", "output", "top-output", "beta", "iterations", "top", "workers",
		"tolerance", "sinks", "dangling", "strict-mass", "validation", "comment-prefix",
		"region", "memory-limit-bytes", "io-limit-bytes-per-sec", "log-level",
		"log-format", "metrics-file",
	} {
		_ = v.BindPFlag(flagKey(name), flags.Lookup(name))
	}

	return cmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	} else {
		v.SetConfigName(".pagerank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// It's fine if no config file is found; we use defaults.
		_ = v.ReadInConfig()
	}

	v.SetEnvPrefix("PAGERANK")
	v.AutomaticEnv()

	return nil
}

// flagKey maps a dashed flag name to its config key.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

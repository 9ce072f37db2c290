package main

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

var (
	traceLevel string
	configPath string
)

// traceKeys are the trace keys of the plot packages.
var traceKeys = []string{
	"parcoords", "coords", "polyn", "spline", "selection", "axis",
	"action", "colorbar", "colors", "renderer",
}

var rootCmd = &cobra.Command{
	Use:   "pcpdemo",
	Short: "Replay interactions with a parallel coordinates plot",
	Long: `pcpdemo sets up a parallel coordinates plot from a scenario file,
replays pointer gestures against its event loop, and reports the
resulting axis order, selections and selected records.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseTraceLevel(traceLevel)
		if err != nil {
			return err
		}
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace-level", "error", "Trace level (debug, info, error)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Renderer configuration file (TOML)")
}

func parseTraceLevel(name string) (tracing.TraceLevel, error) {
	switch name {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", name)
}

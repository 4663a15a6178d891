package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LisaRowell/LunaMonESP-sub001/internal/config"
	"github.com/LisaRowell/LunaMonESP-sub001/internal/logging"
)

var (
	flagConfigPath string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lunamon",
	Short: "Marine instrumentation gateway",
	Long: `lunamon bridges NMEA 0183 and AIS instrument feeds into a
hierarchical data model and serves it to shore-side clients over an
embedded MQTT 3.1.1 broker.

Configuration is read from a YAML file (see --config); every setting has a
usable default, so "lunamon run" works against an empty or missing file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "lunamon.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func initLogging() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logging.To(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file at flagConfigPath, falling back to
// defaults with a warning if the file can't be read or parsed.
func loadConfig(log *slog.Logger) config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		log.Warn("using default configuration", "path", flagConfigPath, "error", err)
		return config.Default()
	}
	return cfg
}

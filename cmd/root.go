package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/stylekit/internal/config"
	"github.com/zjrosen/stylekit/internal/log"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so the
	// OSC 11 response cannot race the preview's input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	logFile    string
	cfg        config.Config
	logCleanup func()
)

// defaultConfigPath is where init writes and initConfig looks first.
const defaultConfigPath = ".stylekit/config.yaml"

var rootCmd = &cobra.Command{
	Use:   "stylekit",
	Short: "Compile, inspect and preview text style schemas",
	Long: `stylekit loads a JSON (or YAML) text-style schema, compiles every style
against the configured colors, fonts and platform capabilities, and renders
marked-up text with the result in the terminal.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.stylekit/config.yaml, then ~/.config/stylekit/config.yaml)")
	rootCmd.PersistentFlags().StringP("styles", "s", "",
		"style schema file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also STYLEKIT_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: $STYLEKIT_LOG or debug.log)")

	_ = viper.BindPFlag("styles", rootCmd.PersistentFlags().Lookup("styles"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("styles", defaults.Styles)
	for name, enabled := range defaults.Capabilities {
		viper.SetDefault("capabilities."+name, enabled)
	}
	viper.SetDefault("render.state", defaults.Render.State)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .stylekit/config.yaml (current directory)
		// 2. ~/.config/stylekit/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "stylekit"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults apply until `stylekit init` writes one.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

// setupLogging enables the file logger when debug mode is on (via flag or env var).
func setupLogging(_ *cobra.Command, _ []string) error {
	if os.Getenv("STYLEKIT_DEBUG") == "" && !debugFlag {
		return nil
	}
	path := logFile
	if path == "" {
		path = os.Getenv("STYLEKIT_LOG")
	}
	if path == "" {
		path = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(path, "stylekit")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "stylekit starting", "version", version, "config", viper.ConfigFileUsed())
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

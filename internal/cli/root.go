// internal/cli/root.go
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/page-harvest/harvest/internal/app"
	"github.com/page-harvest/harvest/internal/config"
)

var (
	appInstance *app.Application
	cfgInstance *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "harvest",
	Short:   "Extract structured articles from static and script-rendered sites",
	Long:    `Harvest pulls titles, body text and images out of single pages or paginated listings, fetching either raw HTML or a live browser-rendered DOM.`,
	Version: "0.1.0",
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(initLogging)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// The application is initialized lazily so -h/--help never touches
	// the network or the browser.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if appInstance != nil {
			return nil
		}
		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}
		cfgInstance = cfg
		appInstance, err = app.New(cfg)
		return err
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if appInstance == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfgInstance.HTTPTimeout)
		defer cancel()
		_ = appInstance.Close(ctx)
		appInstance = nil
	}
}

// initLogging configures the global zerolog logger from flags.
func initLogging() {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load configuration, using defaults")
		cfg = &config.Config{LogLevel: config.DefaultLogLevel}
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

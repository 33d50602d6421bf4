package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-intl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	localeFlag string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "intl",
	Short: "Plural categories and numeric dates per locale",
	Long: `intl resolves CLDR plural categories, decomposes numbers into plural
operands, formats numeric dates in the order a user prefers and translates
catalog messages.

Settings (locales, catalogs, rule and pattern files, user preferences) are
read from the file given with --config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&localeFlag, "locale", "l", "", "locale (defaults to settings, then the host locale)")

	rootCmd.AddCommand(pluralCmd, operandsCmd, categoriesCmd, dateCmd, translateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings returns the settings file contents, or empty settings when no
// file was given.
func loadSettings() (*intl.Settings, error) {
	if configPath == "" {
		return &intl.Settings{}, nil
	}
	return intl.LoadSettings(configPath)
}

func buildConfig(settings *intl.Settings) (*intl.Config, error) {
	return intl.NewConfig(
		intl.WithSettings(settings),
		intl.WithLogger(currentLogger()),
	)
}

// resolveLocale picks --locale, then the user and default locales from the
// settings, then the host locale.
func resolveLocale(settings *intl.Settings) string {
	switch {
	case localeFlag != "":
		return localeFlag
	case settings != nil && settings.User.Language != "":
		return settings.User.Language
	case settings != nil && settings.DefaultLocale != "":
		return settings.DefaultLocale
	}

	locale, err := intl.SystemLocale()
	if err != nil || locale == "" {
		currentLogger().Debug("host locale unavailable", zap.Error(err))
		return "en"
	}
	return locale
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

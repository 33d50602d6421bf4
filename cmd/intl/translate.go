package main

import (
	"fmt"

	"github.com/goliatone/go-intl"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [key] [args...]",
	Short: "Translate a catalog message",
	Long: `Looks up a message in the catalogs listed in the settings file, following
the configured fallback chain. A numeric first argument selects the plural
variant and fills {count}.

Example:
  intl translate --config intl.yaml --locale ru cart.items 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := intl.NewConfig(
		intl.WithSettings(settings),
		intl.WithLogger(currentLogger()),
		intl.WithTranslatorHooks(intl.LoggingHook(currentLogger())),
	)
	if err != nil {
		return err
	}

	translator, err := cfg.BuildTranslator()
	if err != nil {
		return err
	}

	rest := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		rest = append(rest, arg)
	}

	result, err := translator.Translate(resolveLocale(settings), args[0], rest...)
	if err != nil {
		return fmt.Errorf("translate %q: %w", args[0], err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}

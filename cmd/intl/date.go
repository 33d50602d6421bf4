package main

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goliatone/go-intl"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dateOrder string
	timeZone  string
	showParts bool
)

var dateCmd = &cobra.Command{
	Use:   "date [date]",
	Short: "Format a date numerically for a locale",
	Long: `Formats a date as day, month and year digits. The order is the
locale's own (language), the host locale's (system) or one of DMY, MDY, YMD.

The date accepts most common layouts ("2024-01-05", "Jan 5 2024",
"05.01.2024", unix seconds) and defaults to now.

Example:
  intl date --locale en --order ymd 2024-01-05
  intl date --locale bg --parts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDate,
}

func init() {
	dateCmd.Flags().StringVarP(&dateOrder, "order", "o", "", "date order: language, system, dmy, mdy or ymd")
	dateCmd.Flags().StringVar(&timeZone, "tz", "", "time zone: local, server or an IANA name")
	dateCmd.Flags().BoolVar(&showParts, "parts", false, "print the typed date parts instead of the string")
}

func runDate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(settings)
	if err != nil {
		return err
	}

	locale := intl.LocaleConfig{
		Language:   resolveLocale(settings),
		TimeZone:   settings.User.TimeZone,
		DateFormat: settings.User.DateFormat,
	}
	if timeZone != "" {
		locale.TimeZone = intl.TimeZoneOption(timeZone)
	}
	if dateOrder != "" {
		order, err := intl.ParseDateFormatOrder(dateOrder)
		if err != nil {
			return err
		}
		locale.DateFormat = order
	}

	formatter := cfg.DateFormatter()
	loc, err := formatter.Location(locale.TimeZone)
	if err != nil {
		return err
	}

	value := time.Now().In(loc)
	if len(args) == 1 {
		value, err = dateparse.ParseIn(args[0], loc)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", args[0], err)
		}
	}
	currentLogger().Debug("formatting date",
		zap.String("locale", locale.Language),
		zap.String("order", string(locale.DateFormat)),
		zap.Time("value", value),
	)

	out := cmd.OutOrStdout()
	if showParts {
		parts, err := formatter.FormatToParts(value, locale.Language, loc)
		if err != nil {
			return err
		}
		for _, part := range parts {
			fmt.Fprintf(out, "%s\t%q\n", part.Type, part.Value)
		}
		return nil
	}

	formatted, err := formatter.FormatDateNumeric(value, locale)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatted)
	return nil
}

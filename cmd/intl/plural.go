package main

import (
	"fmt"

	"github.com/goliatone/go-intl"
	"github.com/spf13/cobra"
)

var (
	pluralType  string
	minFraction int
	maxFraction int
)

var pluralCmd = &cobra.Command{
	Use:   "plural [value]",
	Short: "Print the plural category of a number",
	Long: `Selects the CLDR plural category of a number for the locale.

NaN and Infinity select "other".

Example:
  intl plural --locale ru 5
  intl plural --locale en --type ordinal 22`,
	Args: cobra.ExactArgs(1),
	RunE: runPlural,
}

var operandsCmd = &cobra.Command{
	Use:   "operands [value]",
	Short: "Print the CLDR plural operands of a decimal number",
	Args:  cobra.ExactArgs(1),
	RunE:  runOperands,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the plural categories a locale uses",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	for _, cmd := range []*cobra.Command{pluralCmd, categoriesCmd} {
		cmd.Flags().StringVarP(&pluralType, "type", "t", string(intl.PluralCardinal), "plural type: cardinal or ordinal")
	}
	pluralCmd.Flags().IntVar(&minFraction, "min-fraction", 0, "minimum fraction digits")
	pluralCmd.Flags().IntVar(&maxFraction, "max-fraction", 3, "maximum fraction digits")
}

func pluralRules(cmd *cobra.Command) (*intl.PluralRules, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	cfg, err := buildConfig(settings)
	if err != nil {
		return nil, err
	}

	return cfg.PluralRules(resolveLocale(settings),
		intl.WithPluralType(intl.PluralType(pluralType)),
		intl.WithFractionDigits(minFraction, maxFraction),
	)
}

func runPlural(cmd *cobra.Command, args []string) error {
	rules, err := pluralRules(cmd)
	if err != nil {
		return err
	}

	category, err := rules.Select(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), category)
	return nil
}

func runOperands(cmd *cobra.Command, args []string) error {
	ops, err := intl.GetOperands(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "n=%s\n", ops.Decimal().String())
	fmt.Fprintf(out, "i=%d\n", ops.IntegerDigits)
	fmt.Fprintf(out, "v=%d\n", ops.NumberOfFractionDigits)
	fmt.Fprintf(out, "w=%d\n", ops.NumberOfFractionDigitsWithoutTrailing)
	fmt.Fprintf(out, "f=%d\n", ops.FractionDigits)
	fmt.Fprintf(out, "t=%d\n", ops.FractionDigitsWithoutTrailing)
	fmt.Fprintf(out, "digits=%d\n", ops.IntegerDigitCount())
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	rules, err := pluralRules(cmd)
	if err != nil {
		return err
	}
	for _, category := range rules.Categories() {
		fmt.Fprintln(cmd.OutOrStdout(), category)
	}
	return nil
}

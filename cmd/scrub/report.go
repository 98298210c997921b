package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datadesk/scrub/internal/report"
	"github.com/datadesk/scrub/internal/storage"
	"github.com/datadesk/scrub/internal/taxonomy"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize classification output",
		Long: `Normalize model labels, tabulate counts and shares per category, and
left-merge labels back onto the full cleaned title set so unclassified
titles stay visible with an empty label.

Examples:
  scrub report --classified classified_titles.csv --cleaned cleaned_titles.csv
  scrub report -c classified.csv -n cleaned.csv -t type -o merged.csv`,
		RunE: runReport,
	}

	cmd.Flags().StringP("classified", "c", "", "classified titles CSV path (required)")
	cmd.Flags().StringP("cleaned", "n", "", "cleaned titles CSV path (required)")
	cmd.Flags().StringP("taxonomy", "t", "theme", "taxonomy the classified file was labeled with (theme, type)")
	cmd.Flags().StringP("output", "o", "", "optional merged CSV path")
	_ = cmd.MarkFlagRequired("classified")
	_ = cmd.MarkFlagRequired("cleaned")

	_ = viper.BindPFlag("report.classified", cmd.Flags().Lookup("classified"))
	_ = viper.BindPFlag("report.cleaned", cmd.Flags().Lookup("cleaned"))
	_ = viper.BindPFlag("report.taxonomy", cmd.Flags().Lookup("taxonomy"))
	_ = viper.BindPFlag("report.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runReport(_ *cobra.Command, _ []string) error {
	tax, err := taxonomy.ByName(viper.GetString("report.taxonomy"))
	if err != nil {
		return err
	}

	classifiedPath := viper.GetString("report.classified")
	f, err := os.Open(classifiedPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", classifiedPath, err)
	}
	classified, err := storage.ReadClassified(f, tax.Name)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", classifiedPath, err)
	}

	cleaned, err := readCleanedCSV(viper.GetString("report.cleaned"))
	if err != nil {
		return err
	}

	labeled := report.Clean(classified)
	slog.Info("loaded classification output",
		"classified", len(labeled),
		"cleaned", len(cleaned))

	report.RenderSummary(os.Stdout, tax.Name, report.Summarize(labeled))

	merged := report.Merge(cleaned, labeled)

	// The merged view exposes coverage gaps: titles in the cleaned set
	// that never made it through classification keep an empty label.
	report.RenderSummary(os.Stdout, tax.Name+" (merged)", report.Summarize(merged))

	output := viper.GetString("report.output")
	if output == "" {
		return nil
	}
	if err := writeClassifiedCSV(output, merged, tax.Name); err != nil {
		return err
	}
	slog.Info("wrote merged titles", "path", output, "rows", len(merged))

	return nil
}

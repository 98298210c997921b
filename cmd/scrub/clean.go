package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datadesk/scrub/internal/ingest"
	"github.com/datadesk/scrub/internal/normalize"
	"github.com/datadesk/scrub/internal/storage"
)

func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Ingest the raw archive and emit cleaned titles",
		Long: `Read the raw JSON archive, unwrap URLs, repair encoding damage, drop
noise titles (single tokens with digits and photo-ID codes), and
deduplicate by title. Writes the cleaned filename,title,url table that the
other commands consume.

Examples:
  scrub clean --input data/photos.json --output cleaned_titles.csv
  scrub clean -i photos.json -o cleaned.csv --noise-output noise.txt`,
		RunE: runClean,
	}

	cmd.Flags().StringP("input", "i", "", "raw JSON archive path (required)")
	cmd.Flags().StringP("output", "o", "cleaned_titles.csv", "cleaned titles CSV path")
	cmd.Flags().String("noise-output", "", "optional path to save dropped noise titles, one per line")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("clean.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("clean.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("clean.noise_output", cmd.Flags().Lookup("noise-output"))

	return cmd
}

func runClean(_ *cobra.Command, _ []string) error {
	input := viper.GetString("clean.input")
	output := viper.GetString("clean.output")
	noiseOutput := viper.GetString("clean.noise_output")

	rows, err := ingest.Load(input)
	if err != nil {
		return err
	}
	slog.Info("loaded raw archive", "path", input, "rows", len(rows))

	result := normalize.Normalize(rows)
	slog.Info("cleaned titles",
		"kept", len(result.Rows),
		"noise", len(result.Noise),
		"duplicates", result.Duplicates)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := storage.WriteRows(f, result.Rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("wrote cleaned titles", "path", output)

	if noiseOutput != "" {
		var buf []byte
		for _, title := range result.Noise {
			buf = append(buf, title...)
			buf = append(buf, '\n')
		}
		if err := os.WriteFile(noiseOutput, buf, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", noiseOutput, err)
		}
		slog.Info("wrote noise titles", "path", noiseOutput, "titles", len(result.Noise))
	}

	return nil
}

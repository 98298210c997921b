package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datadesk/scrub/internal/cost"
	"github.com/datadesk/scrub/internal/llm"
	"github.com/datadesk/scrub/internal/runner"
	"github.com/datadesk/scrub/internal/taxonomy"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify cleaned titles with an LLM",
		Long: `Classify every cleaned title against a category taxonomy, one API call
per title, in checkpointed chunks. A chunk whose checkpoint already exists
is loaded instead of re-classified, so re-running after an interruption or
a failure only pays for unfinished chunks.

Examples:
  scrub classify --input cleaned_titles.csv --taxonomy theme
  scrub classify -i cleaned.csv -t type --checkpoint-backend sqlite
  scrub classify -i cleaned.csv -t theme --reconcile   # classify stragglers`,
		RunE: runClassifyTitles,
	}

	cmd.Flags().StringP("input", "i", "", "cleaned titles CSV path (required)")
	cmd.Flags().StringP("output", "o", "classified_titles.csv", "combined classified CSV path")
	cmd.Flags().StringP("taxonomy", "t", "theme", "taxonomy to classify against (theme, type)")
	cmd.Flags().Int("chunk-size", runner.DefaultChunkSize, "titles per checkpoint")
	cmd.Flags().Bool("reconcile", false, "classify titles missing from the combined output")
	cmd.Flags().String("checkpoint-backend", "local", "checkpoint backend (local, sqlite)")
	cmd.Flags().String("checkpoint-dir", "checkpoints", "checkpoint directory for the local backend")
	cmd.Flags().String("checkpoint-db", "checkpoints.db", "checkpoint database for the sqlite backend")
	cmd.Flags().String("model", "", "model name (default: the provider's small model)")
	cmd.Flags().Float64("rate-per-million", 0.15, "cost accounting rate per million tokens")
	cmd.Flags().Int("rate-limit", 0, "max requests per minute (0 = unlimited)")
	cmd.Flags().Int("max-retries", 1, "attempts per title before giving up")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("classify.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("classify.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("classify.taxonomy", cmd.Flags().Lookup("taxonomy"))
	_ = viper.BindPFlag("classify.chunk_size", cmd.Flags().Lookup("chunk-size"))
	_ = viper.BindPFlag("classify.reconcile", cmd.Flags().Lookup("reconcile"))
	_ = viper.BindPFlag("classify.checkpoint.backend", cmd.Flags().Lookup("checkpoint-backend"))
	_ = viper.BindPFlag("classify.checkpoint.dir", cmd.Flags().Lookup("checkpoint-dir"))
	_ = viper.BindPFlag("classify.checkpoint.db", cmd.Flags().Lookup("checkpoint-db"))
	_ = viper.BindPFlag("classify.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("classify.rate_per_million", cmd.Flags().Lookup("rate-per-million"))
	_ = viper.BindPFlag("classify.rate_limit", cmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("classify.max_retries", cmd.Flags().Lookup("max-retries"))

	return cmd
}

func runClassifyTitles(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tax, err := taxonomy.ByName(viper.GetString("classify.taxonomy"))
	if err != nil {
		return err
	}

	rows, err := readCleanedCSV(viper.GetString("classify.input"))
	if err != nil {
		return err
	}
	slog.Info("starting classification", "taxonomy", tax.Name, "titles", len(rows))

	store, err := openStore(
		viper.GetString("classify.checkpoint.backend"),
		viper.GetString("classify.checkpoint.dir"),
		viper.GetString("classify.checkpoint.db"),
		tax.Name,
	)
	if err != nil {
		return err
	}

	ledger := cost.NewLedger(viper.GetFloat64("classify.rate_per_million"), slog.Default())

	apiKey := viper.GetString("openai.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	classifier, err := llm.NewClassifier(llm.Config{
		APIKey:     apiKey,
		Model:      viper.GetString("classify.model"),
		MaxRetries: viper.GetInt("classify.max_retries"),
		RateLimit:  viper.GetInt("classify.rate_limit"),
	}, tax, ledger, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := classifier.Close(); closeErr != nil {
			slog.Error("Failed to close classifier", "error", closeErr)
		}
	}()

	run := runner.New(classifier, store, runner.Config{
		ChunkSize: viper.GetInt("classify.chunk_size"),
		Progress:  os.Stderr,
		KeyPrefix: tax.Name + "_",
	}, slog.Default())

	started := time.Now()
	combined, err := run.Run(ctx, rows)
	if err != nil {
		return err
	}

	if viper.GetBool("classify.reconcile") {
		combined, err = run.Reconcile(ctx, rows, combined)
		if err != nil {
			return err
		}
	}

	slog.Info("classification complete",
		"rows", len(combined),
		"api_calls", ledger.Calls(),
		"cost", fmt.Sprintf("$%.4f", ledger.Total()),
		"elapsed", time.Since(started).Round(time.Second))

	output := viper.GetString("classify.output")
	if err := writeClassifiedCSV(output, combined, tax.Name); err != nil {
		return err
	}
	slog.Info("wrote classified titles", "path", output)

	return nil
}

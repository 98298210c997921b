package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datadesk/scrub/internal/cluster"
	"github.com/datadesk/scrub/internal/model"
)

func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group cleaned titles with k-means over TF-IDF vectors",
		Long: `Vectorize the cleaned titles (unigrams and bigrams, TF-IDF weighted)
and partition them with k-means. Prints each cluster's size and its
highest-weighted terms, plus a cross-tabulation against the keyword
taxonomy. Purely exploratory; nothing here feeds the classification
output.

Examples:
  scrub cluster --input cleaned_titles.csv --k 8
  scrub cluster -i cleaned.csv --k 10 --seed 42 --top-terms 12`,
		RunE: runCluster,
	}

	cmd.Flags().StringP("input", "i", "", "cleaned titles CSV path (required)")
	cmd.Flags().Int("k", 8, "number of clusters")
	cmd.Flags().Int("restarts", 10, "restarts with fresh centroids; best inertia wins")
	cmd.Flags().Int64("seed", 0, "random seed for reproducible runs")
	cmd.Flags().Int("top-terms", 10, "terms to print per cluster")
	cmd.Flags().Int("min-df", 2, "drop terms appearing in fewer documents")
	cmd.Flags().Float64("max-df", 0.5, "drop terms appearing in more than this share of documents")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("cluster.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("cluster.k", cmd.Flags().Lookup("k"))
	_ = viper.BindPFlag("cluster.restarts", cmd.Flags().Lookup("restarts"))
	_ = viper.BindPFlag("cluster.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("cluster.top_terms", cmd.Flags().Lookup("top-terms"))
	_ = viper.BindPFlag("cluster.min_df", cmd.Flags().Lookup("min-df"))
	_ = viper.BindPFlag("cluster.max_df", cmd.Flags().Lookup("max-df"))

	return cmd
}

func runCluster(_ *cobra.Command, _ []string) error {
	rows, err := readCleanedCSV(viper.GetString("cluster.input"))
	if err != nil {
		return err
	}
	titles := titlesOf(rows)

	matrix, err := cluster.Vectorize(titles, cluster.VectorizerConfig{
		MinDF:      viper.GetInt("cluster.min_df"),
		MaxDFRatio: viper.GetFloat64("cluster.max_df"),
	})
	if err != nil {
		return err
	}
	slog.Info("vectorized titles", "documents", len(titles), "terms", len(matrix.Terms))

	k := viper.GetInt("cluster.k")
	result, err := cluster.KMeans(matrix.TFIDF, cluster.KMeansConfig{
		K:        k,
		Restarts: viper.GetInt("cluster.restarts"),
		Seed:     viper.GetInt64("cluster.seed"),
	})
	if err != nil {
		return err
	}
	slog.Info("clustered titles", "k", k, "inertia", fmt.Sprintf("%.3f", result.Inertia))

	sizes := make([]int, k)
	for _, c := range result.Assignments {
		sizes[c]++
	}

	topTerms := viper.GetInt("cluster.top_terms")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Cluster", "Titles", "Top terms"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for c := 0; c < k; c++ {
		table.Append([]string{
			strconv.Itoa(c),
			strconv.Itoa(sizes[c]),
			strings.Join(cluster.TopTerms(result, matrix.Terms, c, topTerms), ", "),
		})
	}
	table.Render()

	// Cluster membership against the keyword taxonomy surfaces which
	// clusters carry a theme and which are noise.
	groups := cluster.DefaultKeywordGroups()
	crosstab := cluster.CrossTab(titles, result.Assignments, k, groups)

	xt := tablewriter.NewWriter(os.Stdout)
	xt.SetHeader([]string{"Cluster", "Keyword group", "Titles"})
	xt.SetBorder(false)
	xt.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	xt.SetAlignment(tablewriter.ALIGN_LEFT)
	for c, counts := range crosstab {
		for _, group := range groups {
			if counts[group.Name] == 0 {
				continue
			}
			xt.Append([]string{
				strconv.Itoa(c),
				group.Name,
				strconv.Itoa(counts[group.Name]),
			})
		}
	}
	xt.Render()

	return nil
}

func titlesOf(rows []model.Row) []string {
	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.Title
	}
	return titles
}

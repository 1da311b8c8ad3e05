package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [query or URL]",
	Short: "Print recommendations for a single query and exit",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRecommend(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().IntP("top", "n", 5, "maximum number of recommendations")
	recommendCmd.Flags().StringP("output", "o", "table", "output format: table or json")
	viper.BindPFlag("top-n", recommendCmd.Flags().Lookup("top"))
}

func runRecommend(cmd *cobra.Command, query string) {
	zl := newLogger()
	defer zl.Sync()

	ctx := context.Background()
	engine, cfg, cleanup, err := buildEngine(ctx, zl)
	if err != nil {
		zl.Fatal("service unavailable", zap.Error(err))
	}
	defer cleanup()

	res, err := engine.Recommend(ctx, query, cfg.TopN)
	if err != nil {
		zl.Fatal("recommendation failed", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Recommendations); err != nil {
			zl.Fatal("encoding output", zap.Error(err))
		}
		return
	}

	if res.NoContent {
		fmt.Println("no content could be extracted from that URL, nothing to recommend")
		return
	}
	if len(res.Recommendations) == 0 {
		fmt.Println("no matching assessments found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMATCH\tSCORE\tDURATION\tTYPES\tLINK")
	for _, rec := range res.Recommendations {
		fmt.Fprintf(w, "%s\t%d%%\t%.3f\t%s\t%s\t%s\n",
			rec.TestName, rec.MatchPercentage, rec.Similarity, rec.Duration, rec.TestTypes, rec.Link)
	}
	w.Flush()
}

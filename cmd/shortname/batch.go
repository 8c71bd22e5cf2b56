package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/shortname/pkg/shortname"
	"github.com/cognicore/shortname/pkg/shortname/analytics"
	"github.com/cognicore/shortname/pkg/shortname/result"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Generate short names for one description per line",
		Long: `Reads descriptions, one per line, from a file or standard input and prints
a JSON report with one result per description in input order. Blank lines
are ignored. A failed description never stops the rest of the batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().IntP("workers", "w", 0, "parallel workers (0 = number of CPUs)")
	cmd.Flags().Bool("full", false, "include components and messages for each item")
	cmd.Flags().Bool("stats", false, "include aggregate statistics")

	_ = viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.full", cmd.Flags().Lookup("full"))
	_ = viper.BindPFlag("batch.stats", cmd.Flags().Lookup("stats"))

	return cmd
}

type batchItem struct {
	Original       string `json:"original"`
	ShortName      string `json:"short_name"`
	Success        bool   `json:"success"`
	CharacterCount int    `json:"character_count"`
	Error          string `json:"error,omitempty"`
}

type batchReport struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Results any              `json:"results"`
	Stats   *analytics.Stats `json:"stats,omitempty"`
	Summary *batchSummary    `json:"summary,omitempty"`
}

// batchSummary is the derived view of Stats.
type batchSummary struct {
	SuccessRate   float64               `json:"success_rate"`
	AverageLength float64               `json:"average_length"`
	TopRules      []analytics.RuleCount `json:"top_rules"`
}

func summarize(s analytics.Stats) *batchSummary {
	return &batchSummary{
		SuccessRate:   s.SuccessRate(),
		AverageLength: s.AverageLength(),
		TopRules:      s.TopRules(analytics.DefaultTopN),
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	texts, err := readLines(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(texts) == 0 {
		return fmt.Errorf("no descriptions to process")
	}

	engine, cleanup, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := processBatch(cmd.Context(), engine, texts, viper.GetBool("batch.full"), viper.GetBool("batch.stats"))
	if werr := writeJSON(cmd.OutOrStdout(), report); werr != nil {
		return werr
	}
	return err
}

func processBatch(ctx context.Context, engine *shortname.Engine, texts []string, full, stats bool) (batchReport, error) {
	results, err := engine.ProcessBatch(ctx, texts)

	report := batchReport{Success: err == nil, Count: len(results)}
	if full {
		report.Results = results
	} else {
		items := make([]batchItem, len(results))
		for i, r := range results {
			items[i] = toBatchItem(r)
		}
		report.Results = items
	}

	if stats {
		a := analytics.NewAnalyzer()
		for _, r := range results {
			a.Process(r)
		}
		s := a.Snapshot()
		report.Stats = &s
		report.Summary = summarize(s)
	}
	return report, err
}

func toBatchItem(r result.ProcessingResult) batchItem {
	item := batchItem{
		Original:       r.Original,
		ShortName:      r.ShortName,
		Success:        r.Success,
		CharacterCount: r.CharacterCount,
	}
	if !r.Success {
		for _, m := range r.Messages {
			if m.Level == result.LevelError {
				item.Error = m.Text
				break
			}
		}
	}
	return item
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cognicore/shortname/pkg/shortname/dictionary"
	"github.com/cognicore/shortname/pkg/shortname/store/sqlite"
)

// DefaultSampleSize is how many entries "dict show" lists by default.
const DefaultSampleSize = 10

func dictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the abbreviation dictionary",
	}
	cmd.AddCommand(dictImportCmd())
	cmd.AddCommand(dictShowCmd())
	return cmd
}

func dictImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the dictionary in --dictionary-db with the rows of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := viper.GetString("dictionary.db")
			if dbPath == "" {
				return fmt.Errorf("--dictionary-db is required for import")
			}

			d, err := dictionary.Load(args[0])
			if err != nil {
				return err
			}

			st, err := sqlite.OpenSQLite(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("open dictionary database: %w", err)
			}
			defer st.Close()

			if err := st.ReplaceEntries(cmd.Context(), d.Entries()); err != nil {
				return fmt.Errorf("import dictionary: %w", err)
			}

			out := cmd.OutOrStdout()
			stats := d.Stats()
			fmt.Fprintf(out, "Imported %d entries (%d multi-word) from %s into %s\n",
				stats.Entries, stats.MultiWord, args[0], dbPath)
			for _, w := range d.Warnings() {
				fmt.Fprintln(out, "  Warning: "+w)
			}
			return nil
		},
	}
}

func dictShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List entries of the configured dictionary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, cleanup, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			printStatus(out, engine.Status())
			if !engine.DictionaryLoaded() {
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			entries := engine.Dictionary().Sample(limit)
			if limit <= 0 {
				entries = engine.Dictionary().Entries()
			}

			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FULL TERM\tABBREVIATION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.Term, e.Abbreviation)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntP("limit", "n", DefaultSampleSize, "entries to list (0 = all)")
	return cmd
}

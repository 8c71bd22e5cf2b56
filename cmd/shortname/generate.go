package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <description>",
		Short:   "Generate the short name for one description",
		Example: `  shortname generate -d abbreviations.csv "Solution Dextrose 5% 500 milliliters Bottle Viaflex Non-Latex"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runGenerate,
	}
	cmd.Flags().Bool("json", false, "print the full result as JSON")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	engine, cleanup, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	r := engine.Process(strings.Join(args, " "))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	printResult(cmd.OutOrStdout(), r, engine.Rules().MaxLength)
	if !r.Success {
		return fmt.Errorf("no valid short name for %q", r.Original)
	}
	return nil
}

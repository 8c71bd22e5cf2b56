package main

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a dictionary is loaded and how many entries it has",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, cleanup, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), engine.Status())
			}
			printStatus(cmd.OutOrStdout(), engine.Status())
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print status as JSON")
	return cmd
}

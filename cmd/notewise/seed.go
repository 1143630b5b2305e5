package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/notewise/internal/testdata"
)

var demoCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add random demo notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		ids, err := testdata.Seed(cmd.Context(), e.notes, demoCount, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %d notes\n", len(ids))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&demoCount, "demo", 10, "number of notes to add")
	rootCmd.AddCommand(seedCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <note-id> [dir]",
	Short: "Write a note as markdown with YAML frontmatter",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		dir := cfg.Export.Dir
		if len(args) == 2 {
			dir = args[1]
		}
		path, err := e.services.Exporter.Export(cmd.Context(), args[0], dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/notewise/internal/session"
)

var resetFlags bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all notes, notifications and the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		rep, err := e.services.Maintenance.Reset(ctx)
		if err != nil {
			return err
		}
		if resetFlags {
			for _, k := range []string{session.KeySeenOnboarding, session.KeyAcceptedTerms, session.KeyLoggedIn} {
				if err := e.store.Remove(ctx, k); err != nil {
					return fmt.Errorf("remove %s: %w", k, err)
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "data cleared: %d notes, %d notifications\n", rep.Notes, rep.Notifications)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetFlags, "flags", false, "also forget onboarding, terms and login")
	rootCmd.AddCommand(resetCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/notewise/internal/session"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show the persisted onboarding, terms and login flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		f, err := session.LoadFlags(cmd.Context(), e.store)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "backend            %s\n", cfg.Session.FlagStore)
		fmt.Fprintf(out, "%-18s %t\n", session.KeySeenOnboarding, f.SeenOnboarding)
		fmt.Fprintf(out, "%-18s %t\n", session.KeyAcceptedTerms, f.AcceptedTerms)
		fmt.Fprintf(out, "%-18s %t\n", session.KeyLoggedIn, f.LoggedIn)
		fmt.Fprintf(out, "next screen        %s\n", session.ResolveNextScreen(f))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; onboarding and terms stay accepted",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		nav := session.New(e.store)
		if _, err := nav.Start(cmd.Context()); err != nil {
			return err
		}
		if err := nav.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(logoutCmd)
}

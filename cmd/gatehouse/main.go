package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gatehouse",
		Short: "Multi-tenant client shell: tenant resolution, auth, and route gating",
		Long: `Gatehouse drives the authorization core of a multi-tenant client:
it derives the tenant from the browsing host, loads the tenant's
configuration with graceful fallback, restores and validates persisted
sessions, and gates every navigation through an ordered policy chain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		loginCmd(),
		logoutCmd(),
		navigateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "journalcli",
	Short: "journalcli talks to a mood journal server.",
	Long: `journalcli exports and imports journal entries against a running
mood journal server. Authenticate with --token (a JWT from POST /login).`,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the journal server")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token for authenticated endpoints")
}

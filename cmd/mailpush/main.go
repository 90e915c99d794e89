package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mailpush",
		Short: "Real-time new-mail notifications over websockets",
		Long: `mailpush serves authenticated websocket channels at /ws/mail/{identity}
and pushes a NEW_MAIL frame to a recipient whenever mail submitted through
/api/mail/send lands in their inbox while they are connected.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		tokenCmd(),
		migrateCmd(),
		versionCmd(),
	)

	return rootCmd
}

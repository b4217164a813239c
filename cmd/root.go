package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the inboxtriage application
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	globals := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "inboxtriage",
		Short: "Triage a mailbox: categories, folders, noisy senders and statistics",
		Long: `inboxtriage reads a mailbox snapshot (from Gmail, a snapshot file or the
built-in demo data) and triages it: it categorizes messages, lists folders,
ranks senders by noise and derives smart folders and dashboard statistics.

It can run as:
  - A CLI (inboxtriage triage ...)
  - An MCP (Model Context Protocol) server for AI assistants (inboxtriage serve)`,
		SilenceUsage: true,
	}

	globals.register(cmd)

	cmd.AddCommand(newTriageCmd(globals))
	cmd.AddCommand(newServeCmd(globals))
	cmd.AddCommand(newAuthCmd(globals))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGenerateDocsCmd())

	return cmd
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxtriage version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

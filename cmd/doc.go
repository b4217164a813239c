// Package cmd implements the command-line interface for inboxtriage.
//
// This package provides the following commands:
//   - triage: run a pipeline stage (categorize, folder, senders, smart-folders, stats)
//   - serve: start the MCP server to provide triage tools for AI assistants
//   - auth: authorize read-only Gmail access for an account
//   - version: display version information
//   - generate-docs: generate markdown documentation for all MCP tools
//
// The --config, --source, --snapshot, --account, --demo and --debug flags
// are shared by all commands.
package cmd

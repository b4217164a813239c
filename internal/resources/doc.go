// Package resources provides MCP resources describing the triage server.
// Resources are read-only documents that MCP clients can fetch without
// calling a tool: the active category rules and a summary of the mailbox
// source and cached accounts.
package resources

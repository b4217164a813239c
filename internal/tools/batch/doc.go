// Package batch provides helpers for MCP tools that act on several ids
// in one call.
//
// Tools accept either a single id or an array of ids (including arrays
// sent as JSON-encoded strings) and report one Result per id, so that a
// bad id fails on its own instead of failing the whole call.
package batch

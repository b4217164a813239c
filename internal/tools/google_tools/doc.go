// Package google_tools provides MCP tools for authorizing the Gmail
// mailbox source.
//
// The OAuth flow:
//  1. Call google_get_auth_url to get the authorization URL
//  2. The user visits the URL and grants read-only Gmail access
//  3. Call google_save_auth_code with the code Google shows
//
// The token is stored per account under the user cache directory and is
// refreshed automatically. These tools are only registered when the
// server reads from Gmail.
package google_tools

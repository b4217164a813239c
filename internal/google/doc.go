// Package google provides OAuth2 token management for Google APIs.
//
// Tokens are stored per account as files under the user cache directory
// (~/.cache/inboxtriage/google-<account>.token). The TokenProvider
// interface lets the Gmail source obtain authenticated HTTP clients
// without knowing where the token came from.
package google

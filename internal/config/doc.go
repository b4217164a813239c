// Package config loads the triage configuration.
//
// Settings come from three layers, later layers winning:
//  1. built-in defaults (Default)
//  2. an optional YAML file
//  3. TRIAGE_* environment variables
//
// Command-line flags are applied on top by the cmd package.
//
// Example file:
//
//	source: file
//	snapshot_file: ./mailbox.yaml
//	account: work
//	snapshot_ttl: 10m
//	trusted_senders:
//	  - boss@example.com
//	categories:
//	  - name: travel
//	    keywords: [flight, hotel]
//	  - name: invoices
//	    keywords: [invoice]
package config

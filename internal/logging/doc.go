// Package logging provides structured logging utilities for inboxtriage.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithSource(slog.Default(), "gmail")
//	logger.Info("snapshot fetched",
//	    logging.Account("work"),
//	    logging.Count(len(messages)))
//
// Sender addresses are personal data. Log the domain or the anonymized
// form instead of the address:
//
//	logger.Debug("sender aggregated", logging.SenderDomain(email))
//	logger.Debug("sender aggregated", "sender", logging.AnonymizeEmail(email))
package logging

package instrumentation

import "slices"

// Cardinality management helpers for metrics.
// Every label value recorded by this package passes through one of these
// helpers so that caller supplied strings cannot grow the label space.

// Pipeline operations recorded by triage_pipeline_operations_total.
const (
	OperationCategorize   = "categorize"
	OperationFolder       = "folder"
	OperationQuery        = "query"
	OperationSenders      = "senders"
	OperationSelection    = "selection"
	OperationSmartFolders = "smart_folders"
	OperationStats        = "stats"
)

// LabelOther replaces label values outside the known set.
const LabelOther = "other"

var (
	knownOperations = []string{
		OperationCategorize,
		OperationFolder,
		OperationQuery,
		OperationSenders,
		OperationSelection,
		OperationSmartFolders,
		OperationStats,
	}

	knownPaths = []string{"/mcp", "/healthz", "/readyz", "/healthz/detailed", "/metrics"}
)

// NormalizeOperation returns op when it is a known pipeline operation and
// LabelOther otherwise.
func NormalizeOperation(op string) string {
	return boundedLabel(op, knownOperations)
}

// NormalizePath maps an HTTP request path to a bounded label value.
//
// Example:
//
//	NormalizePath("/mcp")            // "/mcp"
//	NormalizePath("/mcp/../secret")  // "other"
func NormalizePath(path string) string {
	return boundedLabel(path, knownPaths)
}

func boundedLabel(value string, allowed []string) string {
	if slices.Contains(allowed, value) {
		return value
	}
	return LabelOther
}

// Package triage implements the email triage pipeline: keyword
// categorization, folder and free-text filtering, the sender filter and
// sort engine, smart folder aggregation and dashboard statistics.
//
// Every function in this package is a pure read over the snapshot it is
// given. Inputs are never mutated and results are freshly allocated, so
// callers can recompute on every change without coordination.
//
// # Demo data
//
// When demo mode is active, or when the live collections are empty, the
// smart folder and statistics views fall back to the embedded demo
// fixtures. The fallback rule lives in ResolveDataSource and is shared by
// every consumer.
//
// Example usage:
//
//	inbox := triage.FilterByFolder(snapshot.Messages, triage.FolderInbox, snapshot.Starred)
//	hits := triage.FilterByQuery(inbox, "invoice")
//
//	view := triage.NewSenderView()
//	view.Filter = triage.SenderFilterHighNoise
//	view.Sort = triage.SenderSortNoise
//	noisy := view.Senders(snapshot.Senders)
package triage

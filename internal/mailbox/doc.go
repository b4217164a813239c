// Package mailbox defines the mailbox snapshot consumed by the triage
// pipeline and the sources that produce it.
//
// A Snapshot is the read-only state of one account at one point in time:
// the current messages, the categorized history, the aggregated senders
// and the starred and trashed id sets. Sources are:
//   - FileSource: a YAML or JSON snapshot document on disk
//   - DemoSource: the built-in demo fixtures
//   - gmail.Source (package gmail): a live Gmail mailbox
package mailbox

// Package gmail reads mailbox snapshots from the Gmail API.
//
// The package is read-only: it lists messages, fetches their headers and
// part structure (never bodies), converts them into triage messages and
// aggregates per-sender statistics:
//   - engagement: share of read messages, in percent
//   - marketing: a List-Unsubscribe header or Precedence bulk/list/junk
//   - unsubscribe: a one-click List-Unsubscribe-Post header
//   - noise score: 0 to 10, from volume, engagement and marketing
//
// Authentication uses the per-account tokens of the google package.
//
// Example usage:
//
//	src := gmail.NewSource(gmail.SourceConfig{
//	    TrustedSenders: []string{"@example.com"},
//	    MaxMessages:    300,
//	})
//	snap, err := src.Snapshot(ctx, "work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(snap.Messages), len(snap.Senders))
package gmail

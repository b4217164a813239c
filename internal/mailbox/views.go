package mailbox

import (
	"github.com/teemow/inboxtriage/internal/triage"
)

// Folder returns the messages of folder matching query, in snapshot order.
func (s *Snapshot) Folder(folder triage.Folder, query string) []triage.EmailMessage {
	return triage.FilterByQuery(triage.FilterByFolder(s.Messages, folder, s.Starred), query)
}

// SmartFolders derives the smart folders from the snapshot history.
func (s *Snapshot) SmartFolders(demoMode bool) []triage.SmartFolder {
	return triage.SmartFolders(s.Messages, s.History, demoMode)
}

// Stats selects the data behind a dashboard statistic.
func (s *Snapshot) Stats(stat triage.StatType, demoMode bool) triage.StatData {
	return triage.StatSelector{DemoMode: demoMode}.Select(stat, s.Messages, s.Senders, s.Trashed)
}

// SenderIDs returns the set of sender ids present in the snapshot.
func (s *Snapshot) SenderIDs() triage.IDSet {
	ids := triage.NewIDSet()
	for _, sender := range s.Senders {
		ids.Add(sender.ID)
	}
	return ids
}

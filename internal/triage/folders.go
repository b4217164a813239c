package triage

import (
	"strings"

	"github.com/samber/lo"
)

// Folder identifies a mailbox folder view.
type Folder string

// Known folders. Unknown identifiers behave like FolderInbox.
const (
	FolderInbox     Folder = "inbox"
	FolderUnread    Folder = "unread"
	FolderStarred   Folder = "starred"
	FolderImportant Folder = "important"
	FolderTrash     Folder = "trash"
	FolderSnoozed   Folder = "snoozed"
	FolderSent      Folder = "sent"
	FolderDrafts    Folder = "drafts"
	FolderSpam      Folder = "spam"
	FolderArchived  Folder = "archived"
)

// AllFolders lists the known folder identifiers.
var AllFolders = []Folder{
	FolderInbox, FolderUnread, FolderStarred, FolderImportant, FolderTrash,
	FolderSnoozed, FolderSent, FolderDrafts, FolderSpam, FolderArchived,
}

// IsExternalFolder reports whether the folder's contents come from a
// different store than the synced message list. Such folders are always
// empty here.
func IsExternalFolder(f Folder) bool {
	switch f {
	case FolderSnoozed, FolderSent, FolderDrafts, FolderSpam, FolderArchived:
		return true
	}
	return false
}

// IsImportant reports whether a message belongs in the important folder.
func IsImportant(m EmailMessage) bool {
	return m.HasLabel(LabelImportant) ||
		m.Priority == PriorityAction ||
		strings.Contains(lower(m.Subject), "urgent")
}

// IsTrashed reports whether a message carries a trash label.
func IsTrashed(m EmailMessage) bool {
	return m.HasLabel(LabelTrash) || m.HasLabel("trash")
}

// IsInbox reports whether a message carries an inbox label.
func IsInbox(m EmailMessage) bool {
	return m.HasLabel(LabelInbox) || m.HasLabel("inbox")
}

// FilterByFolder returns the messages visible in folder, preserving input
// order. Unknown folders fall through to the inbox view.
func FilterByFolder(messages []EmailMessage, folder Folder, starred IDSet) []EmailMessage {
	if IsExternalFolder(folder) {
		return []EmailMessage{}
	}

	var keep func(EmailMessage) bool
	switch folder {
	case FolderUnread:
		keep = func(m EmailMessage) bool { return !m.IsRead }
	case FolderStarred:
		keep = func(m EmailMessage) bool { return starred.Contains(m.ID) }
	case FolderImportant:
		keep = IsImportant
	case FolderTrash:
		keep = IsTrashed
	default:
		keep = IsInbox
	}

	return lo.Filter(messages, func(m EmailMessage, _ int) bool {
		return keep(m)
	})
}

package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func folderFixture() []EmailMessage {
	return []EmailMessage{
		{ID: "1", Subject: "Hello", Labels: []string{"INBOX"}, IsRead: true},
		{ID: "2", Subject: "Urgent: server down", Labels: []string{"inbox", "UNREAD"}},
		{ID: "3", Subject: "Quarterly plan", Labels: []string{"IMPORTANT"}, IsRead: true},
		{ID: "4", Subject: "Follow up", Priority: PriorityAction, IsRead: true},
		{ID: "5", Subject: "Old stuff", Labels: []string{"TRASH"}, IsRead: true},
		{ID: "6", Subject: "Older stuff", Labels: []string{"trash"}},
		{ID: "7", Subject: "Archived", Labels: []string{"CATEGORY_UPDATES"}, IsRead: true},
	}
}

func ids(messages []EmailMessage) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func TestFilterByFolder(t *testing.T) {
	starred := NewIDSet("3", "7", "missing")

	tests := []struct {
		name     string
		folder   Folder
		expected []string
	}{
		{name: "inbox", folder: FolderInbox, expected: []string{"1", "2"}},
		{name: "unread", folder: FolderUnread, expected: []string{"2", "6"}},
		{name: "starred", folder: FolderStarred, expected: []string{"3", "7"}},
		{name: "important", folder: FolderImportant, expected: []string{"2", "3", "4"}},
		{name: "trash", folder: FolderTrash, expected: []string{"5", "6"}},
		{name: "snoozed", folder: FolderSnoozed, expected: []string{}},
		{name: "sent", folder: FolderSent, expected: []string{}},
		{name: "drafts", folder: FolderDrafts, expected: []string{}},
		{name: "spam", folder: FolderSpam, expected: []string{}},
		{name: "archived", folder: FolderArchived, expected: []string{}},
		{name: "unknown falls back to inbox", folder: Folder("receipts"), expected: []string{"1", "2"}},
		{name: "empty folder falls back to inbox", folder: Folder(""), expected: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByFolder(folderFixture(), tt.folder, starred)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilterByFolder_ZeroStarredSet(t *testing.T) {
	got := FilterByFolder(folderFixture(), FolderStarred, IDSet{})
	assert.Empty(t, got)
}

func TestFilterByFolder_DoesNotMutateInput(t *testing.T) {
	in := folderFixture()
	_ = FilterByFolder(in, FolderTrash, IDSet{})
	assert.Equal(t, folderFixture(), in)
}

func TestIsExternalFolder(t *testing.T) {
	assert.True(t, IsExternalFolder(FolderSpam))
	assert.False(t, IsExternalFolder(FolderInbox))
	assert.False(t, IsExternalFolder(FolderTrash))
}

package triage

import (
	"strings"

	"github.com/samber/lo"
)

// SmartFolderActionRequired is the id of the action required folder.
const SmartFolderActionRequired = "action-required"

// smartFolderLayout is the fixed display order of smart folders. Counts
// are filled in by SmartFolders.
var smartFolderLayout = []SmartFolder{
	{ID: SmartFolderActionRequired, Name: "Action Required", Icon: "alert-circle", Color: "#EF4444", Query: `label:IMPORTANT OR subject:("action required" OR urgent)`},
	{ID: "invoices", Name: "Invoices", Icon: "file-text", Color: "#F59E0B", Query: "category:invoices", Category: CategoryInvoices},
	{ID: "receipts", Name: "Receipts", Icon: "receipt", Color: "#10B981", Query: "category:receipts", Category: CategoryReceipts},
	{ID: "travel", Name: "Travel", Icon: "plane", Color: "#3B82F6", Query: "category:travel", Category: CategoryTravel},
	{ID: "hr", Name: "HR & Work", Icon: "briefcase", Color: "#8B5CF6", Query: "category:hr", Category: CategoryHR},
	{ID: "legal", Name: "Legal", Icon: "scale", Color: "#6B7280", Query: "category:legal", Category: CategoryLegal},
	{ID: "promotions", Name: "Promotions", Icon: "tag", Color: "#EC4899", Query: "category:promotions", Category: CategoryPromotions},
	{ID: "social", Name: "Social", Icon: "users", Color: "#06B6D4", Query: "category:social", Category: CategorySocial},
	{ID: "system", Name: "System", Icon: "settings", Color: "#64748B", Query: "category:system", Category: CategorySystem},
}

// NeedsAction reports whether a message counts towards the action
// required smart folder.
func NeedsAction(m EmailMessage) bool {
	if m.HasLabel(LabelImportant) {
		return true
	}
	subject := lower(m.Subject)
	return strings.Contains(subject, "action required") || strings.Contains(subject, "urgent")
}

// SmartFolders derives the smart folder list. In demo mode, or when
// messages is empty, the demo folder set is returned as is.
//
// Category counts are read from the Category already assigned to each
// history entry; nothing is reclassified here. Folders with a zero count
// are omitted.
func SmartFolders(messages, history []EmailMessage, isDemoMode bool) []SmartFolder {
	if UsesDemoData(messages, isDemoMode) {
		return Demo().SmartFolders
	}

	actionCount := lo.CountBy(messages, NeedsAction)
	categoryCounts := lo.CountValuesBy(history, func(m EmailMessage) Category {
		return m.Category
	})

	folders := make([]SmartFolder, 0, len(smartFolderLayout))
	for _, f := range smartFolderLayout {
		if f.ID == SmartFolderActionRequired {
			f.Count = actionCount
		} else {
			f.Count = categoryCounts[f.Category]
		}
		if f.Count > 0 {
			folders = append(folders, f)
		}
	}
	return folders
}

package triage

import "time"

// Well-known Gmail system labels.
const (
	LabelInbox     = "INBOX"
	LabelImportant = "IMPORTANT"
	LabelTrash     = "TRASH"
	LabelStarred   = "STARRED"
	LabelUnread    = "UNREAD"
	LabelSpam      = "SPAM"
	LabelSent      = "SENT"
	LabelDraft     = "DRAFT"
)

// PriorityAction marks a message that needs the user to act on it.
const PriorityAction = "action"

// Attachment describes a single attachment's metadata.
type Attachment struct {
	Filename string `json:"filename" yaml:"filename"`
	MimeType string `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	Size     int64  `json:"size" yaml:"size"`
}

// EmailMessage is a read-only view of a single mailbox message.
type EmailMessage struct {
	ID       string    `json:"id" yaml:"id"`
	ThreadID string    `json:"threadId,omitempty" yaml:"thread_id,omitempty"`
	Subject  string    `json:"subject" yaml:"subject"`
	From     string    `json:"from" yaml:"from"`
	Snippet  string    `json:"snippet" yaml:"snippet"`
	Labels   []string  `json:"labels" yaml:"labels"`
	IsRead   bool      `json:"isRead" yaml:"is_read"`
	Date     time.Time `json:"date" yaml:"date"`
	Priority string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	To       []string  `json:"to,omitempty" yaml:"to,omitempty"`

	// Category is assigned upstream, at sync time.
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`

	HasAttachments  bool         `json:"hasAttachments,omitempty" yaml:"has_attachments,omitempty"`
	AttachmentCount int          `json:"attachmentCount,omitempty" yaml:"attachment_count,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`

	// SizeBytes is nil when the sync source did not report a size.
	SizeBytes *int64 `json:"sizeBytes,omitempty" yaml:"size_bytes,omitempty"`
}

// HasLabel reports whether the message carries the given label exactly.
func (m EmailMessage) HasLabel(label string) bool {
	for _, l := range m.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Size returns the message size in bytes, or 0 when it is unknown.
func (m EmailMessage) Size() int64 {
	if m.SizeBytes == nil {
		return 0
	}
	return *m.SizeBytes
}

// Sender holds aggregate statistics for one sending address.
type Sender struct {
	ID                string  `json:"id" yaml:"id"`
	DisplayName       string  `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Email             string  `json:"email" yaml:"email"`
	EmailCount        int     `json:"emailCount" yaml:"email_count"`
	TotalSize         int64   `json:"totalSize" yaml:"total_size"`
	FrequencyPerMonth float64 `json:"frequencyPerMonth" yaml:"frequency_per_month"`

	// NoiseScore ranges from 0 to 10; nil when it has not been computed.
	NoiseScore *float64 `json:"noiseScore,omitempty" yaml:"noise_score,omitempty"`

	// EngagementRate is the percentage (0-100) of emails the user interacted with.
	EngagementRate float64 `json:"engagementRate" yaml:"engagement_rate"`

	IsMarketing    bool `json:"isMarketing" yaml:"is_marketing"`
	IsTrusted      bool `json:"isTrusted" yaml:"is_trusted"`
	HasUnsubscribe bool `json:"hasUnsubscribe" yaml:"has_unsubscribe"`
}

// Noise returns the noise score, treating an absent score as 0.
func (s Sender) Noise() float64 {
	if s.NoiseScore == nil {
		return 0
	}
	return *s.NoiseScore
}

// SmartFolder is a derived virtual folder. It is recomputed from the
// current snapshot and never stored.
type SmartFolder struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Icon     string   `json:"icon" yaml:"icon"`
	Color    string   `json:"color" yaml:"color"`
	Query    string   `json:"query" yaml:"query"`
	Count    int      `json:"count" yaml:"count"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// Int64 returns a pointer to v, for optional size fields.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v, for optional score fields.
func Float64(v float64) *float64 { return &v }

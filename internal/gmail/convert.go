package gmail

import (
	"net/mail"
	"slices"
	"strings"
	"time"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/inboxtriage/internal/triage"
)

// MessageInfo is a converted message plus the header facts needed for
// sender aggregation.
type MessageInfo struct {
	Message triage.EmailMessage

	SenderName  string
	SenderEmail string

	// ListUnsubscribe is the raw List-Unsubscribe header.
	ListUnsubscribe string

	// OneClickUnsubscribe is set by a List-Unsubscribe-Post one-click header.
	OneClickUnsubscribe bool

	// Bulk is set by a Precedence header of bulk, list or junk.
	Bulk bool
}

// HeaderValue extracts a header value from a Gmail message. Header names
// are matched case-insensitively.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, header) {
			return h.Value
		}
	}
	return ""
}

// ConvertMessage converts a Gmail message into the triage view. The
// category is left empty; classification happens in the source.
func ConvertMessage(m *gmail.Message) MessageInfo {
	labels := slices.Clone(m.LabelIds)
	msg := triage.EmailMessage{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Subject:  HeaderValue(m, "Subject"),
		From:     HeaderValue(m, "From"),
		Snippet:  m.Snippet,
		Labels:   labels,
		IsRead:   !slices.Contains(labels, triage.LabelUnread),
		Date:     messageDate(m),
		To:       parseAddressList(HeaderValue(m, "To")),
	}
	if slices.Contains(labels, triage.LabelImportant) && slices.Contains(labels, triage.LabelStarred) {
		msg.Priority = triage.PriorityAction
	}

	walkParts(m.Payload, func(p *gmail.MessagePart) {
		if p.Filename == "" {
			return
		}
		a := triage.Attachment{Filename: p.Filename, MimeType: p.MimeType}
		if p.Body != nil {
			a.Size = p.Body.Size
		}
		msg.Attachments = append(msg.Attachments, a)
	})
	msg.AttachmentCount = len(msg.Attachments)
	msg.HasAttachments = msg.AttachmentCount > 0

	if m.SizeEstimate > 0 {
		msg.SizeBytes = triage.Int64(m.SizeEstimate)
	}

	name, email := parseSender(msg.From)
	precedence := strings.ToLower(strings.TrimSpace(HeaderValue(m, "Precedence")))
	unsubscribe := GetUnsubscribeInfo(m)
	return MessageInfo{
		Message:             msg,
		SenderName:          name,
		SenderEmail:         email,
		ListUnsubscribe:     HeaderValue(m, "List-Unsubscribe"),
		OneClickUnsubscribe: unsubscribe.OneClick,
		Bulk:                precedence == "bulk" || precedence == "list" || precedence == "junk",
	}
}

func messageDate(m *gmail.Message) time.Time {
	if m.InternalDate > 0 {
		return time.UnixMilli(m.InternalDate).UTC()
	}
	if t, err := mail.ParseDate(HeaderValue(m, "Date")); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// parseSender splits a From header into display name and lowercased
// address. Unparseable headers are used verbatim as the address.
func parseSender(from string) (name, email string) {
	from = strings.TrimSpace(from)
	if from == "" {
		return "", ""
	}
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return "", strings.ToLower(from)
	}
	return addr.Name, strings.ToLower(addr.Address)
}

func parseAddressList(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	list, err := mail.ParseAddressList(header)
	if err != nil {
		return []string{header}
	}
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Address)
	}
	return out
}

// walkParts visits part and all nested parts depth first.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, p := range part.Parts {
		walkParts(p, fn)
	}
}

package triage

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// StatType names a dashboard statistic.
type StatType string

// Supported statistics.
const (
	StatUnread StatType = "unread"
	StatNoise  StatType = "noise"
	StatFiles  StatType = "files"
)

// AllStatTypes lists the supported statistics.
var AllStatTypes = []StatType{StatUnread, StatNoise, StatFiles}

// NoisySenderThreshold is the minimum noise score listed by StatNoise.
const NoisySenderThreshold = 6.0

// DefaultMessageSize is the size assumed for a message whose size was
// not reported and cannot be derived from its attachments.
const DefaultMessageSize int64 = 75_000

// StatData is the result of a statistics selection. Build it with
// NewStatData so the counts always match the lists.
type StatData struct {
	UnreadEmails    []EmailMessage `json:"unreadEmails"`
	UnreadCount     int            `json:"unreadCount"`
	NoisySenders    []Sender       `json:"noisySenders"`
	EmailsWithFiles []EmailMessage `json:"emailsWithFiles"`
	FilesCount      int            `json:"filesCount"`
}

// NewStatData builds a StatData whose counts are the list lengths.
func NewStatData(unread []EmailMessage, noisy []Sender, files []EmailMessage) StatData {
	if unread == nil {
		unread = []EmailMessage{}
	}
	if noisy == nil {
		noisy = []Sender{}
	}
	if files == nil {
		files = []EmailMessage{}
	}
	return StatData{
		UnreadEmails:    unread,
		UnreadCount:     len(unread),
		NoisySenders:    noisy,
		EmailsWithFiles: files,
		FilesCount:      len(files),
	}
}

// SizeNormalizer guarantees size metadata on a message. It returns the
// message with SizeBytes set, or false to drop it.
type SizeNormalizer interface {
	Normalize(m EmailMessage) (EmailMessage, bool)
}

// SizeNormalizerFunc adapts a function to SizeNormalizer.
type SizeNormalizerFunc func(m EmailMessage) (EmailMessage, bool)

// Normalize calls f(m).
func (f SizeNormalizerFunc) Normalize(m EmailMessage) (EmailMessage, bool) {
	return f(m)
}

// DefaultSizeNormalizer fills a missing size with the attachment total
// when positive, else DefaultMessageSize. It never drops a message.
var DefaultSizeNormalizer SizeNormalizer = SizeNormalizerFunc(func(m EmailMessage) (EmailMessage, bool) {
	if m.SizeBytes != nil {
		return m, true
	}
	total := lo.SumBy(m.Attachments, func(a Attachment) int64 { return a.Size })
	if total <= 0 {
		total = DefaultMessageSize
	}
	m.SizeBytes = Int64(total)
	return m, true
})

// StatSelector selects the data behind a dashboard statistic.
type StatSelector struct {
	// Normalizer defaults to DefaultSizeNormalizer.
	Normalizer SizeNormalizer

	// DemoMode forces the demo collections.
	DemoMode bool
}

// Select returns the data for stat. Trashed ids are excluded from the
// message lists. Unknown stat types yield empty results.
func (s StatSelector) Select(stat StatType, messages []EmailMessage, senders []Sender, trashed IDSet) StatData {
	switch stat {
	case StatUnread:
		return NewStatData(s.unread(messages, trashed), nil, nil)
	case StatNoise:
		return NewStatData(nil, s.noisy(senders), nil)
	case StatFiles:
		return NewStatData(nil, nil, s.files(messages, trashed))
	default:
		return NewStatData(nil, nil, nil)
	}
}

// SelectStatData runs the default StatSelector.
func SelectStatData(stat StatType, messages []EmailMessage, senders []Sender, trashed IDSet) StatData {
	return StatSelector{}.Select(stat, messages, senders, trashed)
}

func (s StatSelector) normalizer() SizeNormalizer {
	if s.Normalizer == nil {
		return DefaultSizeNormalizer
	}
	return s.Normalizer
}

func (s StatSelector) unread(messages []EmailMessage, trashed IDSet) []EmailMessage {
	source := ResolveDataSource(messages, Demo().Messages, s.DemoMode)
	unread := lo.Filter(source, func(m EmailMessage, _ int) bool {
		return !m.IsRead && !trashed.Contains(m.ID)
	})
	return s.normalize(unread)
}

func (s StatSelector) noisy(senders []Sender) []Sender {
	source := ResolveDataSource(senders, Demo().Senders, s.DemoMode)
	noisy := lo.Filter(source, func(sn Sender, _ int) bool {
		return sn.NoiseScore != nil && *sn.NoiseScore >= NoisySenderThreshold
	})
	slices.SortStableFunc(noisy, func(a, b Sender) int {
		return cmp.Compare(b.Noise(), a.Noise())
	})
	return noisy
}

func (s StatSelector) files(messages []EmailMessage, trashed IDSet) []EmailMessage {
	source := messages
	if s.DemoMode {
		source = Demo().Messages
	}
	withFiles := lo.Filter(source, func(m EmailMessage, _ int) bool {
		return m.HasAttachments && m.AttachmentCount > 0 && !trashed.Contains(m.ID)
	})
	withFiles = s.normalize(withFiles)
	slices.SortStableFunc(withFiles, func(a, b EmailMessage) int {
		return cmp.Compare(b.Size(), a.Size())
	})
	return withFiles
}

func (s StatSelector) normalize(messages []EmailMessage) []EmailMessage {
	n := s.normalizer()
	out := make([]EmailMessage, 0, len(messages))
	for _, m := range messages {
		nm, ok := n.Normalize(m)
		if !ok || nm.SizeBytes == nil {
			continue
		}
		out = append(out, nm)
	}
	return out
}

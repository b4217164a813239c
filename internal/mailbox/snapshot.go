package mailbox

import (
	"context"
	"errors"
	"time"

	"github.com/teemow/inboxtriage/internal/triage"
)

// ErrNoSnapshot is returned when a source has no snapshot for an account.
var ErrNoSnapshot = errors.New("no mailbox snapshot available")

// Snapshot is the mailbox state of one account.
type Snapshot struct {
	Account string

	// Messages are the current messages shown in folder views.
	Messages []triage.EmailMessage

	// History is the categorized message history used for smart folder
	// counts. It may be a superset of Messages.
	History []triage.EmailMessage

	Senders []triage.Sender
	Starred triage.IDSet
	Trashed triage.IDSet

	FetchedAt time.Time
}

// Source produces mailbox snapshots.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Snapshot fetches the current snapshot for account.
	Snapshot(ctx context.Context, account string) (*Snapshot, error)
}

// Categorize assigns a category to every message and history entry that
// has none yet. Existing categories are kept.
func (s *Snapshot) Categorize(c *triage.Classifier) {
	for i := range s.Messages {
		if s.Messages[i].Category == triage.CategoryNone {
			s.Messages[i].Category = c.ClassifyMessage(s.Messages[i])
		}
	}
	for i := range s.History {
		if s.History[i].Category == triage.CategoryNone {
			s.History[i].Category = c.ClassifyMessage(s.History[i])
		}
	}
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// LabelSet collects the ids of messages carrying label.
func LabelSet(messages []triage.EmailMessage, label string) triage.IDSet {
	set := triage.NewIDSet()
	for _, m := range messages {
		if m.HasLabel(label) {
			set.Add(m.ID)
		}
	}
	return set
}

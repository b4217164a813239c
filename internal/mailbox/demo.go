package mailbox

import (
	"context"
	"slices"
	"time"

	"github.com/teemow/inboxtriage/internal/triage"
)

// DemoSource serves the built-in demo fixtures for every account.
type DemoSource struct{}

// Name implements Source.
func (DemoSource) Name() string { return "demo" }

// Snapshot implements Source.
func (DemoSource) Snapshot(ctx context.Context, account string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	demo := triage.Demo()
	return &Snapshot{
		Account:   account,
		Messages:  demo.Messages,
		History:   slices.Clone(demo.Messages),
		Senders:   demo.Senders,
		Starred:   LabelSet(demo.Messages, triage.LabelStarred),
		Trashed:   LabelSet(demo.Messages, triage.LabelTrash),
		FetchedAt: time.Now(),
	}, nil
}

package gmail

import (
	"context"
	"slices"
	"time"

	"github.com/samber/lo"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/inboxtriage/internal/google"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/triage"
)

// Defaults for SourceConfig.
const (
	DefaultMaxMessages = 500
	DefaultConcurrency = 8
)

// SourceConfig configures a Gmail mailbox source.
type SourceConfig struct {
	Tokens     google.TokenProvider
	Classifier *triage.Classifier

	// TrustedSenders lists trusted addresses and "@domain" entries.
	TrustedSenders []string

	// Query restricts the fetched messages, in Gmail search syntax.
	Query       string
	MaxMessages int64
	Concurrency int

	Logger logging.Logger
}

// Source reads mailbox snapshots from Gmail. It implements mailbox.Source.
type Source struct {
	cfg   SourceConfig
	trust TrustList

	newClient func(ctx context.Context, account string) (*Client, error)
	now       func() time.Time
}

// NewSource creates a Gmail source. Zero config values get defaults.
func NewSource(cfg SourceConfig) *Source {
	if cfg.Tokens == nil {
		cfg.Tokens = google.NewFileTokenProvider()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = triage.DefaultClassifier()
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	s := &Source{cfg: cfg, trust: NewTrustList(cfg.TrustedSenders), now: time.Now}
	s.newClient = func(ctx context.Context, account string) (*Client, error) {
		return NewClientForAccount(ctx, account, s.cfg.Tokens)
	}
	return s
}

// Name implements mailbox.Source.
func (s *Source) Name() string { return "gmail" }

// Snapshot implements mailbox.Source.
func (s *Source) Snapshot(ctx context.Context, account string) (*mailbox.Snapshot, error) {
	client, err := s.newClient(ctx, account)
	if err != nil {
		return nil, err
	}

	raw, err := client.FetchMessages(ctx, s.cfg.Query, s.cfg.MaxMessages, s.cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	infos := lo.Map(raw, func(m *gmail.Message, _ int) MessageInfo {
		info := ConvertMessage(m)
		info.Message.Category = s.cfg.Classifier.ClassifyMessage(info.Message)
		return info
	})
	messages := lo.Map(infos, func(i MessageInfo, _ int) triage.EmailMessage { return i.Message })
	senders := AggregateSenders(infos, s.trust)

	s.cfg.Logger.Debug("gmail snapshot built",
		logging.KeyAccount, account,
		logging.KeyCount, len(messages),
		"senders", len(senders))

	return &mailbox.Snapshot{
		Account:   account,
		Messages:  messages,
		History:   slices.Clone(messages),
		Senders:   senders,
		Starred:   mailbox.LabelSet(messages, triage.LabelStarred),
		Trashed:   mailbox.LabelSet(messages, triage.LabelTrash),
		FetchedAt: s.now(),
	}, nil
}

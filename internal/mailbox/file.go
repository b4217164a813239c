package mailbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teemow/inboxtriage/internal/triage"
)

// Document is the on-disk snapshot format. JSON documents are accepted
// as well, since JSON is valid YAML.
type Document struct {
	Account  string                `yaml:"account"`
	Messages []triage.EmailMessage `yaml:"messages"`
	History  []triage.EmailMessage `yaml:"history"`
	Senders  []triage.Sender       `yaml:"senders"`

	// Starred and Trashed add ids on top of the STARRED and TRASH labels.
	Starred []string `yaml:"starred"`
	Trashed []string `yaml:"trashed"`
}

// ParseDocument decodes a snapshot document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot document: %w", err)
	}
	return &doc, nil
}

// Snapshot converts the document into a snapshot. History defaults to
// Messages when the document has none.
func (d *Document) Snapshot(fetchedAt time.Time) *Snapshot {
	history := d.History
	if len(history) == 0 {
		history = d.Messages
	}

	starred := LabelSet(d.Messages, triage.LabelStarred)
	trashed := LabelSet(d.Messages, triage.LabelTrash)
	for _, id := range d.Starred {
		starred.Add(id)
	}
	for _, id := range d.Trashed {
		trashed.Add(id)
	}

	return &Snapshot{
		Account:   d.Account,
		Messages:  append([]triage.EmailMessage(nil), d.Messages...),
		History:   append([]triage.EmailMessage(nil), history...),
		Senders:   append([]triage.Sender(nil), d.Senders...),
		Starred:   starred,
		Trashed:   trashed,
		FetchedAt: fetchedAt,
	}
}

// FileSource reads snapshots from a document on disk. The file is
// re-read on every call.
type FileSource struct {
	Path string

	// Classifier fills in missing categories. Defaults to the built-in rules.
	Classifier *triage.Classifier

	now func() time.Time
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, classifier *triage.Classifier) *FileSource {
	return &FileSource{Path: path, Classifier: classifier, now: time.Now}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Snapshot implements Source. A document bound to a different account
// yields ErrNoSnapshot.
func (s *FileSource) Snapshot(ctx context.Context, account string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: file %s does not exist", ErrNoSnapshot, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	if doc.Account != "" && account != "" && doc.Account != account {
		return nil, fmt.Errorf("%w: %s holds account %q, not %q", ErrNoSnapshot, s.Path, doc.Account, account)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	snap := doc.Snapshot(now())
	if snap.Account == "" {
		snap.Account = account
	}

	classifier := s.Classifier
	if classifier == nil {
		classifier = triage.DefaultClassifier()
	}
	snap.Categorize(classifier)
	return snap, nil
}

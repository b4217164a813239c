package triage

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

// DemoFixtures is the static dataset shown in demo mode and whenever the
// live mailbox is empty.
type DemoFixtures struct {
	Messages     []EmailMessage `yaml:"messages"`
	Senders      []Sender       `yaml:"senders"`
	SmartFolders []SmartFolder  `yaml:"smart_folders"`
}

var (
	demoOnce     sync.Once
	demoFixtures DemoFixtures
)

// ParseDemoFixtures decodes a fixtures document.
func ParseDemoFixtures(data []byte) (DemoFixtures, error) {
	var f DemoFixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return DemoFixtures{}, fmt.Errorf("failed to decode demo fixtures: %w", err)
	}
	return f, nil
}

// Demo returns a copy of the embedded demo fixtures.
func Demo() DemoFixtures {
	demoOnce.Do(func() {
		f, err := ParseDemoFixtures(demoYAML)
		if err != nil {
			panic(err)
		}
		demoFixtures = f
	})
	return DemoFixtures{
		Messages:     slices.Clone(demoFixtures.Messages),
		Senders:      slices.Clone(demoFixtures.Senders),
		SmartFolders: slices.Clone(demoFixtures.SmartFolders),
	}
}

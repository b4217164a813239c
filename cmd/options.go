package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/gmail"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/triage"
)

// globalOptions are the flags every command understands. Flags win over
// the config file and the environment.
type globalOptions struct {
	configFile   string
	source       string
	snapshotFile string
	account      string
	demo         bool
	debug        bool
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "Path to a YAML config file. Can also use TRIAGE_CONFIG env var.")
	flags.StringVar(&o.source, "source", "", "Mailbox source: gmail, file or demo (default: gmail)")
	flags.StringVar(&o.snapshotFile, "snapshot", "", "Snapshot file for the file source (YAML or JSON)")
	flags.StringVar(&o.account, "account", "", "Account name (default: 'default'). Used to manage multiple mailboxes.")
	flags.BoolVar(&o.demo, "demo", false, "Use the built-in demo data")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

// loadConfig loads the config file and environment, then applies the
// flags that were set explicitly on cmd.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := o.configFile
	if path == "" {
		path = os.Getenv("TRIAGE_CONFIG")
	}

	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("snapshot") {
		cfg.SnapshotFile = o.snapshotFile
		if !flags.Changed("source") {
			cfg.Source = config.SourceFile
		}
	}
	if flags.Changed("account") {
		cfg.Account = o.account
	}
	if flags.Changed("demo") {
		cfg.DemoMode = o.demo
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// logger returns a text logger on w; stdout stays free for command output
// and the MCP stdio transport.
func (o *globalOptions) logger(w io.Writer) *slog.Logger {
	return logging.New(w, o.debug)
}

// newSource builds the mailbox source selected by cfg.
func newSource(cfg config.Config, classifier *triage.Classifier, logger *slog.Logger) (mailbox.Source, error) {
	switch cfg.EffectiveSource() {
	case config.SourceDemo:
		return mailbox.DemoSource{}, nil
	case config.SourceFile:
		return mailbox.NewFileSource(cfg.SnapshotFile, classifier), nil
	case config.SourceGmail:
		return gmail.NewSource(gmail.SourceConfig{
			Classifier:     classifier,
			TrustedSenders: cfg.TrustedSenders,
			MaxMessages:    cfg.MaxMessages,
			Logger:         logging.NewSlogAdapter(logging.WithSource(logger, config.SourceGmail)),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported source %q", cfg.Source)
	}
}

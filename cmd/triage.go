package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/config"
	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/mailbox"
	"github.com/teemow/inboxtriage/internal/triage"
)

// triageOptions are the flags shared by the triage subcommands.
type triageOptions struct {
	*globalOptions
	json bool
}

func newTriageCmd(globals *globalOptions) *cobra.Command {
	opts := &triageOptions{globalOptions: globals}

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Run the triage pipeline on a mailbox snapshot",
		Long: `Run one stage of the triage pipeline and print the result.

The snapshot comes from the configured source: Gmail (default), a snapshot
file (--snapshot) or the built-in demo data (--demo).`,
	}

	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	cmd.AddCommand(newCategorizeCmd(opts))
	cmd.AddCommand(newFolderCmd(opts))
	cmd.AddCommand(newSendersCmd(opts))
	cmd.AddCommand(newSmartFoldersCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))

	return cmd
}

// triageEnv is what every triage subcommand needs.
type triageEnv struct {
	opts       *triageOptions
	cfg        config.Config
	classifier *triage.Classifier
	out        io.Writer
}

func newTriageEnv(cmd *cobra.Command, opts *triageOptions) (*triageEnv, error) {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}
	return &triageEnv{opts: opts, cfg: cfg, classifier: classifier, out: cmd.OutOrStdout()}, nil
}

func (e *triageEnv) snapshot(cmd *cobra.Command) (*mailbox.Snapshot, error) {
	logger := e.opts.logger(cmd.ErrOrStderr())
	source, err := newSource(e.cfg, e.classifier, logger)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := source.Snapshot(ctx, e.cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to load mailbox for account %s: %w", e.cfg.Account, err)
	}
	logger.Debug("snapshot loaded",
		logging.Source(source.Name()),
		logging.Account(e.cfg.Account),
		logging.Count(len(snap.Messages)))
	return snap, nil
}

func (e *triageEnv) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *triageEnv) table(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func newCategorizeCmd(opts *triageOptions) *cobra.Command {
	var subject, snippet, from string

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Classify an email by subject, snippet and sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" && snippet == "" && from == "" {
				return fmt.Errorf("at least one of --subject, --snippet or --from is required")
			}
			env, err := newTriageEnv(cmd, opts)
			if err != nil {
				return err
			}

			category := env.classifier.Classify(subject, snippet, from)
			if env.opts.json {
				return env.printJSON(map[string]any{
					"category": category,
					"matched":  category != triage.CategoryNone,
				})
			}
			if category == triage.CategoryNone {
				fmt.Fprintln(env.out, "(none)")
				return nil
			}
			fmt.Fprintln(env.out, category)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&snippet, "snippet", "", "Short preview of the email body")
	cmd.Flags().StringVar(&from, "from", "", "Sender display name and/or address")
	return cmd
}

func newFolderCmd(opts *triageOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "folder [folder]",
		Short: "List the messages of a folder",
		Long: fmt.Sprintf(`List the messages of a folder, optionally narrowed by --query.

Folders: %s. Unknown folders behave like inbox.`, strings.Join(enumStrings(triage.AllFolders), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := triage.FolderInbox
			if len(args) == 1 {
				folder = triage.Folder(args[0])
			}

			env, err := newTriageEnv(cmd, opts)
			if err != nil {
				return err
			}
			snap, err := env.snapshot(cmd)
			if err != nil {
				return err
			}

			messages := snap.Folder(folder, query)
			if env.opts.json {
				return env.printJSON(messages)
			}

			w := env.table("ID", "DATE", "FROM", "SUBJECT", "CATEGORY", "READ")
			for _, m := range messages {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
					m.ID, formatDate(m), truncate(m.From, 32), truncate(m.Subject, 48), m.Category, m.IsRead)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search over subject, sender and snippet")
	return cmd
}

func newSendersCmd(opts *triageOptions) *cobra.Command {
	var filter, search, sortBy string

	cmd := &cobra.Command{
		Use:   "senders",
		Short: "List senders by noise, volume, size or engagement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := triage.NewSenderView()
			if filter != "" {
				view.Filter = triage.SenderFilter(filter)
				if !slices.Contains(triage.AllSenderFilters, view.Filter) {
					return fmt.Errorf("unknown filter %q (valid: %s)", filter, strings.Join(enumStrings(triage.AllSenderFilters), ", "))
				}
			}
			if sortBy != "" {
				view.Sort = triage.SenderSort(sortBy)
				if !slices.Contains(triage.AllSenderSorts, view.Sort) {
					return fmt.Errorf("unknown sort %q (valid: %s)", sortBy, strings.Join(enumStrings(triage.AllSenderSorts), ", "))
				}
			}
			view.Search = search

			env, err := newTriageEnv(cmd, opts)
			if err != nil {
				return err
			}
			snap, err := env.snapshot(cmd)
			if err != nil {
				return err
			}

			senders := view.Senders(snap.Senders)
			if env.opts.json {
				return env.printJSON(senders)
			}

			w := env.table("EMAIL", "NAME", "EMAILS", "SIZE", "NOISE", "ENGAGEMENT", "FLAGS")
			for _, s := range senders {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.0f%%\t%s\n",
					s.Email, truncate(s.DisplayName, 24), s.EmailCount, formatBytes(s.TotalSize),
					formatNoise(s.NoiseScore), s.EngagementRate, senderFlags(s))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Filter: "+strings.Join(enumStrings(triage.AllSenderFilters), ", ")+" (default: all)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text matched against sender name or address")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort: "+strings.Join(enumStrings(triage.AllSenderSorts), ", ")+" (default: noise)")
	return cmd
}

func newSmartFoldersCmd(opts *triageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "smart-folders",
		Short: "Show the smart folders derived from the mailbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newTriageEnv(cmd, opts)
			if err != nil {
				return err
			}
			snap, err := env.snapshot(cmd)
			if err != nil {
				return err
			}

			folders := snap.SmartFolders(env.cfg.DemoMode)
			if env.opts.json {
				return env.printJSON(folders)
			}

			w := env.table("ID", "NAME", "COUNT", "QUERY")
			for _, f := range folders {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.ID, f.Name, f.Count, f.Query)
			}
			return w.Flush()
		},
	}
}

func newStatsCmd(opts *triageOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "stats <unread|noise|files>",
		Short:     "Show the data behind a dashboard statistic",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: enumStrings(triage.AllStatTypes),
		RunE: func(cmd *cobra.Command, args []string) error {
			stat := triage.StatType(args[0])

			env, err := newTriageEnv(cmd, opts)
			if err != nil {
				return err
			}
			snap, err := env.snapshot(cmd)
			if err != nil {
				return err
			}

			data := snap.Stats(stat, env.cfg.DemoMode)
			if env.opts.json {
				return env.printJSON(data)
			}

			switch stat {
			case triage.StatNoise:
				w := env.table("EMAIL", "NAME", "NOISE", "EMAILS")
				for _, s := range data.NoisySenders {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.Email, truncate(s.DisplayName, 24), formatNoise(s.NoiseScore), s.EmailCount)
				}
				return w.Flush()
			case triage.StatUnread:
				fmt.Fprintf(env.out, "%d unread\n", data.UnreadCount)
				return env.printMessages(data.UnreadEmails)
			case triage.StatFiles:
				fmt.Fprintf(env.out, "%d with attachments\n", data.FilesCount)
				return env.printMessages(data.EmailsWithFiles)
			}
			return nil
		},
	}
}

func (e *triageEnv) printMessages(messages []triage.EmailMessage) error {
	w := e.table("ID", "FROM", "SUBJECT", "SIZE")
	for _, m := range messages {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, truncate(m.From, 32), truncate(m.Subject, 48), formatBytes(m.Size()))
	}
	return w.Flush()
}

func enumStrings[T ~string](values []T) []string {
	return lo.Map(values, func(v T, _ int) string { return string(v) })
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDate(m triage.EmailMessage) string {
	if m.Date.IsZero() {
		return "-"
	}
	return m.Date.Format("2006-01-02")
}

func formatNoise(score *float64) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *score)
}

func formatBytes(n int64) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "kMGTPE"[exp])
}

func senderFlags(s triage.Sender) string {
	var flags []string
	if s.IsMarketing {
		flags = append(flags, "marketing")
	}
	if s.IsTrusted {
		flags = append(flags, "trusted")
	}
	if s.HasUnsubscribe {
		flags = append(flags, "unsubscribe")
	}
	return strings.Join(flags, ",")
}

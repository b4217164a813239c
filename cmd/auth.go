package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/inboxtriage/internal/google"
)

func newAuthCmd(globals *globalOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read-only Gmail access for an account",
		Long: `Authorize read-only Gmail access for an account (--account, default 'default').

Without --code, prints the authorization URL. Open it, grant access and run
the command again with the code Google shows:

  inboxtriage auth --account work
  inboxtriage auth --account work --code 4/0Ab...

Client credentials come from GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.
Tokens are stored under ` + google.CacheDir() + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account := globals.account
			if account == "" {
				account = google.DefaultAccount
			}
			out := cmd.OutOrStdout()

			if code != "" {
				if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
					return fmt.Errorf("failed to save token for account %s: %w", account, err)
				}
				fmt.Fprintf(out, "Token saved for account %s\n", account)
				return nil
			}

			if google.HasTokenForAccount(account) {
				fmt.Fprintf(out, "Account %s is already authorized. Pass --code to replace its token.\n", account)
				return nil
			}

			fmt.Fprintf(out, "Visit this URL to authorize account %s:\n\n  %s\n\n", account, google.GetAuthURL(account))
			fmt.Fprintf(out, "Then run: inboxtriage auth --account %s --code <code>\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code returned by Google")
	return cmd
}

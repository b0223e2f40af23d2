package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"iggraph/pkg/instagram"
	"iggraph/pkg/token"
	"iggraph/pkg/ui"
)

func newTokenCmd(a *app) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage stored access tokens",
		Long: `Manage long-lived Graph API access tokens.

Tokens are stored per profile in the system keychain. IGGRAPH_ACCESS_TOKEN is
used as a read-only fallback when no keychain entry exists.`,
	}

	var verify bool
	setCmd := &cobra.Command{
		Use:   "set [access-token]",
		Short: "Store an access token for the current profile",
		Long: `Store an access token for the current profile. When the token is not
given as an argument it is read from the terminal without echo.`,
		Example: `  iggraph token set
  iggraph token set --verify --profile work`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			var accessToken string
			if len(args) > 0 {
				accessToken = strings.TrimSpace(args[0])
			} else {
				var err error
				if accessToken, err = readToken(cmd); err != nil {
					return err
				}
			}
			if accessToken == "" {
				return token.ErrInvalidToken
			}

			cred := &token.Credential{
				Profile:     a.cfg.Graph.Profile,
				AccessToken: accessToken,
				SavedAt:     time.Now(),
			}

			if verify {
				c := a.newClient(a.cfg, a.log)
				c.SetAccessToken(accessToken)
				resp, err := c.GetUser(cmd.Context(), instagram.MeID)
				if err != nil {
					return fmt.Errorf("token verification failed: %w", err)
				}
				cred.UserID = resp.Body.ID
				ui.PrintInfo(cmd.ErrOrStderr(), "Verified", "@"+resp.Body.Username)
			}

			if err := a.tokens.Set(cred); err != nil {
				return err
			}

			a.log.InfoWithFields("access token stored", map[string]interface{}{
				"token": token.Mask(accessToken),
			})
			ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Token stored for profile %q", cred.Profile))
			return nil
		},
	}
	setCmd.Flags().BoolVar(&verify, "verify", false, "fetch /me with the token before storing it")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored token for the current profile, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			cred, err := a.tokens.Get(a.cfg.Graph.Profile)
			if err != nil {
				return err
			}
			masked := cred.Masked()

			return a.render(cmd.OutOrStdout(), masked, func() string {
				var b strings.Builder
				ui.PrintInfo(&b, "Profile", masked.Profile)
				ui.PrintInfo(&b, "Token", masked.AccessToken)
				if masked.UserID != "" {
					ui.PrintInfo(&b, "User ID", masked.UserID)
				}
				if !masked.SavedAt.IsZero() {
					ui.PrintInfo(&b, "Saved", masked.SavedAt.Format(time.RFC3339))
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete the stored token for the current profile",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			profile := a.cfg.Graph.Profile
			if err := a.tokens.Delete(profile); err != nil {
				if errors.Is(err, token.ErrNotFound) {
					ui.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("No token stored for profile %q", profile))
					return nil
				}
				return err
			}

			ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Token deleted for profile %q", profile))
			return nil
		},
	}

	tokenCmd.AddCommand(setCmd, showCmd, deleteCmd)
	return tokenCmd
}

// readToken reads a token without echo from a terminal, or a line from any other input
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

package main

import (
	"github.com/spf13/cobra"

	"iggraph/pkg/instagram"
	"iggraph/pkg/ui"
)

func newUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "user [user-id]",
		Short: "Show a user profile",
		Long: `Fetch a user node. Without an argument the user owning the access token
is shown.`,
		Example: `  iggraph user
  iggraph user 17841400000000000 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := instagram.MeID
			if len(args) > 0 {
				userID = args[0]
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			resp, err := c.GetUser(cmd.Context(), userID)
			if err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), resp.Body, func() string {
				return ui.RenderUser(resp.Body)
			})
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"iggraph/pkg/instagram"
	"iggraph/pkg/ui"
)

func newMediaCmd(a *app) *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Browse media objects",
	}

	var opts instagram.MediaListOptions
	listCmd := &cobra.Command{
		Use:   "list [user-id]",
		Short: "List one page of a user's media",
		Long: `List one page of a user's media edge. Use the cursor printed after the
table with --after to fetch the following page.`,
		Example: `  iggraph media list --limit 10
  iggraph media list me --after QVFIUk...`,
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

			resp, err := c.GetMediaList(cmd.Context(), userID, opts)
			if err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), resp.Body, func() string {
				return ui.RenderMediaList(resp.Body)
			})
		},
	}
	listCmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "page size (default from config, max 100)")
	listCmd.Flags().StringVar(&opts.After, "after", "", "cursor of the page to continue after")
	listCmd.Flags().StringVar(&opts.Before, "before", "", "cursor of the page to continue before")
	listCmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "media fields to request")
	listCmd.MarkFlagsMutuallyExclusive("after", "before")

	getCmd := &cobra.Command{
		Use:   "get <media-id>",
		Short: "Show a single media object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			resp, err := c.GetMedia(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), resp.Body, func() string {
				return ui.RenderMedia(resp.Body)
			})
		},
	}

	mediaCmd.AddCommand(listCmd, getCmd)
	return mediaCmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"socialmedia/internal/platform"
)

func newStatsCmd(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show platform totals and the most endorsed posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			stats := a.svc.Stats(ctx)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Metric", "Value"})
			table.SetAutoWrapText(false)
			table.AppendBulk([][]string{
				{"Accounts", strconv.Itoa(stats.Accounts)},
				{"Original posts", strconv.Itoa(stats.OriginalPosts)},
				{"Comments", strconv.Itoa(stats.Comments)},
				{"Endorsements", strconv.Itoa(stats.Endorsements)},
				{"Most endorsed post", idOrNone(stats.MostEndorsedPost)},
				{"Most endorsed account", idOrNone(stats.MostEndorsedAccount)},
			})
			table.Render()

			if top <= 0 {
				return nil
			}
			entries, err := a.svc.Leaderboard(ctx, top)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			color.New(color.Bold, color.FgHiMagenta).Fprintln(out, "Leaderboard")
			board := tablewriter.NewWriter(out)
			board.SetHeader([]string{"#", "Post", "Endorsements"})
			for i, e := range entries {
				board.Append([]string{strconv.Itoa(i + 1), strconv.Itoa(e.PostID), strconv.Itoa(e.Endorsements)})
			}
			board.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 5, "Leaderboard size, 0 to hide")
	return cmd
}

func idOrNone(id int) string {
	if id == platform.NoneFound {
		return "none"
	}
	return strconv.Itoa(id)
}

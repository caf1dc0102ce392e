package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage accounts",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <handle>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.svc.CreateAccount(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			a.changed()
			printCreated(cmd.OutOrStdout(), "account", id)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Account description")

	show := &cobra.Command{
		Use:   "show <handle>",
		Short: "Show an account summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.svc.ShowAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	var byID bool
	remove := &cobra.Command{
		Use:     "rm <handle>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an account and every post it authored",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if byID {
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				err = a.svc.RemoveAccountByID(cmd.Context(), id)
			} else {
				err = a.svc.RemoveAccount(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s\n", args[0])
			return nil
		},
	}
	remove.Flags().BoolVar(&byID, "id", false, "Treat the argument as an account id")

	rename := &cobra.Command{
		Use:   "rename <handle> <new-handle>",
		Short: "Change an account's handle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.ChangeAccountHandle(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
			return nil
		},
	}

	describe := &cobra.Command{
		Use:   "describe <handle> <description>",
		Short: "Replace an account's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.UpdateAccountDescription(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts := a.svc.Accounts(cmd.Context())
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "🤷 No accounts")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Handle", "Posts", "Endorsements"})
			table.SetAutoWrapText(false)
			for _, acc := range accounts {
				table.Append([]string{
					strconv.Itoa(acc.ID),
					acc.Handle,
					strconv.Itoa(acc.Posts),
					strconv.Itoa(acc.Endorsements),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(create, show, remove, rename, describe, list)
	return cmd
}

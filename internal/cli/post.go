package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"socialmedia/internal/service"
)

func newPostCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Aliases: []string{"posts"},
		Short:   "Manage posts, comments and endorsements",
	}

	create := &cobra.Command{
		Use:   "create <handle> <message>",
		Short: "Create an original post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.svc.CreatePost(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.changed()
			printCreated(cmd.OutOrStdout(), "post", id)
			return nil
		},
	}

	comment := &cobra.Command{
		Use:   "comment <handle> <post-id> <message>",
		Short: "Comment on a post or comment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			id, err := a.svc.CommentPost(cmd.Context(), args[0], target, args[2])
			if err != nil {
				return err
			}
			a.changed()
			printCreated(cmd.OutOrStdout(), "comment", id)
			return nil
		},
	}

	endorse := &cobra.Command{
		Use:   "endorse <handle> <post-id>",
		Short: "Endorse a post or comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			id, err := a.svc.EndorsePost(cmd.Context(), args[0], target)
			if err != nil {
				return err
			}
			a.changed()
			printCreated(cmd.OutOrStdout(), "endorsement", id)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "rm <post-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a post; its comments move under the removed-content post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %d\n", id)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			text, err := a.svc.ShowIndividualPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	var compact bool
	tree := &cobra.Command{
		Use:   "tree <post-id>",
		Short: "Show a post with all of its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !compact {
				text, err := a.svc.ShowPostChildrenDetails(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				if !strings.HasSuffix(text, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			}

			root, err := a.svc.PostTree(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), compactTree(root))
			return nil
		},
	}
	tree.Flags().BoolVarP(&compact, "compact", "c", false, "One line per post")

	cmd.AddCommand(create, comment, endorse, remove, show, tree)
	return cmd
}

// compactTree renders one line per node: id, author, endorsements, message.
func compactTree(root *service.TreeNode) string {
	t := treeprint.NewWithRoot(nodeLabel(root))
	var add func(branch treeprint.Tree, n *service.TreeNode)
	add = func(branch treeprint.Tree, n *service.TreeNode) {
		for _, c := range n.Comments {
			if len(c.Comments) == 0 {
				branch.AddNode(nodeLabel(c))
				continue
			}
			add(branch.AddBranch(nodeLabel(c)), c)
		}
	}
	add(t, root)
	return t.String()
}

func nodeLabel(n *service.TreeNode) string {
	label := fmt.Sprintf("#%d %s", n.ID, color.New(color.Bold).Sprint("@"+n.Handle))
	if n.Endorsements > 0 {
		label += fmt.Sprintf(" (+%d)", n.Endorsements)
	}
	return label + ": " + strings.ReplaceAll(n.Message, "\n", " ")
}

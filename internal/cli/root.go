// Package cli implements platformctl, an offline console over a snapshot
// file. Each invocation loads the file, applies one command and writes the
// file back when the command changed the platform.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"socialmedia/internal/config"
	"socialmedia/internal/service"
	"socialmedia/internal/snapshot"
)

type app struct {
	file    string
	verbose bool

	svc   *service.PlatformService
	dirty bool
}

// NewRootCmd builds the command tree. defaultFile is used when --file is not
// given.
func NewRootCmd(defaultFile string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "platformctl [command] [flags]",
		Short:         "Inspect and edit a saved social platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.file, "file", "f", defaultFile, "Snapshot file to operate on")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show service logs")

	root.AddCommand(
		newInitCmd(a),
		newEraseCmd(a),
		newAccountCmd(a),
		newPostCmd(a),
		newStatsCmd(a),
	)
	return root
}

// Execute runs platformctl with os.Args and exits non-zero on failure.
func Execute() {
	cfg, _ := config.LoadConfig()
	root := NewRootCmd(cfg.SnapshotFile)

	if err := root.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgHiRed, color.Bold).Fprint(os.Stderr, "🚨 ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) open(ctx context.Context) error {
	if !a.verbose {
		log.SetOutput(io.Discard)
	}

	a.svc = service.NewPlatformService(nil, nil, snapshot.NewFileStore(a.file))
	if err := a.svc.Load(ctx); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("open %s: %w", a.file, err)
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	if !a.dirty {
		return nil
	}
	if err := a.svc.Save(ctx); err != nil {
		return fmt.Errorf("write %s: %w", a.file, err)
	}
	return nil
}

// changed marks the platform for writing once the command returns.
func (a *app) changed() {
	a.dirty = true
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Start over with only the admin account and the removed-content post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.svc.Reset(cmd.Context())
			a.changed()
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", a.file)
			return nil
		},
	}
}

func newEraseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "erase",
		Short: "Remove every account and post, the admin account included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.svc.Erase(cmd.Context())
			a.changed()
			fmt.Fprintln(cmd.OutOrStdout(), "Erased")
			return nil
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printCreated(out io.Writer, what string, id int) {
	fmt.Fprintf(out, "%s %s\n", color.New(color.FgHiGreen, color.Bold).Sprintf("✅ Created %s", what), strconv.Itoa(id))
}

// Package cli defines the command tree and translates flags into
// review requests.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prrkit/prr/internal/app"
)

// ErrVersionRequested indicates the user requested the version and no
// further work should be done.
var ErrVersionRequested = errors.New("version requested")

// ReviewRunner runs one review pass for a request.
type ReviewRunner interface {
	Run(ctx context.Context, req app.Request) error
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Runner  ReviewRunner
	Args    Arguments
	Version string
}

// NewRootCommand constructs the root cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prr",
		Short: "Pull request review pipeline",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reviewCommand(deps.Runner))
	root.AddCommand(checkSkipCommand())

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func reviewCommand(runner ReviewRunner) *cobra.Command {
	var req app.Request

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a pull request or local branch",
		Long: `Review a change set: normalize the diff, run the heuristic
checks and the AI pass, merge the comments and report the outcome.

With --pr the diff comes from the pull request and the review is
posted back to it; without --pr the diff comes from the local
repository and the review prints to stdout. --dry-run prints instead
of posting in either mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return errors.New("review runner not configured")
			}
			if req.PRNumber < 0 {
				return fmt.Errorf("--pr must be a positive integer")
			}
			if req.PRNumber == 0 && (req.PostStatus) {
				return fmt.Errorf("--post-status requires --pr")
			}
			return runner.Run(cmd.Context(), req)
		},
	}

	cmd.Flags().IntVar(&req.PRNumber, "pr", 0, "Pull request number to review")
	cmd.Flags().StringVar(&req.Owner, "owner", "", "Repository owner (defaults to config)")
	cmd.Flags().StringVar(&req.Repo, "repo", "", "Repository name (defaults to config)")
	cmd.Flags().StringVar(&req.BaseRef, "base", "", "Base reference for local diffs (defaults to config)")
	cmd.Flags().StringVar(&req.TargetRef, "target", "", "Target reference for local diffs (defaults to HEAD)")
	cmd.Flags().BoolVar(&req.DryRun, "dry-run", false, "Print the review instead of posting it")
	cmd.Flags().BoolVar(&req.JSONOutput, "json", false, "Emit the review as JSON on stdout")
	cmd.Flags().BoolVar(&req.NoAI, "no-ai", false, "Skip the AI review pass")
	cmd.Flags().BoolVar(&req.FailOnWarnings, "fail-on-warnings", false, "Treat warnings as blocking for the verdict")
	cmd.Flags().BoolVar(&req.FailOnComments, "fail-on-comments", false, "Exit non-zero when the review produced comments")
	cmd.Flags().BoolVar(&req.PostStatus, "post-status", false, "Submit the verdict as a pull request review")
	cmd.Flags().IntVar(&req.MaxComments, "max-comments", 0, "Cap on merged comments (0 uses config)")

	return cmd
}

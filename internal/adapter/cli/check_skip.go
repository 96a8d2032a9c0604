package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prrkit/prr/internal/usecase/skip"
)

// ErrShouldReview is returned when no skip marker is found, so CI
// wrappers can branch on the exit code.
var ErrShouldReview = errors.New("should review")

// checkSkipCommand creates the check-skip subcommand.
//
// Exit codes:
//   - 0: skip marker found, review should be skipped
//   - 1: no skip marker, review should proceed
func checkSkipCommand() *cobra.Command {
	var commitMessages []string
	var title string
	var description string

	cmd := &cobra.Command{
		Use:   "check-skip",
		Short: "Check whether the review should be skipped",
		Long: `Check commit messages and pull request metadata for skip markers.

Supported markers (case-insensitive, anywhere in the text):
  [skip code-review]
  [skip-code-review]

Exit codes:
  0 - marker found, skip the review
  1 - no marker, run the review`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := skip.Check(skip.Request{
				CommitMessages: commitMessages,
				Title:          title,
				Description:    description,
			})

			if result.ShouldSkip {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skip: %s\n", result.Reason)
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "review: no skip marker found")
			return ErrShouldReview
		},
	}

	cmd.Flags().StringArrayVar(&commitMessages, "commit-message", nil, "Commit message to check (can be repeated)")
	cmd.Flags().StringVar(&title, "title", "", "Pull request title to check")
	cmd.Flags().StringVar(&description, "description", "", "Pull request description to check")

	return cmd
}

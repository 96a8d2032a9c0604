package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prrkit/prr/internal/adapter/cli"
	"github.com/prrkit/prr/internal/app"
)

type recordingRunner struct {
	req    app.Request
	called bool
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, req app.Request) error {
	r.called = true
	r.req = req
	return r.err
}

func execute(t *testing.T, runner cli.ReviewRunner, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCommand(cli.Dependencies{
		Runner:  runner,
		Args:    cli.Arguments{OutWriter: &out, ErrWriter: &errOut},
		Version: "v1.2.3",
	})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoot_VersionFlag(t *testing.T) {
	out, _, err := execute(t, &recordingRunner{}, "--version")

	assert.ErrorIs(t, err, cli.ErrVersionRequested)
	assert.Contains(t, out, "v1.2.3")
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	out, _, err := execute(t, &recordingRunner{})

	require.NoError(t, err)
	assert.Contains(t, out, "Pull request review pipeline")
}

func TestReview_FlagMapping(t *testing.T) {
	runner := &recordingRunner{}

	_, _, err := execute(t, runner,
		"review",
		"--pr", "42",
		"--owner", "octocat",
		"--repo", "hello",
		"--dry-run",
		"--no-ai",
		"--fail-on-warnings",
		"--fail-on-comments",
		"--max-comments", "10",
	)

	require.NoError(t, err)
	require.True(t, runner.called)
	assert.Equal(t, 42, runner.req.PRNumber)
	assert.Equal(t, "octocat", runner.req.Owner)
	assert.Equal(t, "hello", runner.req.Repo)
	assert.True(t, runner.req.DryRun)
	assert.True(t, runner.req.NoAI)
	assert.True(t, runner.req.FailOnWarnings)
	assert.True(t, runner.req.FailOnComments)
	assert.Equal(t, 10, runner.req.MaxComments)
}

func TestReview_LocalModeFlags(t *testing.T) {
	runner := &recordingRunner{}

	_, _, err := execute(t, runner, "review", "--base", "main", "--target", "feature", "--json")

	require.NoError(t, err)
	assert.Zero(t, runner.req.PRNumber)
	assert.Equal(t, "main", runner.req.BaseRef)
	assert.Equal(t, "feature", runner.req.TargetRef)
	assert.True(t, runner.req.JSONOutput)
}

func TestReview_PostStatusRequiresPR(t *testing.T) {
	runner := &recordingRunner{}

	_, _, err := execute(t, runner, "review", "--post-status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--post-status requires --pr")
	assert.False(t, runner.called)
}

func TestReview_RunnerErrorPropagates(t *testing.T) {
	runner := &recordingRunner{err: app.ErrCommentsPresent}

	_, _, err := execute(t, runner, "review", "--fail-on-comments")

	assert.ErrorIs(t, err, app.ErrCommentsPresent)
}

func TestCheckSkip_MarkerFound(t *testing.T) {
	out, _, err := execute(t, nil, "check-skip", "--commit-message", "docs [skip code-review]")

	require.NoError(t, err)
	assert.Contains(t, out, "skip: commit message")
}

func TestCheckSkip_NoMarker(t *testing.T) {
	out, _, err := execute(t, nil, "check-skip", "--title", "feat: parser")

	assert.ErrorIs(t, err, cli.ErrShouldReview)
	assert.Contains(t, out, "no skip marker")
}

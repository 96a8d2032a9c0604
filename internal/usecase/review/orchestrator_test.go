package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/scan"
	"github.com/prrkit/prr/internal/usecase/merge"
	"github.com/prrkit/prr/internal/usecase/review"
)

type fakeDiffSource struct {
	diff string
	err  error
}

func (f *fakeDiffSource) GetDiff(ctx context.Context) (string, error) {
	return f.diff, f.err
}

type fakeAI struct {
	comments []domain.Comment
	gotDiff  string
	called   bool
}

func (f *fakeAI) Review(ctx context.Context, diffText string) []domain.Comment {
	f.called = true
	f.gotDiff = diffText
	return f.comments
}

func newOrchestrator(source review.DiffSource, ai review.AIReviewer) *review.Orchestrator {
	return review.NewOrchestrator(review.Deps{
		Diff:    source,
		Scanner: scan.NewScanner(scan.Config{FlagAnyType: true}),
		Merger:  merge.NewService(50),
		AI:      ai,
	})
}

func TestRun_MergesHeuristicAndAIComments(t *testing.T) {
	source := &fakeDiffSource{diff: "+++ b/app.js\n+console.log('x')\n"}
	ai := &fakeAI{comments: []domain.Comment{
		domain.NewComment(domain.CategoryTip, domain.SourceAI, "prefer structured logging"),
	}}

	result, err := newOrchestrator(source, ai).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Comments, 2)
	assert.Equal(t, domain.SourceHeuristic, result.Comments[0].Source)
	assert.Equal(t, domain.SourceAI, result.Comments[1].Source)
	assert.True(t, result.AIUsed)
	assert.Equal(t, 1, result.Stats.AddedLines)
	assert.Equal(t, "2 comments (1 warnings, 1 tips)", result.Summary)
}

func TestRun_NormalizesBeforeAnalysis(t *testing.T) {
	source := &fakeDiffSource{diff: "+++ b/app.js\r\n+debugger;\r\n"}
	ai := &fakeAI{}

	result, err := newOrchestrator(source, ai).Run(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, ai.gotDiff, "\r\n", "AI must receive the normalized diff")
	require.Len(t, result.Comments, 1)
	assert.Contains(t, result.Comments[0].Message, "debugger")
}

func TestRun_NilAIDisablesAnalysis(t *testing.T) {
	source := &fakeDiffSource{diff: "+clean\n"}

	result, err := newOrchestrator(source, nil).Run(context.Background())

	require.NoError(t, err)
	assert.False(t, result.AIUsed)
	assert.Empty(t, result.Comments)
}

func TestRun_AIUsedEvenWhenAIFindsNothing(t *testing.T) {
	source := &fakeDiffSource{diff: "+clean\n"}
	ai := &fakeAI{}

	result, err := newOrchestrator(source, ai).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, ai.called)
	assert.True(t, result.AIUsed)
}

func TestRun_DiffFailureIsFatal(t *testing.T) {
	source := &fakeDiffSource{err: errors.New("connection reset")}

	_, err := newOrchestrator(source, nil).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieve diff")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRun_EmptyDiff(t *testing.T) {
	source := &fakeDiffSource{diff: ""}

	result, err := newOrchestrator(source, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Comments)
	assert.Zero(t, result.Stats.AddedLines)
	assert.Zero(t, result.Stats.TotalLines)
	assert.Equal(t, "0 comments", result.Summary)
}

func TestRun_MissingDependencies(t *testing.T) {
	_, err := review.NewOrchestrator(review.Deps{}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diff source is required")

	_, err = review.NewOrchestrator(review.Deps{Diff: &fakeDiffSource{}}).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanner is required")
}

func TestRun_StatsIndependentOfCommentCap(t *testing.T) {
	source := &fakeDiffSource{diff: "+// TODO a\n+// TODO b\n+// TODO c\n"}
	orchestrator := review.NewOrchestrator(review.Deps{
		Diff:    source,
		Scanner: scan.NewScanner(scan.Config{}),
		Merger:  merge.NewService(1),
	})

	result, err := orchestrator.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, result.Comments, 1, "merger cap applies to comments")
	assert.Equal(t, 3, result.Stats.AddedLines, "stats ignore comment filtering")
}

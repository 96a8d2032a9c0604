// Package review orchestrates one full review pass: diff retrieval,
// normalization, the heuristic and AI analyses, merging and
// classification.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/prrkit/prr/internal/diff"
	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/scan"
	"github.com/prrkit/prr/internal/usecase/classify"
)

// DiffSource is the inbound port providing the raw diff text for one
// review pass.
type DiffSource interface {
	GetDiff(ctx context.Context) (string, error)
}

// Scanner runs the deterministic pattern checks over the normalized
// diff.
type Scanner interface {
	Scan(diffText string) scan.Result
}

// AIReviewer produces AI-origin comments for the normalized diff.
// Implementations degrade service failures into a synthetic comment and
// never fail the pass.
type AIReviewer interface {
	Review(ctx context.Context, diffText string) []domain.Comment
}

// Merger combines the heuristic and AI comment streams.
type Merger interface {
	Merge(ctx context.Context, heuristic, ai []domain.Comment) []domain.Comment
}

// Deps captures the collaborators for the orchestrator.
type Deps struct {
	Diff    DiffSource
	Scanner Scanner
	Merger  Merger
	AI      AIReviewer   // Optional: nil disables AI analysis
	Logger  *slog.Logger // Optional: structured logging
}

// Orchestrator executes the review pipeline.
type Orchestrator struct {
	deps Deps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps Deps) *Orchestrator {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Orchestrator{deps: deps}
}

func (o *Orchestrator) validateDependencies() error {
	if o.deps.Diff == nil {
		return errors.New("diff source is required")
	}
	if o.deps.Scanner == nil {
		return errors.New("scanner is required")
	}
	if o.deps.Merger == nil {
		return errors.New("merger is required")
	}
	// AI reviewer is optional
	return nil
}

// Run executes one review pass. The heuristic scan and the AI review
// have no data dependency on each other and run concurrently; neither
// contributes an error to the group, so Wait only observes context
// cancellation.
func (o *Orchestrator) Run(ctx context.Context) (domain.Result, error) {
	if err := o.validateDependencies(); err != nil {
		return domain.Result{}, err
	}

	raw, err := o.deps.Diff.GetDiff(ctx)
	if err != nil {
		return domain.Result{}, fmt.Errorf("retrieve diff: %w", err)
	}

	normalized := diff.Normalize(raw)
	stats := diff.ComputeStats(normalized)

	var (
		scanRes    scan.Result
		aiComments []domain.Comment
	)
	aiUsed := o.deps.AI != nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scanRes = o.deps.Scanner.Scan(normalized)
		return nil
	})
	if aiUsed {
		g.Go(func() error {
			aiComments = o.deps.AI.Review(gctx, normalized)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Result{}, err
	}

	o.deps.Logger.Debug("analysis complete",
		"heuristicComments", len(scanRes.Comments),
		"aiComments", len(aiComments),
		"addedLines", stats.AddedLines)

	result := domain.Result{
		Comments: o.deps.Merger.Merge(ctx, scanRes.Comments, aiComments),
		Stats:    stats,
		AIUsed:   aiUsed,
	}
	result.Summary = classify.Classify(result, false).SummaryLine()

	return result, nil
}

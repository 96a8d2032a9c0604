// Package app composes the review pipeline from configuration and
// routes its result to the console, a JSON stream or the pull request.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	gitadapter "github.com/prrkit/prr/internal/adapter/git"
	ghadapter "github.com/prrkit/prr/internal/adapter/github"
	"github.com/prrkit/prr/internal/adapter/llm/anthropic"
	"github.com/prrkit/prr/internal/adapter/llm/openai"
	jsonout "github.com/prrkit/prr/internal/adapter/output/json"
	"github.com/prrkit/prr/internal/ai"
	"github.com/prrkit/prr/internal/config"
	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/redaction"
	"github.com/prrkit/prr/internal/render"
	"github.com/prrkit/prr/internal/scan"
	"github.com/prrkit/prr/internal/usecase/classify"
	"github.com/prrkit/prr/internal/usecase/merge"
	"github.com/prrkit/prr/internal/usecase/review"
)

// ErrCommentsPresent signals that the review produced comments while
// fail-on-comments was requested. The host process maps it to its own
// exit code.
var ErrCommentsPresent = errors.New("review comments present")

// DiffSource provides the raw diff for one review pass.
type DiffSource interface {
	GetDiff(ctx context.Context) (string, error)
}

// CommentSink receives the review summary. It is the minimum a posting
// target must support.
type CommentSink interface {
	PostComment(ctx context.Context, body string) error
}

// InlineCommentSink is the optional capability of attaching comments to
// file locations. Sinks are feature-tested for it at runtime.
type InlineCommentSink interface {
	PostInlineComment(ctx context.Context, comment domain.Comment) error
}

// ReviewStatusSink is the optional capability of recording a review
// verdict.
type ReviewStatusSink interface {
	SetReviewStatus(ctx context.Context, status, body string) error
}

// GitHubGateway bundles what a pull request run needs from the hosting
// platform.
type GitHubGateway interface {
	DiffSource
	CommentSink
}

// Request carries the per-invocation settings from the CLI. Zero
// values defer to the configuration.
type Request struct {
	PRNumber  int
	Owner     string
	Repo      string
	BaseRef   string
	TargetRef string

	DryRun     bool
	JSONOutput bool
	NoAI       bool

	FailOnWarnings bool
	FailOnComments bool
	PostStatus     bool
	MaxComments    int
}

// Deps captures the collaborators for the runner. GitHub, Diff and
// Completer are optional; the runner builds the real adapters from the
// configuration when they are nil.
type Deps struct {
	Config     config.Config
	Out        io.Writer
	Logger     *slog.Logger
	GitHub     GitHubGateway
	Diff       DiffSource
	Completer  ai.Completer
	IsTerminal func() bool
}

// Runner executes review runs.
type Runner struct {
	deps Deps
}

// NewRunner constructs a runner, defaulting the output stream and
// logger.
func NewRunner(deps Deps) *Runner {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = review.IsOutputTerminal
	}
	return &Runner{deps: deps}
}

// Run executes one review pass and routes its output according to the
// request mode.
func (r *Runner) Run(ctx context.Context, req Request) error {
	cfg := r.applyOverrides(req)
	prMode := req.PRNumber > 0

	if err := cfg.Validate(prMode); err != nil {
		return err
	}

	source, sink, err := r.buildTarget(ctx, cfg, req, prMode)
	if err != nil {
		return err
	}

	reviewer, err := r.buildReviewer(cfg, req)
	if err != nil {
		return err
	}

	deps := review.Deps{
		Diff:    source,
		Scanner: scan.NewScanner(cfg.Scan),
		Merger:  merge.NewService(cfg.Review.MaxComments),
		Logger:  r.deps.Logger,
	}
	if reviewer != nil {
		deps.AI = reviewer
	}
	orchestrator := review.NewOrchestrator(deps)

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	classification := classify.Classify(result, cfg.Review.FailOnWarnings)
	focus := cfg.AI.Focus
	if !focus.Any() {
		focus = domain.DefaultFocus()
	}

	switch {
	case req.JSONOutput:
		err = r.writeJSON(result, reviewer, req)
	case prMode && !req.DryRun:
		err = r.publish(ctx, sink, classification, result.Comments, focus, cfg.Review.PostStatus)
	default:
		err = r.printConsole(classification, result.Comments, focus)
	}
	if err != nil {
		return err
	}

	if cfg.Review.FailOnComments && classification.Total > 0 {
		return fmt.Errorf("%w: %s", ErrCommentsPresent, classification.SummaryLine())
	}
	return nil
}

// applyOverrides folds request flags over the configuration. Flags win
// where set; booleans only ever tighten.
func (r *Runner) applyOverrides(req Request) config.Config {
	cfg := r.deps.Config
	if req.Owner != "" {
		cfg.GitHub.Owner = req.Owner
	}
	if req.Repo != "" {
		cfg.GitHub.Repo = req.Repo
	}
	if req.BaseRef != "" {
		cfg.Git.BaseRef = req.BaseRef
	}
	if req.TargetRef != "" {
		cfg.Git.TargetRef = req.TargetRef
	}
	if req.MaxComments > 0 {
		cfg.Review.MaxComments = req.MaxComments
	}
	cfg.Review.FailOnWarnings = cfg.Review.FailOnWarnings || req.FailOnWarnings
	cfg.Review.FailOnComments = cfg.Review.FailOnComments || req.FailOnComments
	cfg.Review.PostStatus = cfg.Review.PostStatus || req.PostStatus
	if req.NoAI {
		cfg.AI.Enabled = false
	}
	return cfg
}

func (r *Runner) buildTarget(ctx context.Context, cfg config.Config, req Request, prMode bool) (DiffSource, CommentSink, error) {
	if prMode {
		gateway := r.deps.GitHub
		if gateway == nil {
			gateway = ghadapter.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo, req.PRNumber, r.deps.Logger)
		}
		return gateway, gateway, nil
	}

	if r.deps.Diff != nil {
		return r.deps.Diff, nil, nil
	}
	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}
	return gitadapter.NewSource(repoDir, cfg.Git.BaseRef, cfg.Git.TargetRef), nil, nil
}

func (r *Runner) buildReviewer(cfg config.Config, req Request) (*ai.Reviewer, error) {
	if !cfg.AI.Enabled {
		return nil, nil
	}

	completer := r.deps.Completer
	if completer == nil {
		provider := cfg.Provider()
		switch cfg.AI.Provider {
		case config.ProviderAnthropic:
			completer = anthropic.NewClient(provider.APIKey)
		case config.ProviderOpenAI:
			completer = openai.NewClient(provider.APIKey)
		default:
			return nil, &config.ValidationError{Field: "ai.provider", Message: fmt.Sprintf("unknown provider %q", cfg.AI.Provider)}
		}
	}

	var redactor ai.Redactor
	if cfg.Redaction.Enabled {
		redactor = redaction.NewEngine()
	}

	return ai.NewReviewer(completer, redactor, ai.Config{
		Model:       cfg.Provider().Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Focus:       cfg.AI.Focus,
	}, r.deps.Logger), nil
}

func (r *Runner) writeJSON(result domain.Result, reviewer *ai.Reviewer, req Request) error {
	envelope := jsonout.Envelope{
		Summary:       result.Summary,
		Comments:      result.Comments,
		Stats:         result.Stats,
		AIUsed:        result.AIUsed,
		PullRequestID: req.PRNumber,
	}
	if reviewer != nil {
		envelope.Provider = reviewer.Provider()
	}
	return jsonout.NewWriter(r.deps.Out).Write(envelope)
}

// printConsole writes the summary block and the individual comment
// lines. On a terminal the verdict is colored.
func (r *Runner) printConsole(c classify.Classification, comments []domain.Comment, focus domain.Focus) error {
	block := render.Console(c, focus)
	if r.deps.IsTerminal() {
		block = colorizeStatus(block, c.Status)
	}
	if _, err := fmt.Fprint(r.deps.Out, block); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if len(comments) > 0 {
		if _, err := fmt.Fprintln(r.deps.Out); err != nil {
			return err
		}
		for _, comment := range comments {
			if _, err := fmt.Fprintln(r.deps.Out, render.CommentLine(comment)); err != nil {
				return err
			}
		}
	}
	return nil
}

func colorizeStatus(block, status string) string {
	colored := color.RedString(status)
	if status == classify.StatusApproved {
		colored = color.GreenString(status)
	}
	return strings.Replace(block, status, colored, 1)
}

// publish posts the review to the pull request: a summary comment,
// inline comments where the sink supports them, and optionally the
// review verdict. A failed inline comment is logged and skipped so one
// bad location cannot lose the rest of the review.
func (r *Runner) publish(ctx context.Context, sink CommentSink, c classify.Classification, comments []domain.Comment, focus domain.Focus, postStatus bool) error {
	if sink == nil {
		return errors.New("no comment sink configured")
	}

	inline, canInline := sink.(InlineCommentSink)

	var unplaced []domain.Comment
	for _, comment := range comments {
		if !canInline || !comment.Attributed() {
			unplaced = append(unplaced, comment)
		}
	}

	body := render.Markdown(c, focus)
	if len(unplaced) > 0 {
		var b strings.Builder
		b.WriteString(body)
		b.WriteString("\n### Findings\n\n")
		for _, comment := range unplaced {
			fmt.Fprintf(&b, "- %s\n", render.CommentLine(comment))
		}
		body = b.String()
	}

	if err := sink.PostComment(ctx, body); err != nil {
		return fmt.Errorf("post review summary: %w", err)
	}

	if canInline {
		for _, comment := range comments {
			if !comment.Attributed() {
				continue
			}
			if err := inline.PostInlineComment(ctx, comment); err != nil {
				r.deps.Logger.Warn("inline comment not posted",
					"file", comment.File, "line", comment.Line, "error", err)
			}
		}
	}

	if postStatus {
		if statusSink, ok := sink.(ReviewStatusSink); ok {
			if err := statusSink.SetReviewStatus(ctx, c.Status, c.SummaryLine()); err != nil {
				r.deps.Logger.Warn("review status not set", "status", c.Status, "error", err)
			}
		} else {
			r.deps.Logger.Warn("posting target does not support review statuses")
		}
	}

	return nil
}

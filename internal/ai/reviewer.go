// Package ai builds the policy-driven review prompt, calls a
// structured-completion service and parses its response into review
// comments.
package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prrkit/prr/internal/domain"
)

// maxDiffChars bounds the diff text sent to the completion service.
const maxDiffChars = 60000

// truncationMarker is appended when the diff exceeds maxDiffChars.
const truncationMarker = "\n\n[diff truncated]"

// Completer is the outbound port to a structured-completion service.
// Implementations make exactly one network call per Complete invocation
// and never retry.
type Completer interface {
	// Complete sends the system instruction and user content and
	// returns the raw response text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name identifies the provider for logging and the JSON envelope.
	Name() string
}

// CompletionRequest carries the prompt and sampling parameters for one
// service call.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Config controls the AI reviewer behavior.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Focus       domain.Focus
}

// Redactor masks secrets in text before it leaves the process.
type Redactor interface {
	Redact(input string) (string, error)
}

// Reviewer issues a single completion call per review pass.
//
// Failure policy: degrade gracefully. A service failure yields exactly
// one synthetic comment describing the failure and the pipeline
// continues; the reviewer never aborts the run.
type Reviewer struct {
	completer Completer
	redactor  Redactor
	cfg       Config
	logger    *slog.Logger
}

// NewReviewer constructs a reviewer. The redactor is optional; when nil
// the diff is sent unmodified.
func NewReviewer(completer Completer, redactor Redactor, cfg Config, logger *slog.Logger) *Reviewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{completer: completer, redactor: redactor, cfg: cfg, logger: logger}
}

// Provider returns the name of the underlying completion provider.
func (r *Reviewer) Provider() string {
	return r.completer.Name()
}

// Review sends the normalized diff for analysis and returns the parsed
// comments with source set to ai. A response without a well-formed
// array is a no-content outcome, not an error.
func (r *Reviewer) Review(ctx context.Context, diffText string) []domain.Comment {
	content := truncateDiff(diffText)

	if r.redactor != nil {
		redacted, err := r.redactor.Redact(content)
		if err != nil {
			return r.degrade(fmt.Errorf("redact diff: %w", err))
		}
		content = redacted
	}

	raw, err := r.completer.Complete(ctx, CompletionRequest{
		System:      buildSystemInstruction(r.cfg.Focus),
		User:        buildUserContent(content),
		Model:       r.cfg.Model,
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	})
	if err != nil {
		return r.degrade(err)
	}

	comments := parseComments(raw)
	r.logger.Debug("ai review completed",
		"provider", r.completer.Name(),
		"comments", len(comments))
	return comments
}

// degrade converts a service failure into the single synthetic comment
// the pipeline continues with.
func (r *Reviewer) degrade(err error) []domain.Comment {
	r.logger.Warn("ai review failed",
		"provider", r.completer.Name(),
		"error", err)
	return []domain.Comment{
		domain.NewComment(domain.CategoryError, domain.SourceAI,
			fmt.Sprintf("AI review failed: %v", err)),
	}
}

// truncateDiff bounds the diff at maxDiffChars, appending a marker when
// content was dropped.
func truncateDiff(diffText string) string {
	if len(diffText) <= maxDiffChars {
		return diffText
	}
	return diffText[:maxDiffChars] + truncationMarker
}

// Package github adapts the official go-github client to the review
// pipeline's ports: it serves the pull request diff and receives the
// summary, inline comments and review verdict.
package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/usecase/classify"
)

// Client operates on a single pull request. It implements the diff
// source port plus the full set of comment sink capabilities.
type Client struct {
	gh     *github.Client
	owner  string
	repo   string
	number int
	logger *slog.Logger

	headSHA string
}

// NewClient creates a client bound to one pull request, authenticated
// with a personal access token.
func NewClient(ctx context.Context, token, owner, repo string, number int, logger *slog.Logger) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		gh:     github.NewClient(tc),
		owner:  owner,
		repo:   repo,
		number: number,
		logger: logger,
	}
}

// NewClientWithBaseURL points the client at a different API endpoint
// (for testing).
func NewClientWithBaseURL(ctx context.Context, token, baseURL, owner, repo string, number int, logger *slog.Logger) (*Client, error) {
	c := NewClient(ctx, token, owner, repo, number, logger)
	gh, err := c.gh.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("set base URL: %w", err)
	}
	c.gh = gh
	return c, nil
}

// GetDiff retrieves the raw unified diff of the pull request.
func (c *Client) GetDiff(ctx context.Context) (string, error) {
	diff, _, err := c.gh.PullRequests.GetRaw(ctx, c.owner, c.repo, c.number, github.RawOptions{
		Type: github.Diff,
	})
	if err != nil {
		return "", fmt.Errorf("get pull request diff %s/%s#%d: %w", c.owner, c.repo, c.number, err)
	}
	return diff, nil
}

// PostComment posts a general comment on the pull request conversation.
func (c *Client) PostComment(ctx context.Context, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, c.number, comment)
	if err != nil {
		return fmt.Errorf("create comment on %s/%s#%d: %w", c.owner, c.repo, c.number, err)
	}
	return nil
}

// PostInlineComment attaches one review comment to the file and line a
// comment points at. The pull request head commit is resolved once and
// cached for the remaining calls.
func (c *Client) PostInlineComment(ctx context.Context, comment domain.Comment) error {
	sha, err := c.resolveHeadSHA(ctx)
	if err != nil {
		return err
	}

	prComment := &github.PullRequestComment{
		Body:     github.Ptr(comment.Message),
		CommitID: github.Ptr(sha),
		Path:     github.Ptr(comment.File),
		Line:     github.Ptr(comment.Line),
		Side:     github.Ptr("RIGHT"),
	}
	_, _, err = c.gh.PullRequests.CreateComment(ctx, c.owner, c.repo, c.number, prComment)
	if err != nil {
		return fmt.Errorf("create inline comment on %s at line %d: %w", comment.File, comment.Line, err)
	}
	return nil
}

// SetReviewStatus submits a review carrying the pipeline's verdict.
func (c *Client) SetReviewStatus(ctx context.Context, status, body string) error {
	review := &github.PullRequestReviewRequest{
		Event: github.Ptr(reviewEvent(status)),
	}
	if body != "" {
		review.Body = github.Ptr(body)
	}
	_, _, err := c.gh.PullRequests.CreateReview(ctx, c.owner, c.repo, c.number, review)
	if err != nil {
		return fmt.Errorf("create review on %s/%s#%d: %w", c.owner, c.repo, c.number, err)
	}
	return nil
}

// reviewEvent maps a classification status to a review event. Unknown
// statuses degrade to a plain comment review.
func reviewEvent(status string) string {
	switch status {
	case classify.StatusApproved:
		return "APPROVE"
	case classify.StatusChangesRequested:
		return "REQUEST_CHANGES"
	default:
		return "COMMENT"
	}
}

func (c *Client) resolveHeadSHA(ctx context.Context) (string, error) {
	if c.headSHA != "" {
		return c.headSHA, nil
	}
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, c.number)
	if err != nil {
		return "", fmt.Errorf("get pull request %s/%s#%d: %w", c.owner, c.repo, c.number, err)
	}
	if pr.GetHead() == nil || pr.GetHead().GetSHA() == "" {
		return "", fmt.Errorf("pull request %s/%s#%d has no head commit", c.owner, c.repo, c.number)
	}
	c.headSHA = pr.GetHead().GetSHA()
	c.logger.Debug("resolved pull request head", "sha", c.headSHA)
	return c.headSHA, nil
}

// Package classify derives the review outcome from a merged comment
// set: per-category counts and the approval status.
package classify

import (
	"fmt"
	"strings"

	"github.com/prrkit/prr/internal/domain"
)

// Review status values. CHANGES_REQUESTED maps to a blocking review on
// the hosting platform, APPROVED to a passing one.
const (
	StatusApproved         = "APPROVED"
	StatusChangesRequested = "CHANGES_REQUESTED"
)

// Classification summarizes one review result for rendering and for
// the process exit decision.
type Classification struct {
	Total      int
	Errors     int
	Warns      int
	Tips       int
	Notes      int
	Grammar    int
	AddedLines int
	AIUsed     bool
	Status     string
	HasIssues  bool
}

// Classify counts comments per category and decides the status:
// CHANGES_REQUESTED when at least one error is present, or when
// failOnWarnings is set and at least one error or warning is present;
// APPROVED otherwise. The decision ignores comment provenance.
func Classify(result domain.Result, failOnWarnings bool) Classification {
	c := Classification{
		Total:      len(result.Comments),
		AddedLines: result.Stats.AddedLines,
		AIUsed:     result.AIUsed,
	}

	for _, comment := range result.Comments {
		switch comment.Category {
		case domain.CategoryError:
			c.Errors++
		case domain.CategoryWarn:
			c.Warns++
		case domain.CategoryTip:
			c.Tips++
		case domain.CategoryNote:
			c.Notes++
		case domain.CategoryGrammar:
			c.Grammar++
		}
	}

	if c.Errors > 0 || (failOnWarnings && c.Warns > 0) {
		c.Status = StatusChangesRequested
		c.HasIssues = true
	} else {
		c.Status = StatusApproved
	}

	return c
}

// SummaryLine renders the one-line count breakdown stored on the
// review result.
func (c Classification) SummaryLine() string {
	if c.Total == 0 {
		return "0 comments"
	}

	parts := make([]string, 0, 5)
	appendCount := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	appendCount(c.Errors, "errors")
	appendCount(c.Warns, "warnings")
	appendCount(c.Tips, "tips")
	appendCount(c.Notes, "notes")
	appendCount(c.Grammar, "grammar")

	return fmt.Sprintf("%d comments (%s)", c.Total, strings.Join(parts, ", "))
}

// Count returns the stored count for a category.
func (c Classification) Count(category domain.Category) int {
	switch category {
	case domain.CategoryError:
		return c.Errors
	case domain.CategoryWarn:
		return c.Warns
	case domain.CategoryTip:
		return c.Tips
	case domain.CategoryNote:
		return c.Notes
	case domain.CategoryGrammar:
		return c.Grammar
	default:
		return 0
	}
}

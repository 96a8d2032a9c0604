// Package render produces the human-readable review summaries: a
// fixed-width block for terminals and CI logs, and a markdown form for
// the hosting platform. Both are pure functions; callers route the
// strings to their sink.
package render

import (
	"fmt"
	"strings"

	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/usecase/classify"
)

// categoryOrder fixes the rendering order of the per-category lines.
var categoryOrder = []domain.Category{
	domain.CategoryError,
	domain.CategoryWarn,
	domain.CategoryTip,
	domain.CategoryNote,
	domain.CategoryGrammar,
}

// Console renders the fixed-width CLI summary block. Per-category lines
// appear only for enabled focus switches. A review without comments
// yields the short no-issues variant.
func Console(c classify.Classification, focus domain.Focus) string {
	var b strings.Builder

	b.WriteString("Review Summary\n")
	b.WriteString(strings.Repeat("-", 30))
	b.WriteString("\n")

	if c.Total == 0 {
		b.WriteString("No issues found.\n")
		fmt.Fprintf(&b, "%-14s %d\n", "Added lines:", c.AddedLines)
		fmt.Fprintf(&b, "%-14s %s\n", "AI analysis:", yesNo(c.AIUsed))
		fmt.Fprintf(&b, "%-14s %s\n", "Status:", c.Status)
		return b.String()
	}

	fmt.Fprintf(&b, "%-14s %d\n", "Comments:", c.Total)
	for _, category := range categoryOrder {
		if !focus.Enabled(category) {
			continue
		}
		fmt.Fprintf(&b, "%-14s %d\n", categoryLabel(category)+":", c.Count(category))
	}
	fmt.Fprintf(&b, "%-14s %d\n", "Added lines:", c.AddedLines)
	fmt.Fprintf(&b, "%-14s %s\n", "AI analysis:", yesNo(c.AIUsed))
	fmt.Fprintf(&b, "%-14s %s\n", "Status:", c.Status)

	return b.String()
}

// CommentLine renders one comment for dry-run output. Attributed
// comments carry their location prefix.
func CommentLine(comment domain.Comment) string {
	if comment.File == "" {
		return comment.Message
	}
	if comment.Line > 0 {
		return fmt.Sprintf("%s:%d  %s", comment.File, comment.Line, comment.Message)
	}
	return fmt.Sprintf("%s  %s", comment.File, comment.Message)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

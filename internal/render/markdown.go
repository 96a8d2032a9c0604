package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/usecase/classify"
)

var titleCaser = cases.Title(language.English)

// categoryLabel derives the plural display label from the category's
// wire value, e.g. WARN -> "Warnings". GRAMMAR stays uncountable and
// WARN pluralizes irregularly.
func categoryLabel(category domain.Category) string {
	title := titleCaser.String(strings.ToLower(string(category)))
	switch category {
	case domain.CategoryWarn:
		return "Warnings"
	case domain.CategoryGrammar:
		return title
	default:
		return title + "s"
	}
}

// Markdown renders the platform-flavored summary: a heading, the
// per-category bullet list gated by focus switches, and a bold closing
// status line. The zero-comment case replaces the bullet list with a
// short celebratory message.
func Markdown(c classify.Classification, focus domain.Focus) string {
	var b strings.Builder

	b.WriteString("## Code Review\n\n")

	if c.Total == 0 {
		b.WriteString("No issues found. Great work! :tada:\n\n")
	} else {
		fmt.Fprintf(&b, "- **Comments:** %d\n", c.Total)
		for _, category := range categoryOrder {
			if !focus.Enabled(category) {
				continue
			}
			fmt.Fprintf(&b, "- **%s:** %d\n", categoryLabel(category), c.Count(category))
		}
		fmt.Fprintf(&b, "- **Added lines:** %d\n", c.AddedLines)
		fmt.Fprintf(&b, "- **AI analysis:** %s\n", yesNo(c.AIUsed))
		b.WriteString("\n")
	}

	if c.Status == classify.StatusChangesRequested {
		b.WriteString("**Changes Requested**\n")
	} else {
		b.WriteString("**Approved**\n")
	}

	return b.String()
}

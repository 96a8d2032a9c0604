package ai

import (
	"fmt"
	"strings"

	"github.com/prrkit/prr/internal/domain"
)

// focusInstructions describe what each category covers. Only the blocks
// for enabled focus switches are sent to the service.
var focusInstructions = []struct {
	category domain.Category
	text     string
}{
	{domain.CategoryError, "ERROR: bugs, broken logic, unhandled failure paths, security problems or data loss in the added code."},
	{domain.CategoryWarn, "WARN: risky patterns, leftover debug statements, missing error handling, likely-unintended behavior."},
	{domain.CategoryTip, "TIP: simpler or more idiomatic alternatives, readability and maintainability improvements."},
	{domain.CategoryNote, "NOTE: neutral observations worth recording, such as follow-up work or documentation gaps."},
	{domain.CategoryGrammar, "GRAMMAR: spelling and grammar mistakes in comments, strings and documentation."},
}

const genericInstruction = "Report only meaningful issues in the added code; skip style nitpicks that a formatter would fix."

// buildSystemInstruction composes the review policy sent as the system
// message: one category description per enabled focus switch, the output
// schema and the attribution rules.
func buildSystemInstruction(focus domain.Focus) string {
	var b strings.Builder

	b.WriteString("You are a strict but pragmatic code reviewer analyzing a unified diff from a pull request.\n\n")
	b.WriteString("Look for the following kinds of issues:\n")

	var enabled int
	for _, instruction := range focusInstructions {
		if !focus.Enabled(instruction.category) {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", instruction.text)
		enabled++
	}
	if enabled == 0 {
		fmt.Fprintf(&b, "- %s\n", genericInstruction)
	}

	b.WriteString(`
Respond with a JSON array only, no prose and no markdown fence. Each element:
{"file": "path/to/file", "line": 12, "type": "ERROR|WARN|TIP|NOTE|GRAMMAR", "message": "what is wrong and how to fix it"}

Attribution rules:
- "file" is the path from the most recent "+++ b/..." diff header.
- "line" is the line number in the new file: take the start of the most recent "@@" hunk header and count added and context lines from there. Omit "line" if you cannot determine it.
- Comment only on added lines (starting with "+"). Never comment on removed code.
- Return [] when you find no issues.`)

	return b.String()
}

// buildUserContent wraps the possibly-truncated diff as the user
// message.
func buildUserContent(diffText string) string {
	return "Review the following diff:\n\n" + diffText
}

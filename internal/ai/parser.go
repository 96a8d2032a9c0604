package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/prrkit/prr/internal/domain"
)

// rawComment mirrors the schema the completion service is constrained
// to. The response is untrusted structured data and every field is
// validated before use.
type rawComment struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// fencePattern extracts a payload wrapped in a markdown code fence,
// which some models add despite instructions.
var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// parseComments turns the raw response text into review comments.
// A response without a well-formed JSON array yields nil: shape
// mismatches are content-level failures, never crashes. Entries with an
// empty message are dropped; unknown types fall back to NOTE; a line
// without a file is discarded to keep the attribution pair invariant.
func parseComments(raw string) []domain.Comment {
	payload := strings.TrimSpace(raw)
	if matches := fencePattern.FindStringSubmatch(payload); len(matches) > 1 {
		payload = strings.TrimSpace(matches[1])
	}

	var entries []rawComment
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil
	}

	comments := make([]domain.Comment, 0, len(entries))
	for _, entry := range entries {
		message := strings.TrimSpace(entry.Message)
		if message == "" {
			continue
		}
		category, _ := domain.ParseCategory(entry.Type)
		comments = append(comments, domain.NewLocatedComment(
			category, domain.SourceAI,
			strings.TrimSpace(entry.File), entry.Line,
			message))
	}
	if len(comments) == 0 {
		return nil
	}
	return comments
}

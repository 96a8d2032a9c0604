// Package skip detects opt-out markers that let authors bypass the
// review for a change, for example documentation-only commits.
package skip

import (
	"regexp"
	"strings"
)

// triggerPattern matches [skip code-review] or [skip-code-review],
// case-insensitive.
var triggerPattern = regexp.MustCompile(`(?i)\[skip[ -]code-review\]`)

// ContainsTrigger reports whether text carries a skip marker.
func ContainsTrigger(text string) bool {
	return triggerPattern.MatchString(text)
}

// Request carries the texts to inspect for skip markers.
type Request struct {
	CommitMessages []string
	Title          string
	Description    string
}

// Result names where a marker was found, if anywhere.
type Result struct {
	ShouldSkip bool
	Reason     string
}

// Check inspects commit messages, then the title, then the
// description, and reports the first marker found.
func Check(req Request) Result {
	for _, msg := range req.CommitMessages {
		if ContainsTrigger(msg) {
			return Result{ShouldSkip: true, Reason: "commit message"}
		}
	}
	if ContainsTrigger(strings.TrimSpace(req.Title)) {
		return Result{ShouldSkip: true, Reason: "title"}
	}
	if ContainsTrigger(req.Description) {
		return Result{ShouldSkip: true, Reason: "description"}
	}
	return Result{}
}

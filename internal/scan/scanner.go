// Package scan implements the deterministic heuristic pass over a
// normalized unified diff. Every rule is a pure content check on added
// lines; the scanner carries no state between calls and attributes no
// file or line locations.
package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prrkit/prr/internal/diff"
	"github.com/prrkit/prr/internal/domain"
)

// largeChangeThreshold is the added-line count above which the scanner
// appends a split-this-change warning.
const largeChangeThreshold = 500

var (
	debuggerPattern = regexp.MustCompile(`\bdebugger\b;?`)
	anyTypePattern  = regexp.MustCompile(`\bany\b`)
)

// Config toggles the optional scanner rules.
type Config struct {
	// FlagAnyType enables the rule that discourages the permissive
	// `any` type annotation.
	FlagAnyType bool `mapstructure:"flagAnyType"`
}

// Result holds the scanner output for one diff.
type Result struct {
	Comments   []domain.Comment
	AddedLines int
}

// Scanner runs the pattern rules over added diff lines.
type Scanner struct {
	cfg Config
}

// NewScanner constructs a scanner with the given rule configuration.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan walks the normalized diff line by line. File headers are
// skipped; every remaining line starting with '+' counts as an added
// line and is tested against each rule independently, so one line can
// produce multiple comments. Identical input always yields identical
// output, in line order of first match.
func (s *Scanner) Scan(diffText string) Result {
	var res Result

	for _, line := range strings.Split(diffText, "\n") {
		if diff.IsMetadataLine(line) {
			continue
		}
		if !strings.HasPrefix(line, "+") {
			continue
		}
		res.AddedLines++

		content := line[1:]
		trimmed := strings.TrimSpace(content)

		if strings.Contains(strings.ToUpper(content), "TODO") {
			res.Comments = append(res.Comments, domain.NewComment(
				domain.CategoryWarn, domain.SourceHeuristic,
				fmt.Sprintf("Avoid TODOs in production code: `%s`", trimmed)))
		}
		if strings.Contains(content, "console.log") {
			res.Comments = append(res.Comments, domain.NewComment(
				domain.CategoryWarn, domain.SourceHeuristic,
				fmt.Sprintf("Debug statement found, remove before merge: `%s`", trimmed)))
		}
		if debuggerPattern.MatchString(content) {
			res.Comments = append(res.Comments, domain.NewComment(
				domain.CategoryError, domain.SourceHeuristic,
				"debugger statement found – remove before merge."))
		}
		if s.cfg.FlagAnyType && anyTypePattern.MatchString(content) {
			res.Comments = append(res.Comments, domain.NewComment(
				domain.CategoryTip, domain.SourceHeuristic,
				fmt.Sprintf("Avoid the `any` type, prefer a specific type: `%s`", trimmed)))
		}
	}

	if res.AddedLines > largeChangeThreshold {
		res.Comments = append(res.Comments, domain.NewComment(
			domain.CategoryWarn, domain.SourceHeuristic,
			fmt.Sprintf("Large change: %d added lines. Consider splitting this into smaller pull requests.", res.AddedLines)))
	}

	return res
}

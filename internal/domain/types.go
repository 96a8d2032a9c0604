package domain

import (
	"fmt"
	"strings"
)

// Category classifies a review comment. The category is stored as
// structured data at creation time; the rendered message text still
// carries the bracketed tag for display.
type Category string

const (
	CategoryError   Category = "ERROR"
	CategoryWarn    Category = "WARN"
	CategoryTip     Category = "TIP"
	CategoryNote    Category = "NOTE"
	CategoryGrammar Category = "GRAMMAR"
)

// ParseCategory maps a structured type string from an external service
// onto a Category. Matching is case-insensitive. The second return value
// reports whether the input named a known category.
func ParseCategory(value string) (Category, bool) {
	switch Category(strings.ToUpper(strings.TrimSpace(value))) {
	case CategoryError:
		return CategoryError, true
	case CategoryWarn:
		return CategoryWarn, true
	case CategoryTip:
		return CategoryTip, true
	case CategoryNote:
		return CategoryNote, true
	case CategoryGrammar:
		return CategoryGrammar, true
	default:
		return CategoryNote, false
	}
}

// Source identifies the provenance of a comment. It is set at creation
// and never mutated afterwards.
type Source string

const (
	SourceHeuristic Source = "heuristic"
	SourceAI        Source = "ai"
)

// Comment represents a single review finding.
//
// File and Line are optional and form a pair: a line number is only
// meaningful when the origin could attribute a file as well. Message is
// never empty and begins with the bracketed category tag.
type Comment struct {
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Source   Source   `json:"source"`
}

// NewComment constructs an unattributed comment whose message carries
// the bracketed category tag.
func NewComment(category Category, source Source, text string) Comment {
	return Comment{
		Category: category,
		Source:   source,
		Message:  fmt.Sprintf("[%s] %s", category, text),
	}
}

// NewLocatedComment constructs a comment attributed to a file and,
// when line is positive, a 1-based line in the new version of that file.
// A line without a file is discarded to keep the pair invariant.
func NewLocatedComment(category Category, source Source, file string, line int, text string) Comment {
	c := NewComment(category, source, text)
	if file == "" {
		return c
	}
	c.File = file
	if line > 0 {
		c.Line = line
	}
	return c
}

// Attributed reports whether the comment carries a file location.
func (c Comment) Attributed() bool {
	return c.File != "" && c.Line > 0
}

// Stats captures raw diff metrics computed once from the normalized
// diff, independent of any comment filtering.
type Stats struct {
	AddedLines int `json:"addedLines"`
	TotalLines int `json:"totalLines"`
}

// Result is the outcome of one full review pass. Comments hold
// heuristic-origin entries first, then AI-origin entries that survived
// deduplication, truncated to the configured cap.
type Result struct {
	Comments []Comment `json:"comments"`
	Summary  string    `json:"summary"`
	Stats    Stats     `json:"stats"`
	AIUsed   bool      `json:"aiUsed"`
}

// Focus selects which comment categories the AI reviewer emphasizes and
// which category counts the summary reports.
type Focus struct {
	Errors  bool `mapstructure:"errors"`
	Warn    bool `mapstructure:"warn"`
	Tips    bool `mapstructure:"tips"`
	Notes   bool `mapstructure:"notes"`
	Grammar bool `mapstructure:"grammar"`
}

// DefaultFocus returns the default focus switches: errors, warnings and
// tips on; notes and grammar off.
func DefaultFocus() Focus {
	return Focus{Errors: true, Warn: true, Tips: true}
}

// Enabled reports whether the focus switch for the category is on.
func (f Focus) Enabled(category Category) bool {
	switch category {
	case CategoryError:
		return f.Errors
	case CategoryWarn:
		return f.Warn
	case CategoryTip:
		return f.Tips
	case CategoryNote:
		return f.Notes
	case CategoryGrammar:
		return f.Grammar
	default:
		return false
	}
}

// Any reports whether at least one focus switch is enabled.
func (f Focus) Any() bool {
	return f.Errors || f.Warn || f.Tips || f.Notes || f.Grammar
}

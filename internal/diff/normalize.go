package diff

import (
	"strings"

	"github.com/prrkit/prr/internal/domain"
)

// Metadata prefixes that mark diff structure rather than file content.
const (
	prefixNewFile = "+++"
	prefixOldFile = "---"
	prefixHeader  = "diff "
)

// Normalize canonicalizes line endings, replacing every CRLF pair with
// a bare LF. LF-only input is returned unchanged; empty input yields
// empty output.
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// IsMetadataLine reports whether a diff line is structural metadata
// (file headers) rather than changed content.
func IsMetadataLine(line string) bool {
	return strings.HasPrefix(line, prefixNewFile) ||
		strings.HasPrefix(line, prefixOldFile) ||
		strings.HasPrefix(line, prefixHeader)
}

// ComputeStats counts total lines and added lines in a normalized diff.
// An added line starts with '+' and is not a file header. A trailing
// newline does not count as an extra line.
func ComputeStats(text string) domain.Stats {
	if text == "" {
		return domain.Stats{}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	stats := domain.Stats{TotalLines: len(lines)}
	for _, line := range lines {
		if IsMetadataLine(line) {
			continue
		}
		if strings.HasPrefix(line, "+") {
			stats.AddedLines++
		}
	}
	return stats
}

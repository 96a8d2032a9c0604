// Package merge combines the heuristic and AI comment streams into the
// final ordered comment sequence.
package merge

import (
	"context"

	"github.com/prrkit/prr/internal/domain"
)

// DefaultMaxComments caps the merged comment count when no explicit
// limit is configured.
const DefaultMaxComments = 50

// Service implements the comment merging logic.
type Service struct {
	maxComments int
}

// NewService creates a merge service with the given comment cap.
// Non-positive caps fall back to DefaultMaxComments.
func NewService(maxComments int) *Service {
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}
	return &Service{maxComments: maxComments}
}

// Merge starts from the heuristic sequence in its original order, then
// appends each AI comment whose message is not already present verbatim
// in the accumulated sequence. The result is truncated to the configured
// cap; truncation only drops a suffix, never reorders.
func (s *Service) Merge(ctx context.Context, heuristic, ai []domain.Comment) []domain.Comment {
	merged := make([]domain.Comment, 0, len(heuristic)+len(ai))
	seen := make(map[string]bool, len(heuristic)+len(ai))

	for _, comment := range heuristic {
		merged = append(merged, comment)
		seen[comment.Message] = true
	}

	for _, comment := range ai {
		if seen[comment.Message] {
			continue
		}
		seen[comment.Message] = true
		merged = append(merged, comment)
	}

	if len(merged) > s.maxComments {
		merged = merged[:s.maxComments]
	}
	return merged
}

// Package json emits the machine-readable review envelope for
// scripting and CI integration.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prrkit/prr/internal/domain"
)

// Envelope is the full machine-readable result of one review run.
type Envelope struct {
	Summary       string           `json:"summary"`
	Comments      []domain.Comment `json:"comments"`
	Stats         domain.Stats     `json:"stats"`
	AIUsed        bool             `json:"aiUsed"`
	Provider      string           `json:"provider,omitempty"`
	PullRequestID int              `json:"pullRequestId,omitempty"`
}

// Writer serializes envelopes to a stream.
type Writer struct {
	out io.Writer
}

// NewWriter creates a writer targeting out, typically stdout.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write emits the envelope as indented JSON in a single write, so a
// failed run never leaves a partial document on the stream.
func (w *Writer) Write(envelope Envelope) error {
	if envelope.Comments == nil {
		envelope.Comments = []domain.Comment{}
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode review envelope: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("write review envelope: %w", err)
	}
	return nil
}

package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prrkit/prr/internal/diff"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "lf only unchanged", input: "+a\n-b\n", want: "+a\n-b\n"},
		{name: "crlf replaced", input: "+a\r\n-b\r\n", want: "+a\n-b\n"},
		{name: "mixed endings", input: "+a\r\n-b\n c\r\n", want: "+a\n-b\n c\n"},
		{name: "bare cr preserved", input: "+a\rb\n", want: "+a\rb\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, diff.Normalize(tc.input))
		})
	}
}

func TestComputeStats(t *testing.T) {
	input := strings.Join([]string{
		"diff --git a/main.go b/main.go",
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,3 +1,4 @@",
		" unchanged",
		"-removed",
		"+added one",
		"+added two",
	}, "\n") + "\n"

	stats := diff.ComputeStats(input)

	assert.Equal(t, 2, stats.AddedLines, "file headers must not count as additions")
	assert.Equal(t, 8, stats.TotalLines, "trailing newline must not add a line")
}

func TestComputeStats_Empty(t *testing.T) {
	stats := diff.ComputeStats("")
	assert.Zero(t, stats.AddedLines)
	assert.Zero(t, stats.TotalLines)
}

func TestComputeStats_NoAdditions(t *testing.T) {
	stats := diff.ComputeStats("--- a/x\n+++ b/x\n-gone\n context\n")
	assert.Zero(t, stats.AddedLines)
	assert.Equal(t, 4, stats.TotalLines)
}

// Package redaction masks secrets in diff text before it is sent to a
// completion provider.
package redaction

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// rule pairs a secret pattern with a label used in its placeholder.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

// Engine performs regex-based secret detection and replacement.
type Engine struct {
	rules []rule
}

// NewEngine creates a redaction engine with the default secret rules.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules()}
}

// Redact replaces every detected secret with a stable placeholder. The
// placeholder embeds a short hash so repeated occurrences of the same
// secret stay correlated without revealing it.
func (e *Engine) Redact(input string) (string, error) {
	result := input
	for _, r := range e.rules {
		result = r.pattern.ReplaceAllStringFunc(result, func(match string) string {
			return placeholder(r.name, match)
		})
	}
	return result, nil
}

// IsRedacted reports whether content already contains placeholders.
func (e *Engine) IsRedacted(content string) bool {
	return strings.Contains(content, "<REDACTED:")
}

func placeholder(name, secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return fmt.Sprintf("<REDACTED:%s:%s>", name, hex.EncodeToString(hash[:])[:8])
}

func defaultRules() []rule {
	specs := []struct {
		name    string
		pattern string
	}{
		{"anthropic", `sk-ant-[a-zA-Z0-9\-]{20,}`},
		{"openai", `sk-[a-zA-Z0-9]{20,}`},
		{"github", `gh[posr]_[a-zA-Z0-9]{20,}`},
		{"aws-key-id", `AKIA[0-9A-Z]{16}`},
		{"google", `AIza[0-9A-Za-z\-_]{35}`},
		{"jwt", `eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`},
		{"private-key", `-----BEGIN\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----[\s\S]*?-----END\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----`},
		{"slack", `xox[baprs]-[a-zA-Z0-9\-]{10,}`},
		{"bearer", `Bearer\s+[a-zA-Z0-9_\-\.]+`},
	}

	rules := make([]rule, 0, len(specs))
	for _, spec := range specs {
		rules = append(rules, rule{name: spec.name, pattern: regexp.MustCompile(spec.pattern)})
	}
	return rules
}

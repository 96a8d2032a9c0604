// Package config defines the application configuration and its
// file/environment loader.
package config

import (
	"fmt"
	"strings"

	"github.com/prrkit/prr/internal/domain"
	"github.com/prrkit/prr/internal/scan"
)

// Supported completion providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config represents the full application configuration.
type Config struct {
	GitHub    GitHubConfig              `mapstructure:"github"`
	Git       GitConfig                 `mapstructure:"git"`
	AI        AIConfig                  `mapstructure:"ai"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Scan      scan.Config               `mapstructure:"scan"`
	Review    ReviewConfig              `mapstructure:"review"`
	Redaction RedactionConfig           `mapstructure:"redaction"`
	Logging   LoggingConfig             `mapstructure:"logging"`
}

// GitHubConfig holds the pull request target and credentials.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
}

// GitConfig configures the local repository diff source.
type GitConfig struct {
	RepositoryDir string `mapstructure:"repositoryDir"`
	BaseRef       string `mapstructure:"baseRef"`
	TargetRef     string `mapstructure:"targetRef"`
}

// AIConfig configures the AI review pass.
type AIConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	Provider    string       `mapstructure:"provider"`
	Temperature float64      `mapstructure:"temperature"`
	MaxTokens   int          `mapstructure:"maxTokens"`
	Focus       domain.Focus `mapstructure:"focus"`
}

// ProviderConfig configures a single completion provider.
type ProviderConfig struct {
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"apiKey"`
}

// ReviewConfig configures merge limits and outcome policy.
type ReviewConfig struct {
	MaxComments    int  `mapstructure:"maxComments"`
	FailOnWarnings bool `mapstructure:"failOnWarnings"`
	FailOnComments bool `mapstructure:"failOnComments"`
	PostStatus     bool `mapstructure:"postStatus"`
}

// RedactionConfig toggles secret masking of outbound diffs.
type RedactionConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ValidationError describes a configuration value that fails
// validation. It maps to the configuration-error exit code.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Provider returns the configuration of the selected provider.
func (c Config) Provider() ProviderConfig {
	return c.Providers[c.AI.Provider]
}

// Validate checks the configuration for a run. requireGitHub is set
// when the run targets a pull request rather than a local repository.
func (c Config) Validate(requireGitHub bool) error {
	if requireGitHub {
		if c.GitHub.Token == "" {
			return &ValidationError{Field: "github.token", Message: "token is required (set PRR_GITHUB_TOKEN)"}
		}
		if c.GitHub.Owner == "" {
			return &ValidationError{Field: "github.owner", Message: "repository owner is required"}
		}
		if c.GitHub.Repo == "" {
			return &ValidationError{Field: "github.repo", Message: "repository name is required"}
		}
	}

	if c.AI.Enabled {
		switch c.AI.Provider {
		case ProviderAnthropic, ProviderOpenAI:
		default:
			return &ValidationError{Field: "ai.provider", Message: fmt.Sprintf("unknown provider %q", c.AI.Provider)}
		}
		provider := c.Provider()
		// An unexpanded ${VAR} placeholder means the variable was
		// never set.
		if provider.APIKey == "" || strings.HasPrefix(provider.APIKey, "${") {
			return &ValidationError{Field: fmt.Sprintf("providers.%s.apiKey", c.AI.Provider), Message: "api key is required when AI review is enabled"}
		}
		if provider.Model == "" {
			return &ValidationError{Field: fmt.Sprintf("providers.%s.model", c.AI.Provider), Message: "model is required when AI review is enabled"}
		}
	}

	if c.Review.MaxComments < 0 {
		return &ValidationError{Field: "review.maxComments", Message: "must not be negative"}
	}

	return nil
}

// Package config loads the optional user config file. Everything has a
// usable default; the file only overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/smartquiz/internal/quiz"
	"github.com/abhisek/smartquiz/internal/session"
)

// FileName is the config file name under the config directory.
const FileName = "config.yaml"

// Config is the user-facing configuration document.
type Config struct {
	// Learner is the name printed on the summary card.
	Learner string `yaml:"learner"`

	// Topics pre-populates the topic picker on the setup screen.
	Topics []string `yaml:"topics"`

	// DefaultTopic is preselected at setup.
	DefaultTopic string `yaml:"default_topic"`

	// DefaultLevel is the starting difficulty (Beginner, Intermediate,
	// Advanced).
	DefaultLevel string `yaml:"default_level"`

	// Questions is the default question count per attempt.
	Questions int `yaml:"questions"`

	// DurationMinutes is the default attempt length.
	DurationMinutes int `yaml:"duration_minutes"`

	// Provider overrides the LLM provider selection ("groq", "openai",
	// "anthropic", "gemini"). Empty defers to the environment.
	Provider string `yaml:"provider"`

	// Model overrides the selected provider's model.
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Learner: "Learner",
		Topics: []string{
			"General Knowledge",
			"Science",
			"History",
			"Geography",
			"Computer Science",
		},
		DefaultTopic:    "General Knowledge",
		DefaultLevel:    string(quiz.LevelBeginner),
		Questions:       10,
		DurationMinutes: 10,
	}
}

// Load reads the config file at path, overlaying it on the defaults. A
// missing file returns the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DefaultLevel != "" && !quiz.Level(c.DefaultLevel).Valid() {
		return fmt.Errorf("unknown default_level %q", c.DefaultLevel)
	}
	if c.Questions != 0 && (c.Questions < session.MinQuestions || c.Questions > session.MaxQuestions) {
		return fmt.Errorf("questions %d out of range [%d, %d]", c.Questions, session.MinQuestions, session.MaxQuestions)
	}
	if c.DurationMinutes != 0 {
		d := time.Duration(c.DurationMinutes) * time.Minute
		if d < session.MinDuration || d > session.MaxDuration {
			return fmt.Errorf("duration_minutes %d out of range", c.DurationMinutes)
		}
	}
	return nil
}

// Duration returns the default attempt length.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// DefaultPath resolves the config file location: SMARTQUIZ_CONFIG, then
// $XDG_CONFIG_HOME/smartquiz/config.yaml, then ~/.config/smartquiz/.
func DefaultPath() (string, error) {
	if p := os.Getenv("SMARTQUIZ_CONFIG"); p != "" {
		return p, nil
	}
	confHome := os.Getenv("XDG_CONFIG_HOME")
	if confHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		confHome = filepath.Join(home, ".config")
	}
	return filepath.Join(confHome, "smartquiz", FileName), nil
}

package play

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartquiz/internal/config"
	"github.com/abhisek/smartquiz/internal/quiz"
)

func TestSetupFormDefaultsFromConfig(t *testing.T) {
	f := newSetupForm(config.Default())

	cfg, err := f.AttemptConfig()
	require.NoError(t, err)
	assert.Equal(t, "Learner", cfg.Learner)
	assert.Equal(t, "General Knowledge", cfg.Topic)
	assert.Equal(t, quiz.LevelBeginner, cfg.Level)
	assert.Equal(t, 10, cfg.Questions)
	assert.Equal(t, 10*time.Minute, cfg.Duration)
}

func TestSetupFormRejectsEmptyTopic(t *testing.T) {
	conf := config.Default()
	conf.DefaultTopic = ""
	f := newSetupForm(conf)

	_, err := f.AttemptConfig()
	assert.Error(t, err)
}

func TestSetupFormLevelFromConfig(t *testing.T) {
	conf := config.Default()
	conf.DefaultLevel = "Advanced"
	f := newSetupForm(conf)

	cfg, err := f.AttemptConfig()
	require.NoError(t, err)
	assert.Equal(t, quiz.LevelAdvanced, cfg.Level)
}

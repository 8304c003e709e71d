package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/eartrainer/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := Load("")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("info", c.Log.Level)
	assert.Equal(":8080", c.Server.Addr)
	assert.Equal(100*time.Millisecond, c.Exercise.CadencePause)
	assert.Equal(120.0, c.Playback.Tempo)
	assert.Equal(model.CadenceAlways, c.ExerciseSettings().PlayCadence)
}

func TestEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EARTRAINER_EXERCISE_PLAY_CADENCE", "ONLY_ON_REPEAT")
	t.Setenv("EARTRAINER_PLAYBACK_TEMPO", "90")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, model.CadenceOnlyOnRepeat, c.ExerciseSettings().PlayCadence)
	assert.Equal(t, 90.0, c.Playback.Tempo)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := "log:\n  level: debug\n  format: json\nexercise:\n  play_cadence: \"false\"\n  cadence_pause: 250ms\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 250*time.Millisecond, c.Exercise.CadencePause)
	assert.Equal(t, model.CadenceNever, c.ExerciseSettings().PlayCadence)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidValuesAreRejected(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("EARTRAINER_EXERCISE_PLAY_CADENCE", "sometimes")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("EARTRAINER_EXERCISE_PLAY_CADENCE", "true")
	t.Setenv("EARTRAINER_LOG_LEVEL", "loud")
	_, err = Load("")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger(LogConfig{Level: "nonsense", Format: "text"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+)
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rook-computer/diceroller/internal/dice"
)

func validConfig() Config {
	return Config{
		Roll:    RollConfig{Count: 2, Sides: 6, Frames: 12, FrameDelay: 45 * time.Millisecond},
		History: HistoryConfig{Size: 15},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Display: DisplayConfig{Device: "/dev/fb0", FPS: 30},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dice.Spec{Count: 2, Sides: 6}, cfg.Spec())
	assert.Equal(t, 12, cfg.Roll.Frames)
	assert.Equal(t, 45*time.Millisecond, cfg.Roll.FrameDelay)
	assert.Equal(t, 15, cfg.History.Size)
	assert.Empty(t, cfg.Web.Listen)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diceroller.yaml")
	content := `
roll:
  count: 4
  sides: 20
  frame_delay: 10ms
history:
  size: 5
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DICEROLLER_ROLL_SIDES", "12")
	t.Setenv("DICEROLLER_WEB_LISTEN", ":8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dice.Spec{Count: 4, Sides: 12}, cfg.Spec(), "env overrides the file")
	assert.Equal(t, 10*time.Millisecond, cfg.Roll.FrameDelay)
	assert.Equal(t, 5, cfg.History.Size)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Web.Listen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Roll.Count = 0
	cfg.History.Size = 0
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roll:")
	assert.Contains(t, err.Error(), "history.size")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidate_DieCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(-50, 50).Draw(rt, "count")
		cfg := validConfig()
		cfg.Roll.Count = count
		err := cfg.Validate()
		if count >= 1 && count <= 20 {
			assert.NoError(rt, err)
		} else {
			assert.Error(rt, err)
		}
	})
}

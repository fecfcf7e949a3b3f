package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/config"
	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/session"
)

// LoadPresets reads the quick-roll list from path, or returns the built-in
// list when path is empty.
func LoadPresets(path string) ([]dice.Preset, error) {
	if path == "" {
		return dice.DefaultPresets, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()
	presets, err := dice.LoadPresets(f)
	if err != nil {
		return nil, fmt.Errorf("load presets %s: %w", path, err)
	}
	return presets, nil
}

// NewSource returns a reproducible source for a non-zero seed and a crypto
// source otherwise.
func NewSource(seed int64) dice.Source {
	if seed != 0 {
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}

// NewSession builds the roll session controller described by cfg. Zero
// frames or delay in the configuration mean none, not the defaults.
func NewSession(cfg config.Config, listener session.Listener, logger *zap.Logger) (*session.Controller, error) {
	presets, err := LoadPresets(cfg.Presets.File)
	if err != nil {
		return nil, err
	}
	frames := cfg.Roll.Frames
	if frames == 0 {
		frames = -1
	}
	delay := cfg.Roll.FrameDelay
	if delay == 0 {
		delay = -1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return session.New(session.Options{
		Spec:        cfg.Spec(),
		FrameCount:  frames,
		FrameDelay:  delay,
		HistorySize: cfg.History.Size,
		Presets:     presets,
		Source:      NewSource(cfg.Roll.Seed),
		Logger:      logger.Named("session"),
		Listener:    listener,
	})
}

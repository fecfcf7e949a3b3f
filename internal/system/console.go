// Package system wraps the device console: KD graphics mode, cursor hiding
// and stdio redirection.
package system

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// DefaultConsolePaths are tried in order: the active VT, then tty0.
var DefaultConsolePaths = []string{"/dev/tty", "/dev/tty0"}

const (
	hideCursorSeq = "\x1b[?25l"
	showCursorSeq = "\x1b[?25h"
)

// Console switches the active virtual terminal between text and graphics
// mode so the framebuffer is not overdrawn by the blinking cursor.
type Console struct {
	Paths  []string
	Logger *zap.Logger
}

func NewConsole(logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{Paths: DefaultConsolePaths, Logger: logger.Named("tty")}
}

// EnterGraphics sets KD_GRAPHICS and hides the cursor. Failures are logged
// and returned; callers treat them as best-effort.
func (c *Console) EnterGraphics() error {
	err := setKDMode(c.Paths, kdGraphics)
	if err != nil {
		c.Logger.Warn("KD_GRAPHICS failed", zap.Error(err))
	} else {
		c.Logger.Info("KD_GRAPHICS set")
	}
	if cerr := c.writeVT(hideCursorSeq); cerr != nil {
		c.Logger.Warn("hide cursor failed", zap.Error(cerr))
		err = errors.Join(err, cerr)
	}
	return err
}

// Restore shows the cursor and returns the console to KD_TEXT.
func (c *Console) Restore() error {
	err := c.writeVT(showCursorSeq)
	if err != nil {
		c.Logger.Warn("show cursor failed", zap.Error(err))
	}
	if kerr := setKDMode(c.Paths, kdText); kerr != nil {
		c.Logger.Warn("KD_TEXT failed", zap.Error(kerr))
		err = errors.Join(err, kerr)
	} else {
		c.Logger.Info("KD_TEXT set")
	}
	return err
}

func (c *Console) writeVT(s string) error {
	var lastErr error
	for _, p := range c.Paths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no console paths")
	}
	return fmt.Errorf("write VT: %w", lastErr)
}

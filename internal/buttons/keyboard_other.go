//go:build !linux

package buttons

import (
	"context"

	"go.uber.org/zap"
)

const DefaultInputGlob = ""

// Keyboard has no evdev source outside Linux and never delivers events.
type Keyboard struct {
	Logger *zap.Logger
	Glob   string

	ch chan Event
}

func NewKeyboard(logger *zap.Logger) *Keyboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keyboard{Logger: logger.Named("input"), ch: make(chan Event)}
}

func (k *Keyboard) Events() <-chan Event { return k.ch }

func (k *Keyboard) Start(ctx context.Context) error {
	k.Logger.Info("keyboard input is only supported on linux")
	return nil
}

func (k *Keyboard) Stop() error {
	close(k.ch)
	return nil
}

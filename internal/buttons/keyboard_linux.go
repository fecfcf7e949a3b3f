//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// DefaultInputGlob matches the evdev devices the keyboard driver reads.
const DefaultInputGlob = "/dev/input/event*"

// Keyboard reads key presses from every evdev device matching Glob.
//
// It is best-effort: if no input devices are available, it logs and delivers
// no events.
type Keyboard struct {
	Logger *zap.Logger
	Glob   string

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKeyboard(logger *zap.Logger) *Keyboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keyboard{Logger: logger.Named("input"), Glob: DefaultInputGlob, ch: make(chan Event, 16)}
}

func (k *Keyboard) Events() <-chan Event { return k.ch }

func (k *Keyboard) Start(ctx context.Context) error {
	paths, err := filepath.Glob(k.Glob)
	if err != nil || len(paths) == 0 {
		k.Logger.Info("no evdev devices found", zap.String("glob", k.Glob))
		return nil
	}

	ctx, k.cancel = context.WithCancel(ctx)
	for _, path := range paths {
		k.wg.Add(1)
		go func() {
			defer k.wg.Done()
			if err := k.read(ctx, path); err != nil {
				k.Logger.Debug("input device closed", zap.String("path", path), zap.Error(err))
			}
		}()
	}
	k.Logger.Info("keyboard input started", zap.Int("devices", len(paths)))
	return nil
}

func (k *Keyboard) Stop() error {
	if k.cancel != nil {
		k.cancel()
	}
	k.wg.Wait()
	close(k.ch)
	return nil
}

func (k *Keyboard) read(ctx context.Context, path string) error {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	if tvSize <= 0 {
		tvSize = 16
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return err
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return nil
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		for _, ev := range decodeEvents(buf[:n], tvSize) {
			select {
			case k.ch <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

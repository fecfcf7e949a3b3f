// Package session implements the roll session controller: the current die
// configuration, the timed roll animation and the roll history.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/history"
)

// DefaultFrameDelay is the pause between animation frames.
const DefaultFrameDelay = 45 * time.Millisecond

// ErrUnknownPreset is returned by QuickRoll for a name not in the preset list.
var ErrUnknownPreset = errors.New("unknown quick roll preset")

// Options configure a Controller. Zero values select the defaults; a negative
// FrameCount rolls without cosmetic frames and a negative FrameDelay does not
// wait between frames.
type Options struct {
	Spec        dice.Spec
	FrameCount  int
	FrameDelay  time.Duration
	HistorySize int
	Presets     []dice.Preset

	Source   dice.Source
	Clock    clockwork.Clock
	Logger   *zap.Logger
	Listener Listener
}

// Controller owns one roll session. Each window or front end gets its own.
type Controller struct {
	roller     *dice.Roller
	history    *history.Log
	clock      clockwork.Clock
	logger     *zap.Logger
	listener   Listener
	presets    []dice.Preset
	frameCount int
	frameDelay time.Duration

	mu   sync.RWMutex
	spec dice.Spec

	// rollMu serializes roll starts; emitMu serializes listener output.
	rollMu    sync.Mutex
	emitMu    sync.Mutex
	cancel    context.CancelFunc
	exited    chan struct{}
	animating atomic.Bool
}

// New builds a controller. The initial spec defaults to 2d6.
func New(opts Options) (*Controller, error) {
	spec := opts.Spec
	if spec == (dice.Spec{}) {
		spec = dice.Spec{Count: 2, Sides: 6}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if opts.FrameCount == 0 {
		opts.FrameCount = dice.DefaultFrameCount
	}
	if opts.FrameDelay == 0 {
		opts.FrameDelay = DefaultFrameDelay
	}
	if opts.HistorySize == 0 {
		opts.HistorySize = history.DefaultSize
	}
	if len(opts.Presets) == 0 {
		opts.Presets = dice.DefaultPresets
	}
	if opts.Source == nil {
		opts.Source = dice.NewCryptoSource()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Listener == nil {
		opts.Listener = NopListener{}
	}

	return &Controller{
		roller:     dice.NewLoggedRoller(opts.Source, opts.Logger),
		history:    history.New(opts.HistorySize, opts.Clock),
		clock:      opts.Clock,
		logger:     opts.Logger,
		listener:   opts.Listener,
		presets:    opts.Presets,
		frameCount: opts.FrameCount,
		frameDelay: opts.FrameDelay,
		spec:       spec,
	}, nil
}

// Configure validates and stores a new die configuration. On error the
// previous configuration stays in effect.
func (c *Controller) Configure(count, sides int) error {
	spec, err := dice.Configure(count, sides)
	if err != nil {
		c.logger.Info("configuration rejected", zap.Int("count", count), zap.Int("sides", sides), zap.Error(err))
		return err
	}
	c.setSpec(spec)
	return nil
}

func (c *Controller) setSpec(spec dice.Spec) {
	c.mu.Lock()
	changed := c.spec != spec
	c.spec = spec
	c.mu.Unlock()
	if !changed {
		return
	}
	c.emitMu.Lock()
	c.listener.OnConfigChanged(spec)
	c.emitMu.Unlock()
}

// Config returns the current die configuration.
func (c *Controller) Config() dice.Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spec
}

// Presets returns the quick-roll presets.
func (c *Controller) Presets() []dice.Preset {
	out := make([]dice.Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Animating reports whether a roll animation is in flight.
func (c *Controller) Animating() bool { return c.animating.Load() }

// History returns the recorded rolls, oldest first.
func (c *Controller) History() []history.Entry { return c.history.Entries() }

// Roll starts an animated roll of the current configuration, superseding any
// roll still animating. The returned channel yields the final result if this
// roll completes, and is closed either way.
func (c *Controller) Roll(ctx context.Context) (<-chan dice.Result, error) {
	c.rollMu.Lock()
	defer c.rollMu.Unlock()

	c.stopLocked()
	return c.startLocked(ctx)
}

// QuickRoll switches the configuration to the named preset and rolls it.
func (c *Controller) QuickRoll(ctx context.Context, name string) (<-chan dice.Result, error) {
	preset, ok := dice.FindPreset(c.presets, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	c.rollMu.Lock()
	defer c.rollMu.Unlock()

	c.stopLocked()
	c.setSpec(preset.Spec)
	return c.startLocked(ctx)
}

func (c *Controller) startLocked(ctx context.Context) (<-chan dice.Result, error) {
	spec := c.Config()
	anim, err := dice.NewLoggedAnimation(c.roller, spec, c.frameCount)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	done := make(chan dice.Result, 1)
	c.cancel = cancel
	c.exited = exited
	c.animating.Store(true)

	c.logger.Debug("roll started", zap.Stringer("spec", spec), zap.Int("frames", anim.Len()))
	go c.animate(runCtx, anim, done, exited)
	return done, nil
}

// ClearHistory empties the roll history.
func (c *Controller) ClearHistory() {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	c.history.Clear()
	c.listener.OnHistoryChanged(c.history.Lines())
}

// Stop abandons any in-flight animation and waits for it to exit.
func (c *Controller) Stop() {
	c.rollMu.Lock()
	c.stopLocked()
	c.rollMu.Unlock()
}

// Wait blocks until the current animation, if any, has finished.
func (c *Controller) Wait() {
	c.rollMu.Lock()
	exited := c.exited
	c.rollMu.Unlock()
	if exited != nil {
		<-exited
	}
}

func (c *Controller) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.exited
	c.cancel = nil
	c.animating.Store(false)
}

func (c *Controller) animate(ctx context.Context, anim *dice.Animation, done chan<- dice.Result, exited chan<- struct{}) {
	defer close(exited)
	defer close(done)

	spec := anim.Spec()
	for i := 0; ; i++ {
		// Draw after the delay so a superseded roll never draws its final.
		if i > 0 && !c.sleep(ctx) {
			c.logger.Debug("roll superseded", zap.Stringer("spec", spec), zap.Int("frame", i))
			return
		}
		frame, ok := anim.Next()
		if !ok {
			return
		}

		c.emitMu.Lock()
		if ctx.Err() != nil {
			c.emitMu.Unlock()
			return
		}
		if !frame.Final {
			c.listener.OnFrame(spec, frame.Values)
			c.emitMu.Unlock()
			continue
		}
		result := frame.Result(spec)
		c.history.Append(result)
		c.animating.Store(false)
		c.listener.OnFinalResult(result)
		c.listener.OnHistoryChanged(c.history.Lines())
		c.emitMu.Unlock()

		done <- result
		return
	}
}

// sleep waits one frame delay, returning false if ctx ends first.
func (c *Controller) sleep(ctx context.Context) bool {
	if c.frameDelay <= 0 {
		return ctx.Err() == nil
	}
	timer := c.clock.NewTimer(c.frameDelay)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-timer.Chan():
		return true
	}
}

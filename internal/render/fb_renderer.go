package render

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/state"
)

const (
	DefaultDevice = "/dev/fb0"
	DefaultFPS    = 30
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Logger *zap.Logger
	Device string
	FPS    int

	fbDev   *fb.Device
	canvas  *Canvas
	running atomic.Bool

	mu      sync.Mutex
	current Screen
}

func NewFBRenderer(device string, fps int, logger *zap.Logger) *FBRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FBRenderer{Logger: logger.Named("fb"), Device: device, FPS: fps}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	canvas, err := NewCanvas(CanvasWidth, CanvasHeight)
	if err != nil {
		return err
	}
	device := r.Device
	if device == "" {
		device = DefaultDevice
	}
	dev, err := fb.Open(device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	r.canvas = canvas
	bounds := dev.Bounds()
	r.Logger.Info("framebuffer open",
		zap.String("device", device),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// RedrawWithState draws the current screen for snap and pushes it to the device.
func (r *FBRenderer) RedrawWithState(snap state.State) {
	if !r.running.Load() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.fbDev == nil {
		return
	}
	r.canvas.FillBackground()
	r.current.Draw(r.canvas, snap)
	blit(r.fbDev, r.canvas.Image())
}

// RunLoop redraws at FPS until the context is done. Frames are only pushed
// when the store changed since the last draw.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	lastVersion := uint64(0)
	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			version := store.Version()
			if !first && version == lastVersion {
				continue
			}
			first = false
			lastVersion = version
			snap := store.Snapshot()
			r.RedrawWithState(snap)
			r.Logger.Debug("frame", zap.Stringer("phase", snap.Phase), zap.Uint64("version", version))
		}
	}
}

type pixelSink interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blit copies canvas onto dst with nearest-neighbor scaling.
func blit(dst pixelSink, canvas *image.RGBA) {
	bounds := dst.Bounds()
	src := canvas.Bounds()
	dw, dh := bounds.Dx(), bounds.Dy()
	if dw == 0 || dh == 0 || src.Empty() {
		return
	}
	for y := 0; y < dh; y++ {
		sy := src.Min.Y + (y*src.Dy())/dh
		for x := 0; x < dw; x++ {
			sx := src.Min.X + (x*src.Dx())/dw
			p := canvas.RGBAAt(sx, sy)
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
}

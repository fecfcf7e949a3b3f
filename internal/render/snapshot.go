package render

import (
	"image"
	"image/draw"
	"sync"

	"github.com/rook-computer/diceroller/internal/state"
)

// Snapshotter renders a Screen offscreen, for screenshots served over HTTP.
// The canvas is allocated on first use and reused.
type Snapshotter struct {
	Screen Screen
	Width  int
	Height int

	mu     sync.Mutex
	canvas *Canvas
}

func NewSnapshotter(screen Screen) *Snapshotter {
	return &Snapshotter{Screen: screen, Width: CanvasWidth, Height: CanvasHeight}
}

// Render draws st and returns a copy of the result.
func (s *Snapshotter) Render(st state.State) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		c, err := NewCanvas(s.Width, s.Height)
		if err != nil {
			return nil, err
		}
		s.canvas = c
	}
	s.canvas.FillBackground()
	if s.Screen != nil {
		s.Screen.Draw(s.canvas, st)
	}
	src := s.canvas.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/diceroller/internal/assets"
)

const defaultTextSize = 32

type faceKey struct {
	size int
	bold bool
	mono bool
}

// Canvas is an offscreen Drawer backed by an RGBA image.
type Canvas struct {
	img *image.RGBA

	regular *opentype.Font
	bold    *opentype.Font
	mono    *opentype.Font
	// dieFont draws die numbers through freetype.
	dieFont *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewCanvas allocates a width×height canvas and parses the embedded fonts.
func NewCanvas(width, height int) (*Canvas, error) {
	c := &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[faceKey]font.Face),
	}
	var err error
	if c.regular, err = opentype.Parse(assets.FontTTF); err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	if c.bold, err = opentype.Parse(assets.FontBoldTTF); err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	if c.mono, err = opentype.Parse(assets.FontMonoTTF); err != nil {
		return nil, fmt.Errorf("parse mono font: %w", err)
	}
	if c.dieFont, err = truetype.Parse(assets.FontBoldTTF); err != nil {
		return nil, fmt.Errorf("parse die font: %w", err)
	}
	return c, nil
}

// Image returns the backing image. It is redrawn in place.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillBackground() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Over)
}

func (c *Canvas) StrokeRect(rect image.Rectangle, col color.Color, width int) {
	if width <= 0 {
		return
	}
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), col)
	c.FillRect(image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func (c *Canvas) face(style TextStyle) font.Face {
	key := faceKey{size: style.Size, bold: style.Bold, mono: style.Mono}
	if key.size <= 0 {
		key.size = defaultTextSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}
	src := c.regular
	switch {
	case key.mono:
		src = c.mono
	case key.bold:
		src = c.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: float64(key.size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	c.faces[key] = f
	return f
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style)
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: m.Height.Ceil(),
	}
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	metrics := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	col := style.Color
	if col == nil {
		col = Foreground
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face(style),
		Dot:  fixed.P(x, y+metrics.Ascent),
	}
	drawer.DrawString(text)
	return metrics
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	dst := rect
	if mode == ScaleModeFit {
		dst = fitRect(img.Bounds(), rect)
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

func (c *Canvas) DrawQRCode(payload string, rect image.Rectangle) {
	size := min(rect.Dx(), rect.Dy())
	qr, err := HistoryQRCode(payload, size)
	if err != nil || qr == nil {
		return
	}
	c.DrawImageInRect(qr, rect, ScaleModeFit)
}

// fitRect scales src's aspect ratio into rect and centers it.
func fitRect(src, rect image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	w, h := rect.Dx(), rect.Dx()*sh/sw
	if h > rect.Dy() {
		w, h = rect.Dy()*sw/sh, rect.Dy()
	}
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

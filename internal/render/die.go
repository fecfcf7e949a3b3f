package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"github.com/rook-computer/diceroller/internal/render/layout"
)

// Pip centers on a 100x100 die, by face value.
var pipLayout = map[int][]image.Point{
	1: {{50, 50}},
	2: {{30, 30}, {70, 70}},
	3: {{30, 30}, {50, 50}, {70, 70}},
	4: {{30, 30}, {30, 70}, {70, 30}, {70, 70}},
	5: {{30, 30}, {30, 70}, {50, 50}, {70, 30}, {70, 70}},
	6: {{30, 30}, {30, 50}, {30, 70}, {70, 30}, {70, 50}, {70, 70}},
}

const pipRadius = 12

func (c *Canvas) DrawDie(rect image.Rectangle, value, sides int, style DieStyle) {
	sq := layout.FitSquare(rect)
	s := sq.Dx()
	if s < 10 {
		return
	}
	unit := func(v int) int { return v * s / 100 }
	at := func(x0, y0, x1, y1 int) image.Rectangle {
		return image.Rect(sq.Min.X+unit(x0), sq.Min.Y+unit(y0), sq.Min.X+unit(x1), sq.Min.Y+unit(y1))
	}

	face := DieFace
	if style == DieRolling {
		face = DieFaceRoll
	}
	c.FillRect(at(12, 12, 96, 96), DieShadow)
	c.FillRect(at(4, 4, 92, 92), DieBorder)
	c.FillRect(at(10, 10, 86, 86), face)

	if sides == 6 && value >= 1 && value <= 6 {
		for _, p := range pipLayout[value] {
			// Pip layout is centered on 50; the face box is centered on 48.
			cx := float32(sq.Min.X + unit(p.X-2))
			cy := float32(sq.Min.Y + unit(p.Y-2))
			fillCircle(c.img, cx, cy, float32(unit(pipRadius)), DieInk)
		}
		return
	}
	c.drawDieNumber(at(10, 10, 86, 86), value)
}

// drawDieNumber centers value in rect using the freetype rasterizer.
func (c *Canvas) drawDieNumber(rect image.Rectangle, value int) {
	text := strconv.Itoa(value)
	size := float64(rect.Dy()) * 0.6
	switch {
	case len(text) >= 3:
		size = float64(rect.Dy()) * 0.38
	case len(text) == 2:
		size = float64(rect.Dy()) * 0.5
	}

	opts := &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}
	face := truetype.NewFace(c.dieFont, opts)
	defer face.Close()
	width := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()

	ctx := freetype.NewContext()
	ctx.SetDPI(opts.DPI)
	ctx.SetFont(c.dieFont)
	ctx.SetFontSize(size)
	ctx.SetHinting(opts.Hinting)
	ctx.SetClip(rect)
	ctx.SetDst(c.img)
	ctx.SetSrc(image.NewUniform(DieInk))

	x := rect.Min.X + (rect.Dx()-width)/2
	y := rect.Min.Y + (rect.Dy()+ascent-descent)/2
	_, _ = ctx.DrawString(text, freetype.Pt(x, y))
}

// fillCircle rasterizes a filled circle with four cubic Bézier arcs.
func fillCircle(dst draw.Image, cx, cy, r float32, col color.Color) {
	if r <= 0 {
		return
	}
	bounds := image.Rect(int(cx-r)-1, int(cy-r)-1, int(cx+r)+2, int(cy+r)+2)
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := cx-float32(bounds.Min.X), cy-float32(bounds.Min.Y)
	const k = 0.5522847
	z.MoveTo(ox+r, oy)
	z.CubeTo(ox+r, oy+k*r, ox+k*r, oy+r, ox, oy+r)
	z.CubeTo(ox-k*r, oy+r, ox-r, oy+k*r, ox-r, oy)
	z.CubeTo(ox-r, oy-k*r, ox-k*r, oy-r, ox, oy-r)
	z.CubeTo(ox+k*r, oy-r, ox+r, oy-k*r, ox+r, oy)
	z.ClosePath()
	z.Draw(dst, bounds, image.NewUniform(col), image.Point{})
}

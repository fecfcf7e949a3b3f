package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h)
	require.NoError(t, err)
	c.FillBackground()
	return c
}

func countNot(img *image.RGBA, rect image.Rectangle, col color.RGBA) int {
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != col {
				n++
			}
		}
	}
	return n
}

func TestCanvas_Background(t *testing.T) {
	c := newTestCanvas(t, 64, 32)
	w, h := c.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
	assert.Equal(t, Background, c.Image().RGBAAt(10, 10))
}

func TestCanvas_D6Pips(t *testing.T) {
	c := newTestCanvas(t, 200, 100)
	c.DrawDie(image.Rect(0, 0, 100, 100), 1, 6, DieFinal)
	c.DrawDie(image.Rect(100, 0, 200, 100), 2, 6, DieRolling)
	img := c.Image()

	assert.Equal(t, DieInk, img.RGBAAt(48, 48), "single pip in the middle")
	assert.Equal(t, DieFace, img.RGBAAt(20, 80), "face away from the pip")
	assert.Equal(t, DieBorder, img.RGBAAt(6, 50))

	assert.Equal(t, DieFaceRoll, img.RGBAAt(148, 48), "2 has no middle pip")
	assert.Equal(t, DieInk, img.RGBAAt(128, 28))
	assert.Equal(t, DieInk, img.RGBAAt(168, 68))
}

func TestCanvas_NumberedDie(t *testing.T) {
	c := newTestCanvas(t, 120, 120)
	c.DrawDie(image.Rect(0, 0, 120, 120), 17, 20, DieFinal)
	face := image.Rect(13, 13, 103, 103)
	assert.Positive(t, countNot(c.Image(), face, DieFace), "digits are drawn on the face")
}

func TestCanvas_TinyDieIsSkipped(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.DrawDie(image.Rect(0, 0, 8, 8), 3, 6, DieFinal)
	assert.Zero(t, countNot(c.Image(), c.Image().Bounds(), Background))
}

func TestCanvas_Text(t *testing.T) {
	c := newTestCanvas(t, 400, 100)
	style := TextStyle{Color: Foreground, Size: 24}
	m := c.MeasureText("ROLL", style)
	assert.Positive(t, m.Width)
	assert.Equal(t, m.Ascent+m.Descent, m.Height)

	wide := c.MeasureText("ROLL ROLL", style)
	assert.Greater(t, wide.Width, m.Width)

	got := c.DrawText("ROLL", 200, 10, TextStyle{Color: Foreground, Size: 24, Align: TextAlignCenter})
	assert.Equal(t, m.Width, got.Width)
	assert.Positive(t, countNot(c.Image(), image.Rect(200-m.Width/2, 10, 200+m.Width/2+1, 10+m.Height), Background))
	assert.Zero(t, countNot(c.Image(), image.Rect(0, 0, 100, 100), Background), "centered text stays near x")
}

func TestCanvas_StrokeRect(t *testing.T) {
	c := newTestCanvas(t, 50, 50)
	c.StrokeRect(image.Rect(10, 10, 40, 40), Accent, 2)
	img := c.Image()
	assert.Equal(t, Accent, img.RGBAAt(10, 25))
	assert.Equal(t, Accent, img.RGBAAt(39, 25))
	assert.Equal(t, Background, img.RGBAAt(25, 25))
}

func TestCanvas_QRCode(t *testing.T) {
	c := newTestCanvas(t, 200, 200)
	c.DrawQRCode("", image.Rect(0, 0, 200, 200))
	assert.Zero(t, countNot(c.Image(), c.Image().Bounds(), Background), "empty payload draws nothing")

	c.DrawQRCode("2d6 -> [3, 5] = 8", image.Rect(0, 0, 200, 200))
	assert.Positive(t, countNot(c.Image(), c.Image().Bounds(), Background))
}

func TestFitRect(t *testing.T) {
	got := fitRect(image.Rect(0, 0, 100, 50), image.Rect(0, 0, 200, 200))
	assert.Equal(t, image.Rect(0, 50, 200, 150), got)

	got = fitRect(image.Rect(0, 0, 10, 10), image.Rect(0, 0, 300, 100))
	assert.Equal(t, image.Rect(100, 0, 200, 100), got)
}

func TestBlit_Scales(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	c.FillRect(image.Rect(10, 0, 20, 20), Accent)

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	blit(dst, c.Image())
	assert.Equal(t, Background, dst.RGBAAt(2, 5))
	assert.Equal(t, Accent, dst.RGBAAt(7, 5))
}

func TestHistoryQRCode(t *testing.T) {
	img, err := HistoryQRCode("", 64)
	assert.NoError(t, err)
	assert.Nil(t, img)

	img, err = HistoryQRCode("1d20 -> [20] = 20", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryQRSizePx, img.Bounds().Dx())

	// Quiet zone in the face color, finder pattern in ink.
	r, g, b, _ := img.At(0, 0).RGBA()
	fr, fg, fb, _ := DieFace.RGBA()
	assert.Equal(t, [3]uint32{fr, fg, fb}, [3]uint32{r, g, b})
	var inked bool
	ir, ig, ib, _ := DieInk.RGBA()
	for x := 0; x < img.Bounds().Dx()/2 && !inked; x++ {
		r, g, b, _ := img.At(x, x).RGBA()
		inked = [3]uint32{r, g, b} == [3]uint32{ir, ig, ib}
	}
	assert.True(t, inked, "finder pattern drawn in ink")
}

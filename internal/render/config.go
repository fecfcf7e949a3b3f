package render

import "image/color"

// Palette and logical canvas shared by all screens.
var (
	Background  = hex(0x1e1e2e)
	Foreground  = hex(0xcdd6f4)
	Muted       = hex(0xa6adc8)
	Title       = hex(0x89b4fa)
	Accent      = hex(0xcba6f7)
	TotalColor  = hex(0xf9e2af)
	PanelColor  = hex(0x313244)
	ErrorColor  = hex(0xf38ba8)
	DieBorder   = hex(0xf9e2af)
	DieFace     = hex(0xffffff)
	DieFaceRoll = hex(0xe6e9ef)
	DieInk      = hex(0x11111b)
	DieShadow   = hex(0x11111b)

	// Logical canvas size; scaled to framebuffer.
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

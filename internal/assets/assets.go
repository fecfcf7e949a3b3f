// Package assets exposes the fonts compiled into the binary.
package assets

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Go font family, TrueType encoded. Parsed by both opentype and freetype.
var (
	FontTTF     = goregular.TTF
	FontBoldTTF = gobold.TTF
	FontMonoTTF = gomono.TTF
)

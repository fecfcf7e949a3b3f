package render

import (
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultHistoryQRSizePx = 256

// HistoryQRCode encodes one history line, e.g. "2d6 -> [3, 5] = 8", as a QR
// code in die colors. An empty line yields (nil, nil).
func HistoryQRCode(line string, sizePx int) (image.Image, error) {
	if line == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultHistoryQRSizePx
	}

	// History lines are short and only read off the screen.
	qr, err := qrcode.New(line, qrcode.Low)
	if err != nil {
		return nil, err
	}
	qr.ForegroundColor = DieInk
	qr.BackgroundColor = DieFace
	return qr.Image(sizePx), nil
}

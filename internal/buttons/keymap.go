package buttons

import "encoding/binary"

// Linux input-event-codes.h
const (
	evKey = 0x01

	keyEsc     = 1
	key1       = 2
	key0       = 11
	keyEnter   = 28
	keyC       = 46
	keySpace   = 57
	keyF4      = 62
	keyKPEnter = 96
	keyUp      = 103
	keyLeft    = 105
	keyRight   = 106
	keyDown    = 108
)

const (
	keyPressed  = 1
	keyRepeated = 2
)

// KeyEvent maps an evdev key code and value to an action. Adjustments follow
// key repeat; everything else fires on the initial press only.
func KeyEvent(code uint16, value int32) (Event, bool) {
	switch value {
	case keyPressed:
	case keyRepeated:
		switch code {
		case keyUp, keyDown, keyLeft, keyRight:
		default:
			return Event{}, false
		}
	default:
		return Event{}, false
	}

	switch {
	case code == keySpace || code == keyEnter || code == keyKPEnter:
		return Event{Action: Roll}, true
	case code >= key1 && code <= key0:
		// 1..9 then 0 select presets 0..9.
		return Event{Action: QuickRoll, Preset: int(code - key1)}, true
	case code == keyC:
		return Event{Action: ClearHistory}, true
	case code == keyRight:
		return Event{Action: CountUp}, true
	case code == keyLeft:
		return Event{Action: CountDown}, true
	case code == keyUp:
		return Event{Action: SidesNext}, true
	case code == keyDown:
		return Event{Action: SidesPrev}, true
	case code == keyF4 || code == keyEsc:
		return Event{Action: Exit}, true
	}
	return Event{}, false
}

// decodeEvents parses a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) and returns the mapped key actions in order.
func decodeEvents(buf []byte, tvSize int) []Event {
	eventSize := tvSize + 2 + 2 + 4
	var out []Event
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		if typ != evKey {
			continue
		}
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if ev, ok := KeyEvent(code, value); ok {
			out = append(out, ev)
		}
	}
	return out
}

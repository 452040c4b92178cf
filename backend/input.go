package backend

import (
	"bufio"
	"strconv"
	"strings"
	"time"

	"github.com/kungfusheep/frankentui/runtime"
)

// EventReader decodes raw stdin bytes into runtime.Event values: plain
// keys, CSI escape sequences (arrows, SGR mouse reports), and bracketed
// paste. Grounded on the teacher's reliance on a separate key-routing
// library (riffkey, dropped per this module's dependency notes) for the
// same concern; this parser hand-rolls the narrow subset spec §3's Event
// variants require.
type EventReader struct {
	r       *bufio.Reader
	pasting bool
	paste   strings.Builder
}

// NewEventReader wraps r (typically the Terminal's stdin) for decoding.
func NewEventReader(r *bufio.Reader) *EventReader {
	return &EventReader{r: r}
}

// ReadEvent blocks for the next decodable event (spec §6 EventSource:
// "read_event() -> Option<Event>"). Returns ok=false only on read error
// (typically EOF at shutdown).
func (er *EventReader) ReadEvent() (runtime.Event, bool) {
	for {
		b, err := er.r.ReadByte()
		if err != nil {
			return runtime.Event{}, false
		}
		if b == 0x1b {
			if ev, ok := er.readEscape(); ok {
				return ev, true
			}
			continue
		}
		if er.pasting {
			er.paste.WriteByte(b)
			continue
		}
		return keyEvent(rune(b)), true
	}
}

func (er *EventReader) readEscape() (runtime.Event, bool) {
	next, err := er.r.Peek(1)
	if err != nil || len(next) == 0 {
		return keyEvent(0x1b), true // bare ESC
	}
	if next[0] != '[' && next[0] != 'O' {
		return keyEvent(0x1b), true
	}
	er.r.ReadByte() // consume '[' or 'O'

	params, final, ok := er.readCSI()
	if !ok {
		return runtime.Event{}, false
	}

	switch final {
	case 'A':
		return arrowEvent(0, -1), true
	case 'B':
		return arrowEvent(0, 1), true
	case 'C':
		return arrowEvent(1, 0), true
	case 'D':
		return arrowEvent(-1, 0), true
	case 'M', 'm':
		return er.mouseEvent(strings.TrimPrefix(params, "<"), final), true
	case '~':
		return bracketedPasteMarker(params, er)
	default:
		return runtime.Event{Kind: runtime.EventKey, Code: rune(final)}, true
	}
}

// readCSI reads bytes up to and including the final letter/symbol that
// terminates a CSI sequence, returning the parameter bytes and the final
// byte.
func (er *EventReader) readCSI() (string, byte, bool) {
	var params strings.Builder
	for {
		b, err := er.r.ReadByte()
		if err != nil {
			return "", 0, false
		}
		if b >= 0x40 && b <= 0x7e {
			return params.String(), b, true
		}
		params.WriteByte(b)
	}
}

func arrowEvent(dx, dy int) runtime.Event {
	code := rune(0)
	switch {
	case dy < 0:
		code = 'A'
	case dy > 0:
		code = 'B'
	case dx > 0:
		code = 'C'
	case dx < 0:
		code = 'D'
	}
	return runtime.Event{Kind: runtime.EventKey, Code: code, At: time.Now()}
}

func keyEvent(r rune) runtime.Event {
	return runtime.Event{Kind: runtime.EventKey, Code: r, At: time.Now()}
}

// mouseEvent decodes an SGR (1006) mouse report: params is "btn;col;row",
// final is 'M' (press/move) or 'm' (release, only seen as the final byte
// of "<...M"/"<...m" — final here is whatever terminated readCSI, which
// for SGR mode is always 'M' or 'm').
func (er *EventReader) mouseEvent(params string, final byte) runtime.Event {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return runtime.Event{Kind: runtime.EventKey}
	}
	btnCode, _ := strconv.Atoi(parts[0])
	col, _ := strconv.Atoi(parts[1])
	row, _ := strconv.Atoi(parts[2])

	kind := runtime.MousePress
	if final == 'm' {
		kind = runtime.MouseRelease
	} else if btnCode&32 != 0 {
		kind = runtime.MouseDrag
	}

	button := runtime.MouseNone
	switch btnCode & 0x3 {
	case 0:
		button = runtime.MouseLeft
	case 1:
		button = runtime.MouseMiddle
	case 2:
		button = runtime.MouseRight
	}
	if btnCode&64 != 0 {
		if btnCode&1 != 0 {
			button = runtime.MouseWheelDown
		} else {
			button = runtime.MouseWheelUp
		}
		kind = runtime.MousePress
	}

	return runtime.Event{
		Kind:   runtime.EventMouse,
		X:      col - 1,
		Y:      row - 1,
		Button: button,
		MKind:  kind,
		At:     time.Now(),
	}
}

// bracketedPasteMarker handles the `ESC[200~`/`ESC[201~` paste boundary
// markers (spec §4.8: "paste events are buffered while a paste is in
// progress and emitted as one message when the bracket closes").
func bracketedPasteMarker(params string, er *EventReader) (runtime.Event, bool) {
	switch params {
	case "200":
		er.pasting = true
		er.paste.Reset()
		return runtime.Event{}, false // not a deliverable event by itself
	case "201":
		er.pasting = false
		text := er.paste.String()
		er.paste.Reset()
		return runtime.Event{Kind: runtime.EventPaste, Text: text, Bracketed: true, At: time.Now()}, true
	default:
		return runtime.Event{}, false
	}
}

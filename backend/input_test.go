package backend

import (
	"bufio"
	"strings"
	"testing"

	"github.com/kungfusheep/frankentui/runtime"
)

func TestReadEventPlainKey(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("a")))
	ev, ok := er.ReadEvent()
	if !ok || ev.Kind != runtime.EventKey || ev.Code != 'a' {
		t.Fatalf("unexpected event: %+v ok=%v", ev, ok)
	}
}

func TestReadEventArrowUp(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("\x1b[A")))
	ev, ok := er.ReadEvent()
	if !ok || ev.Kind != runtime.EventKey || ev.Code != 'A' {
		t.Fatalf("unexpected arrow event: %+v ok=%v", ev, ok)
	}
}

func TestReadEventSGRMousePress(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("\x1b[<0;10;5M")))
	ev, ok := er.ReadEvent()
	if !ok || ev.Kind != runtime.EventMouse {
		t.Fatalf("expected a mouse event, got %+v ok=%v", ev, ok)
	}
	if ev.X != 9 || ev.Y != 4 {
		t.Fatalf("expected 0-indexed coordinates (9,4), got (%d,%d)", ev.X, ev.Y)
	}
	if ev.Button != runtime.MouseLeft || ev.MKind != runtime.MousePress {
		t.Fatalf("expected left-button press, got button=%v kind=%v", ev.Button, ev.MKind)
	}
}

func TestReadEventSGRMouseRelease(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("\x1b[<0;1;1m")))
	ev, ok := er.ReadEvent()
	if !ok || ev.MKind != runtime.MouseRelease {
		t.Fatalf("expected a release event, got %+v ok=%v", ev, ok)
	}
}

func TestReadEventBracketedPaste(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("\x1b[200~hello\x1b[201~")))
	ev, ok := er.ReadEvent()
	if !ok || ev.Kind != runtime.EventPaste || ev.Text != "hello" {
		t.Fatalf("unexpected paste event: %+v ok=%v", ev, ok)
	}
	if !ev.Bracketed {
		t.Fatalf("expected Bracketed=true")
	}
}

func TestReadEventMouseWheel(t *testing.T) {
	er := NewEventReader(bufio.NewReader(strings.NewReader("\x1b[<64;1;1M")))
	ev, ok := er.ReadEvent()
	if !ok || ev.Button != runtime.MouseWheelUp {
		t.Fatalf("expected wheel-up event, got %+v ok=%v", ev, ok)
	}
}

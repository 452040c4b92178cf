package backend

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
)

// Size is a terminal's column/row extent.
type Size struct {
	Cols, Rows int
}

// Features toggles optional terminal input/output modes (spec §6
// EventSource: "set_features({mouse_capture, bracketed_paste,
// focus_events, extended_keyboard})").
type Features struct {
	MouseCapture     bool
	BracketedPaste   bool
	FocusEvents      bool
	ExtendedKeyboard bool
}

// Terminal is the reference backend: raw-mode stdin/stdout, SIGWINCH
// resize notification, and ANSI feature enable/disable sequences (spec
// §6), grounded on the teacher's Screen (screen.go: EnterRawMode,
// handleSignals, ioctl-based termios control).
type Terminal struct {
	in  *os.File
	out io.Writer
	fd  int

	mu          sync.Mutex
	origTermios *unix.Termios
	rawActive   bool

	sigChan  chan os.Signal
	resizeCh chan Size
	stopSig  chan struct{}

	cr cancelreader.CancelReader

	features Features
}

// Open puts stdin into raw mode and starts SIGWINCH notification. Call
// Close to restore the terminal to its original state.
func Open() (*Terminal, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("backend: stdin is not a terminal")
	}
	t := &Terminal{
		in:       os.Stdin,
		out:      os.Stdout,
		fd:       int(os.Stdin.Fd()),
		sigChan:  make(chan os.Signal, 1),
		resizeCh: make(chan Size, 1),
		stopSig:  make(chan struct{}),
	}
	if err := t.enterRawMode(); err != nil {
		return nil, err
	}

	// Wrap stdin for locale-aware multi-byte decoding, then make it
	// cancelable so Close can unblock a pending EventReader.ReadEvent
	// instead of leaving it blocked on a read syscall forever.
	cr, err := cancelreader.NewReader(localereader.NewReader(t.in))
	if err != nil {
		return nil, err
	}
	t.cr = cr

	signal.Notify(t.sigChan, syscall.SIGWINCH)
	go t.handleSignals()
	return t, nil
}

// InputReader returns the terminal's cancelable, locale-aware input
// stream for constructing an EventReader.
func (t *Terminal) InputReader() io.Reader { return t.cr }

func (t *Terminal) enterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	orig := *termios
	t.origTermios = &orig

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return err
	}
	t.rawActive = true
	return nil
}

// Close restores the original termios settings and stops signal handling.
func (t *Terminal) Close() error {
	close(t.stopSig)
	signal.Stop(t.sigChan)
	if t.cr != nil {
		t.cr.Cancel()
		t.cr.Close()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.rawActive || t.origTermios == nil {
		return nil
	}
	err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.origTermios)
	t.rawActive = false
	return err
}

func (t *Terminal) handleSignals() {
	for {
		select {
		case <-t.stopSig:
			return
		case <-t.sigChan:
			if size, err := t.querySize(); err == nil {
				select {
				case t.resizeCh <- size:
				default:
					// A resize is already pending; the loop's coalescing
					// window (spec §4.8) will pick up the latest once it
					// drains, so drop this intermediate notification.
				}
			}
		}
	}
}

func (t *Terminal) querySize() (Size, error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, nil
}

// Size returns the terminal's current column/row extent.
func (t *Terminal) Size() (int, int) {
	size, err := t.querySize()
	if err != nil {
		return 80, 24 // conservative fallback, matches common defaults
	}
	return size.Cols, size.Rows
}

// ResizeChan delivers a Size whenever SIGWINCH fires.
func (t *Terminal) ResizeChan() <-chan Size { return t.resizeCh }

const (
	seqMouseOn        = "\x1b[?1000h\x1b[?1006h"
	seqMouseOff       = "\x1b[?1000l\x1b[?1006l"
	seqBracketedOn    = "\x1b[?2004h"
	seqBracketedOff   = "\x1b[?2004l"
	seqFocusOn        = "\x1b[?1004h"
	seqFocusOff       = "\x1b[?1004l"
	seqKittyKeyboardOn  = "\x1b[>1u"
	seqKittyKeyboardOff = "\x1b[<u"
)

// SetFeatures enables/disables the requested input modes by writing their
// enable/disable DEC private-mode sequences, diffing against the
// currently active set so unchanged features aren't re-toggled (spec §6
// EventSource.set_features).
func (t *Terminal) SetFeatures(f Features) error {
	var out []byte
	if f.MouseCapture != t.features.MouseCapture {
		out = append(out, seqToggle(f.MouseCapture, seqMouseOn, seqMouseOff)...)
	}
	if f.BracketedPaste != t.features.BracketedPaste {
		out = append(out, seqToggle(f.BracketedPaste, seqBracketedOn, seqBracketedOff)...)
	}
	if f.FocusEvents != t.features.FocusEvents {
		out = append(out, seqToggle(f.FocusEvents, seqFocusOn, seqFocusOff)...)
	}
	if f.ExtendedKeyboard != t.features.ExtendedKeyboard {
		out = append(out, seqToggle(f.ExtendedKeyboard, seqKittyKeyboardOn, seqKittyKeyboardOff)...)
	}
	t.features = f
	if len(out) == 0 {
		return nil
	}
	_, err := t.out.Write(out)
	return err
}

func seqToggle(enable bool, on, off string) []byte {
	if enable {
		return []byte(on)
	}
	return []byte(off)
}

// newForTest builds a Terminal around an in-memory sink, bypassing raw
// mode and signal handling, so SetFeatures/WriteAll logic is testable
// without a real tty.
func newForTest(out io.Writer) *Terminal {
	return &Terminal{out: out, resizeCh: make(chan Size, 1)}
}

// DisableAllFeatures writes the disable sequence for every feature
// currently on, used by cleanup-on-exit (spec §6 Writer cleanup
// ordering).
func (t *Terminal) DisableAllFeatures() error {
	return t.SetFeatures(Features{})
}

// WriteAll implements the Writer contract's write_all: it loops until buf
// is fully written or an error occurs.
func (t *Terminal) WriteAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := t.out.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// Flush is a no-op for a direct os.File sink; present for Writer contract
// symmetry with buffered implementations.
func (t *Terminal) Flush() error { return nil }

// Package runtime implements the event-driven model/update/view loop
// (spec §4.8), grounded on the teacher's App (app.go: render channel,
// single-threaded render loop, riffkey-routed input) generalized from a
// single reactive SetView into the full Elm-architecture Update/Cmd
// contract the spec requires.
package runtime

import "time"

// EventKind tags an Event's variant (spec §3 Event).
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventPaste
	EventResize
	EventFocus
	EventTick
	EventCancelled
)

// KeyPress distinguishes a key event's phase.
type KeyPress uint8

const (
	KeyPressDown KeyPress = iota
	KeyPressRepeat
	KeyPressUp
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// MouseButton identifies which button a Mouse event concerns.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseKind distinguishes press/release/move/drag.
type MouseKind uint8

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMove
	MouseDrag
)

// Event is the tagged union of everything the runtime can deliver to
// update() (spec §3 Event). Only the fields relevant to Kind are
// meaningful.
type Event struct {
	Kind EventKind

	// Key
	Code      rune
	Modifiers Modifiers
	Press     KeyPress

	// Mouse
	X, Y   int
	Button MouseButton
	MKind  MouseKind

	// Paste
	Text      string
	Bracketed bool

	// Resize
	Cols, Rows int

	// Focus
	Gained bool

	// Cancelled
	SubscriptionID string

	// When the event was produced, for tick fairness and coalescing.
	At time.Time
}

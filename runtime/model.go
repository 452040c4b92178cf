package runtime

import "github.com/kungfusheep/frankentui/frame"

// Model is the application's opaque update-and-view contract (spec §3:
// "the user model (opaque type with an update-and-view contract)"). The
// runtime never inspects a Model's internal state; it only calls Update
// and View.
type Model interface {
	// Update handles one message, returning the next effect to run.
	Update(msg Msg) Cmd
	// View renders the current state into f. The runtime supplies a
	// fresh, scissor-reset Frame each call.
	View(f *frame.Frame)
}

// Init is an optional extension a Model may implement to request an
// initial command (e.g. Subscribe to a ticker) before the first event is
// processed.
type Init interface {
	Init() Cmd
}

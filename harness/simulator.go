package harness

import (
	"bytes"
	"hash/fnv"
	"time"

	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/diff"
	"github.com/kungfusheep/frankentui/frame"
	"github.com/kungfusheep/frankentui/grapheme"
	"github.com/kungfusheep/frankentui/present"
	"github.com/kungfusheep/frankentui/runtime"
)

// FakeClock is a manually-advanced runtime.Clock (spec §6 Backend Clock
// contract), letting a Simulator drive time-dependent behavior (tick
// strategies, frame budgets) without a wall clock.
type FakeClock struct{ now time.Time }

// NewFakeClock returns a FakeClock starting at start.
func NewFakeClock(start time.Time) *FakeClock { return &FakeClock{now: start} }

// Now implements runtime.Clock.
func (c *FakeClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// FrameResult captures one simulated frame for golden-replay comparison:
// the raw bytes the presenter emitted, and an order-sensitive checksum of
// the resulting buffer contents.
type FrameResult struct {
	Output   []byte
	Checksum uint64
}

// Simulator drives a Model through a scripted sequence of messages with no
// goroutines and no real terminal: every step is a synchronous
// Update/View/diff/Present cycle against an in-memory buffer, so two runs
// over the same model and script produce byte-identical output (spec §2:
// "deterministic harness... headless program simulator with injected
// clock, event queue, and frame-checksum capture for replay
// verification"). Unlike runtime.Loop, Simulator does not run
// Task/Subscribe commands on goroutines: a scripted replay has no
// deterministic way to reproduce their timing, so it only executes the
// synchronous Cmd kinds (None/Msg/Batch/Sequence/Quit).
type Simulator struct {
	model runtime.Model
	clock *FakeClock

	buffers   *buffer.Pool
	graphemes *grapheme.Pool
	predictor *diff.Predictor

	caps present.Capabilities
	mode present.ScreenMode

	quit bool
}

// NewSimulator constructs a Simulator around model with a width x height
// grid, starting at clock time start. If model implements runtime.Init,
// its Init command runs immediately.
func NewSimulator(model runtime.Model, width, height int, start time.Time) *Simulator {
	s := &Simulator{
		model:     model,
		clock:     NewFakeClock(start),
		buffers:   buffer.NewPool(width, height),
		graphemes: grapheme.NewPool(),
		predictor: diff.NewPredictor(),
		mode:      present.ScreenDisabled,
	}
	if initer, ok := model.(runtime.Init); ok {
		s.execute(initer.Init())
	}
	return s
}

// Clock returns the Simulator's fake clock.
func (s *Simulator) Clock() *FakeClock { return s.clock }

// Done reports whether a Quit command has terminated the simulation.
func (s *Simulator) Done() bool { return s.quit }

// Step dispatches one message to the model's Update and renders the
// resulting frame. Returns ok=false once the simulation has quit; Step is
// then a no-op.
func (s *Simulator) Step(msg runtime.Msg) (FrameResult, bool) {
	if s.quit {
		return FrameResult{}, false
	}
	s.execute(s.model.Update(msg))
	if s.quit {
		return FrameResult{}, false
	}
	return s.render(), true
}

func (s *Simulator) execute(cmd runtime.Cmd) {
	if s.quit {
		return
	}
	switch cmd.Kind {
	case runtime.CmdNone:
	case runtime.CmdMsg:
		s.execute(s.model.Update(cmd.Msg))
	case runtime.CmdBatch:
		for _, c := range cmd.Batch {
			if c.Kind == runtime.CmdQuit {
				s.quit = true
				return
			}
			s.execute(c)
			if s.quit {
				return
			}
		}
	case runtime.CmdSequence:
		for _, c := range cmd.Sequence {
			s.execute(c)
			if s.quit {
				return
			}
		}
	case runtime.CmdQuit:
		s.quit = true
	default:
		// Task/Subscribe/Tick/Cancel need a running scheduler; unexecuted
		// here by design (see type doc).
	}
}

func (s *Simulator) render() FrameResult {
	var out bytes.Buffer
	presenter := present.New(&out, s.caps, s.mode)
	presenter.SetGraphemeResolver(s.graphemes.Lookup)

	back := s.buffers.Back()
	f := frame.New(back, s.graphemes)
	f.Reset()
	s.model.View(f)
	presenter.SetLinkResolver(f.ResolveLink)

	strategy := s.predictor.Strategy(back, false)
	d := diff.Compute(s.buffers.Front(), back, strategy)
	s.predictor.Observe(back.DirtyRowCoverage(), strategy)

	_ = presenter.Present(d, back)
	result := FrameResult{Output: append([]byte(nil), out.Bytes()...), Checksum: checksumBuffer(back)}
	s.buffers.Swap()
	return result
}

// checksumBuffer hashes every cell's content/style so two Simulator runs
// over the same script can be compared by a single uint64 instead of a
// full grid diff.
func checksumBuffer(b *buffer.Buffer) uint64 {
	h := fnv.New64a()
	var scratch [16]byte
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.Get(x, y)
			scratch[0] = byte(c.Rune)
			scratch[1] = byte(c.Rune >> 8)
			scratch[2] = byte(c.Rune >> 16)
			scratch[3] = byte(c.Rune >> 24)
			scratch[4] = byte(c.GraphemeHandle)
			scratch[5] = byte(c.GraphemeHandle >> 8)
			scratch[6] = byte(c.GraphemeHandle >> 16)
			scratch[7] = byte(c.GraphemeHandle >> 24)
			scratch[8] = byte(c.Width)
			scratch[9] = byte(c.Style.Attr)
			scratch[10] = byte(c.Style.Attr >> 8)
			scratch[11] = byte(c.Style.FG.Mode)
			scratch[12] = byte(c.Style.FG.Index)
			scratch[13] = byte(c.Style.BG.Mode)
			scratch[14] = byte(c.Style.BG.Index)
			scratch[15] = byte(c.Link)
			h.Write(scratch[:])
			fg, bg := c.Style.FG, c.Style.BG
			h.Write([]byte{fg.R, fg.G, fg.B, bg.R, bg.G, bg.B,
				byte(c.Link >> 8), byte(c.Link >> 16), byte(c.Link >> 24)})
			h.Write(fg.Light[:])
			h.Write(fg.Dark[:])
			h.Write(bg.Light[:])
			h.Write(bg.Dark[:])
		}
	}
	return h.Sum64()
}

package runtime

import (
	"io"
	"time"

	"github.com/kungfusheep/frankentui/buffer"
	"github.com/kungfusheep/frankentui/budget"
	"github.com/kungfusheep/frankentui/diff"
	"github.com/kungfusheep/frankentui/evidence"
	"github.com/kungfusheep/frankentui/frame"
	"github.com/kungfusheep/frankentui/grapheme"
	"github.com/kungfusheep/frankentui/present"
)

// resizeCoalesceWindow is how long the loop waits for more resize events
// before emitting a single coalesced Resize message (spec §4.8: "coalesce
// with all subsequent resizes up to a small window (e.g. 20ms)").
const resizeCoalesceWindow = 20 * time.Millisecond

// fairnessThreshold names an 8ms bound on how long an input event may
// wait behind other work. Nothing in the loop reads it: drainEvents
// forwards every non-resize event in arrival order, with no reordering.
const fairnessThreshold = 8 * time.Millisecond

// Clock abstracts wall-clock reads so the harness can inject a fake one
// for deterministic replay (spec §6 Backend contract: "Clock: now_mono()").
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Loop drives a Model through the main loop described in spec §4.8,
// generalizing the teacher's App (app.go: buffered render-request
// channel, single render() call per iteration) into the full Elm-style
// update/view/present cycle.
type Loop struct {
	model Model
	clock Clock

	buffers   *buffer.Pool
	graphemes *grapheme.Pool
	presenter *present.Presenter
	predictor *diff.Predictor
	guardrail *budget.Guardrail
	ledger    *evidence.Ledger

	registry *subscriptionRegistry

	events chan Event
	msgs   chan Msg

	pendingResize *Event
	resizeDeadline time.Time

	dirty   bool
	running bool
	quit    bool
}

// Config bundles a Loop's collaborators; zero-value fields get sensible
// defaults (spec §4.8 "the runtime owns: ... a presenter, an event queue,
// a task set, a subscription set, a tick-rate state, and guardrails").
type Config struct {
	Width, Height int
	Writer        io.Writer
	Capabilities  present.Capabilities
	ScreenMode    present.ScreenMode
	Clock         Clock
	Budget        budget.Budget
	Ledger        *evidence.Ledger
}

// NewLoop constructs a Loop ready to Run with model.
func NewLoop(model Model, cfg Config) *Loop {
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ledger := cfg.Ledger
	if ledger == nil {
		ledger = evidence.NewLedger(0)
	}
	b := cfg.Budget
	if b == (budget.Budget{}) {
		b = budget.DefaultBudget
	}

	graphemes := grapheme.NewPool()
	presenter := present.New(cfg.Writer, cfg.Capabilities, cfg.ScreenMode)
	presenter.SetGraphemeResolver(graphemes.Lookup)

	predictor := diff.NewPredictor()
	predictor.SetLedger(ledger)

	return &Loop{
		model:     model,
		clock:     clock,
		buffers:   buffer.NewPool(cfg.Width, cfg.Height),
		graphemes: graphemes,
		presenter: presenter,
		predictor: predictor,
		guardrail: budget.NewGuardrail(b, ledger),
		ledger:    ledger,
		registry:  newSubscriptionRegistry(),
		events:    make(chan Event, 256),
		msgs:      make(chan Msg, 256),
	}
}

// PostEvent enqueues an externally-sourced event (from the backend's
// EventSource) for the next loop iteration.
func (l *Loop) PostEvent(e Event) {
	l.events <- e
}

// Run enters the presenter, processes events until Quit, then exits
// cleanly (spec §4.8 main loop, §7 "on fatal I/O error... exits with an
// error value; the terminal is left in a usable state").
func (l *Loop) Run() error {
	if err := l.presenter.Enter(); err != nil {
		return err
	}
	defer l.presenter.Exit()

	if initer, ok := l.model.(Init); ok {
		l.execute(initer.Init())
	}

	l.running = true
	l.dirty = true
	for l.running {
		if err := l.tick(); err != nil {
			return err
		}
	}
	l.registry.shutdown()
	return nil
}

// Stop requests a clean shutdown on the next iteration.
func (l *Loop) Stop() { l.quit = true }

// idlePollInterval bounds how long tick() blocks waiting for the next
// event when nothing is pending, mirroring the teacher's App render loop
// (app.go: select on the render channel with a time.After poll fallback)
// so Stop()/pendingResize deadlines are still noticed promptly.
const idlePollInterval = 10 * time.Millisecond

func (l *Loop) tick() error {
	start := l.clock.Now()

	l.drainEvents()

	select {
	case msg := <-l.msgs:
		l.dispatch(msg)
	case e := <-l.events:
		l.handleEvent(e)
	case <-time.After(idlePollInterval):
	}

	if l.dirty {
		if err := l.renderAndPresent(); err != nil {
			return err
		}
		l.dirty = false
	}

	if l.quit {
		l.running = false
		return nil
	}

	elapsed := l.clock.Now().Sub(start)
	l.guardrail.Consult(elapsed, 0, len(l.events)+len(l.msgs))
	return nil
}

func (l *Loop) handleEvent(e Event) {
	if e.Kind == EventResize {
		now := l.clock.Now()
		l.pendingResize = &e
		l.resizeDeadline = now.Add(resizeCoalesceWindow)
		return
	}
	l.msgs <- e
}

// drainEvents pulls events off the queue, coalescing resizes (spec §4.8
// step 2) and enqueueing every other Event unchanged as a Msg, in arrival
// order; input is not reordered for fairness. Msg is `any`, so
// Model.Update type-switches on the concrete event types it cares about.
func (l *Loop) drainEvents() {
	now := l.clock.Now()
	for {
		select {
		case e := <-l.events:
			if e.Kind == EventResize {
				l.pendingResize = &e
				l.resizeDeadline = now.Add(resizeCoalesceWindow)
				continue
			}
			l.msgs <- e
		default:
			if l.pendingResize != nil && now.After(l.resizeDeadline) {
				l.applyResize(*l.pendingResize)
				l.pendingResize = nil
			}
			return
		}
	}
}

func (l *Loop) applyResize(e Event) {
	l.buffers.Resize(e.Cols, e.Rows)
	l.ledger.Post(evidence.Entry{
		Domain: "resize_coalescing",
		Action: "apply",
		Factors: []evidence.Factor{
			{Name: "cols", BayesFactor: float64(e.Cols)},
			{Name: "rows", BayesFactor: float64(e.Rows)},
		},
	})
	l.msgs <- e
	l.dirty = true
}

// Ledger returns the evidence ledger the loop's own adaptive controllers
// (diff strategy, budget guardrail, resize coalescing) post to. External
// collaborators the loop doesn't own directly — such as a multi-screen
// tickstrategy scheduler sitting above it (spec §4.9; the loop only
// records the requested TickRate, per execute()'s CmdTick case) — attach
// to the same ledger via this accessor so every adaptive decision in the
// process lands in one place (spec §4.11).
func (l *Loop) Ledger() *evidence.Ledger { return l.ledger }

func (l *Loop) dispatch(msg Msg) {
	cmd := l.model.Update(msg)
	l.execute(cmd)
	l.dirty = true
}

// execute runs a Cmd per spec §4.8 "Command execution": enqueueing Msg
// for a later dispatch (it is not re-entered recursively), running Batch
// members until a Quit stops the remaining siblings,
// running Sequence strictly in order, starting Tasks/Subscriptions on
// their own goroutines, and signalling Cancel/Quit through the registry.
func (l *Loop) execute(cmd Cmd) {
	switch cmd.Kind {
	case CmdNone:
	case CmdMsg:
		l.msgs <- cmd.Msg
	case CmdBatch:
		for _, c := range cmd.Batch {
			if c.Kind == CmdQuit {
				l.execute(c)
				break
			}
			l.execute(c)
		}
	case CmdSequence:
		for _, c := range cmd.Sequence {
			l.execute(c)
		}
	case CmdTick:
		// Tick cadence is owned by the caller's tickstrategy scheduler;
		// the loop itself only records the requested rate for bookkeeping.
		_ = cmd.TickRate
	case CmdTask:
		cancel := NewCancelToken()
		id := newID()
		l.registry.startTask(id, cancel)
		go func() {
			msg := cmd.Task(cancel)
			if msg != nil {
				l.msgs <- msg
			}
		}()
	case CmdSubscribe:
		l.registry.start(cmd.Sub, func(m Msg) { l.msgs <- m })
	case CmdCancel:
		l.registry.cancelByID(cmd.CancelID)
	case CmdQuit:
		l.quit = true
	}
}

func (l *Loop) renderAndPresent() error {
	back := l.buffers.Back()
	f := frame.New(back, l.graphemes)
	f.Reset()
	l.model.View(f)
	l.presenter.SetLinkResolver(f.ResolveLink)

	strategy := l.predictor.Strategy(back, false)
	d := diff.Compute(l.buffers.Front(), back, strategy)
	l.predictor.Observe(back.DirtyRowCoverage(), strategy)

	if err := l.presenter.Present(d, back); err != nil {
		return err
	}
	l.buffers.Swap()
	return nil
}

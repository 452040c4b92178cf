package runtime

import "time"

// CmdKind tags a Command's variant (spec §3 Command).
type CmdKind uint8

const (
	CmdNone CmdKind = iota
	CmdMsg
	CmdBatch
	CmdSequence
	CmdTick
	CmdTask
	CmdSubscribe
	CmdCancel
	CmdQuit
)

// Msg is an opaque application message produced by update(), tasks, or
// subscriptions. The runtime never inspects its contents.
type Msg any

// TaskFunc is a long-running unit of work that produces a Msg (or none)
// when done, cooperatively checking cancel for early exit (spec §4.8
// Task; spec §4.8 Cancellation: "tasks poll it at cooperative points").
type TaskFunc func(cancel *CancelToken) Msg

// SubscriptionSpec describes an open-ended event source (spec §3
// Subscription): Produce runs once, on its own goroutine, when the
// subscription starts, and calls emit for each message the source
// produces; Stop is called once when the subscription is cancelled or the
// runtime quits.
type SubscriptionSpec struct {
	ID      string
	Produce func(emit func(Msg))
	Stop    func()
}

// Cmd is the tagged effect-request variant returned by update() (spec §3
// Command). Exactly the fields relevant to Kind are populated.
type Cmd struct {
	Kind CmdKind

	Msg      Msg
	Batch    []Cmd
	Sequence []Cmd
	TickRate time.Duration
	Task     TaskFunc
	Sub      SubscriptionSpec
	CancelID string
}

func None() Cmd            { return Cmd{Kind: CmdNone} }
func Emit(m Msg) Cmd       { return Cmd{Kind: CmdMsg, Msg: m} }
func Quit() Cmd            { return Cmd{Kind: CmdQuit} }
func Tick(d time.Duration) Cmd { return Cmd{Kind: CmdTick, TickRate: d} }
func Cancel(id string) Cmd { return Cmd{Kind: CmdCancel, CancelID: id} }

func Batch(cmds ...Cmd) Cmd    { return Cmd{Kind: CmdBatch, Batch: cmds} }
func Sequence(cmds ...Cmd) Cmd { return Cmd{Kind: CmdSequence, Sequence: cmds} }

func Task(fn TaskFunc) Cmd              { return Cmd{Kind: CmdTask, Task: fn} }
func Subscribe(spec SubscriptionSpec) Cmd { return Cmd{Kind: CmdSubscribe, Sub: spec} }

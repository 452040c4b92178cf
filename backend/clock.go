// Package backend implements the reference terminal I/O backend the core
// consumes through its Clock/EventSource/Writer contract (spec §6),
// grounded on the teacher's screen.go (raw-mode termios control, SIGWINCH
// handling, byte-oriented Flush) and golang.org/x/sys/unix for the ioctl
// calls screen.go itself uses.
package backend

import "time"

// MonotonicClock implements the runtime.Clock contract backed by the
// standard library's monotonic clock reading.
type MonotonicClock struct{}

func (MonotonicClock) Now() time.Time { return time.Now() }

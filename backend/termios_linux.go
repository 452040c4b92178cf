//go:build linux

package backend

import "golang.org/x/sys/unix"

// Linux's termios ioctl requests differ from BSD's (TCGETS/TCSETS vs
// TIOCGETA/TIOCSETA); see termios_darwin.go for the other half of this
// split, generalized from the teacher's own termios_darwin.go pattern.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

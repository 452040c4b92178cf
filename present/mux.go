package present

// Passthrough wraps sequence for delivery through a terminal multiplexer
// that would otherwise intercept it, per kind. MuxNone returns sequence
// unchanged. Grounded on original_source/crates/ftui-core/src/
// mux_passthrough.rs: tmux requires every ESC byte inside the payload
// doubled; screen does not.
func Passthrough(kind MuxKind, sequence []byte) []byte {
	switch kind {
	case MuxTmux:
		return tmuxWrap(sequence)
	case MuxScreen:
		return screenWrap(sequence)
	default:
		return sequence
	}
}

const esc = 0x1b

var stringTerminator = []byte{esc, '\\'}

func tmuxWrap(sequence []byte) []byte {
	out := make([]byte, 0, len(sequence)+16)
	out = append(out, esc, 'P')
	out = append(out, "tmux;"...)
	for _, b := range sequence {
		if b == esc {
			out = append(out, esc, esc)
		} else {
			out = append(out, b)
		}
	}
	out = append(out, stringTerminator...)
	return out
}

func screenWrap(sequence []byte) []byte {
	out := make([]byte, 0, len(sequence)+8)
	out = append(out, esc, 'P')
	out = append(out, sequence...)
	out = append(out, stringTerminator...)
	return out
}

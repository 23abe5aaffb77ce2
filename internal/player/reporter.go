package player

// DefaultPositionBuffer is the capacity of a session's position channel.
const DefaultPositionBuffer = 16

// reporter forwards elapsed seconds from the audio callback to the UI.
type reporter struct {
	ch chan uint64
}

func newReporter(size int) *reporter {
	if size < 1 {
		size = DefaultPositionBuffer
	}
	return &reporter{ch: make(chan uint64, size)}
}

// send delivers a position (non-blocking). A full channel drops it.
func (r *reporter) send(second uint64) {
	select {
	case r.ch <- second:
	default:
	}
}

func (r *reporter) C() <-chan uint64 { return r.ch }

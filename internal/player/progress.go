package player

import (
	"fmt"

	"github.com/llehouerou/rpgmplay/internal/media"
)

// Progress is the consumer side of position reporting: the elapsed/total
// label and the seek slider. While the slider is dragged, reported
// positions are ignored.
type Progress struct {
	total    media.Time
	display  string
	elapsed  uint64
	dragging bool
	drag     uint64
}

// NewProgress returns a progress in its stopped state.
func NewProgress() *Progress {
	p := &Progress{}
	p.Reset()
	return p
}

// Start initialises the progress for a new session.
func (p *Progress) Start(duration media.Time, display string) {
	p.total = duration
	p.display = display
	p.elapsed = 0
	p.dragging = false
	p.drag = 0
}

// Apply records a reported position. It returns false when the value was
// suppressed by an ongoing drag. Values may go backwards after a seek.
func (p *Progress) Apply(second uint64) bool {
	if p.dragging {
		return false
	}
	p.elapsed = min(second, p.total.Seconds)
	return true
}

// BeginDrag locks the slider against position updates.
func (p *Progress) BeginDrag() {
	p.dragging = true
	p.drag = p.elapsed
}

// DragTo moves the slider to second, clamped to the track.
func (p *Progress) DragTo(second uint64) {
	if !p.dragging {
		p.BeginDrag()
	}
	p.drag = min(second, p.total.Seconds)
}

// DragBy moves the slider by delta seconds.
func (p *Progress) DragBy(delta int64) {
	if !p.dragging {
		p.BeginDrag()
	}
	switch {
	case delta < 0 && uint64(-delta) > p.drag:
		p.DragTo(0)
	case delta < 0:
		p.DragTo(p.drag - uint64(-delta))
	default:
		p.DragTo(p.drag + uint64(delta))
	}
}

// EndDrag releases the slider and returns the second to seek to. ok is
// false when no drag was in progress.
func (p *Progress) EndDrag() (second uint64, ok bool) {
	if !p.dragging {
		return 0, false
	}
	p.dragging = false
	p.elapsed = p.drag
	return p.drag, true
}

// Dragging reports whether the slider is held.
func (p *Progress) Dragging() bool { return p.dragging }

// Reset returns to the stopped display: 00:00 / 00:00 and an empty range.
func (p *Progress) Reset() {
	p.Start(media.Time{}, media.FormatClock(0))
}

// Label returns "mm:ss / mm:ss".
func (p *Progress) Label() string {
	return fmt.Sprintf("%s / %s", media.FormatClock(p.Value()), p.display)
}

// Range returns the slider range in seconds.
func (p *Progress) Range() float64 { return p.total.Float() }

// Value returns the slider position: the drag position while dragging,
// the elapsed second otherwise.
func (p *Progress) Value() uint64 {
	if p.dragging {
		return p.drag
	}
	return p.elapsed
}

// Fraction returns Value as a fraction of Range, in [0, 1].
func (p *Progress) Fraction() float64 {
	r := p.Range()
	if r <= 0 {
		return 0
	}
	return min(float64(p.Value())/r, 1)
}

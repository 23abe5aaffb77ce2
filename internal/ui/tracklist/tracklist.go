// Package tracklist renders the scrollable list of discovered assets.
package tracklist

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/rpgmplay/internal/source"
	"github.com/llehouerou/rpgmplay/internal/ui/styles"
)

// scrollMargin is the number of rows kept visible above/below the cursor.
const scrollMargin = 3

// Model holds the entries, the cursor and the scroll offset.
type Model struct {
	entries []source.Entry
	pos     int
	offset  int
	width   int
	height  int
	playing string
}

func New(entries []source.Entry) Model {
	return Model{entries: entries}
}

// SetSize sets the area available for rows.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetPlaying marks the entry with that path as the live track.
func (m *Model) SetPlaying(path string) { m.playing = path }

// Playing returns the path of the live track, or "".
func (m Model) Playing() string { return m.playing }

func (m Model) Len() int { return len(m.entries) }

// Pos returns the cursor position.
func (m Model) Pos() int { return m.pos }

// Selected returns the entry under the cursor.
func (m Model) Selected() (source.Entry, bool) {
	if m.pos >= len(m.entries) {
		return source.Entry{}, false
	}
	return m.entries[m.pos], true
}

// Index returns the position of the entry with the given path, or -1.
func (m Model) Index(path string) int {
	for i, e := range m.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// Find returns the entry with the given path.
func (m Model) Find(path string) (source.Entry, bool) {
	i := m.Index(path)
	if i < 0 {
		return source.Entry{}, false
	}
	return m.entries[i], true
}

// Move moves the cursor by delta, clamped to the list.
func (m *Model) Move(delta int) {
	m.Jump(m.pos + delta)
}

// Jump puts the cursor at pos, clamped to the list.
func (m *Model) Jump(pos int) {
	if len(m.entries) == 0 {
		return
	}
	m.pos = min(max(pos, 0), len(m.entries)-1)
	m.ensureVisible()
}

// HandleKey handles navigation keys and reports whether the key was used.
func (m *Model) HandleKey(key string) bool {
	switch key {
	case "j", "down":
		m.Move(1)
	case "k", "up":
		m.Move(-1)
	case "g", "home":
		m.Jump(0)
	case "G", "end":
		m.Jump(len(m.entries) - 1)
	case "pgdown", "ctrl+d":
		m.Move(max(m.height/2, 1))
	case "pgup", "ctrl+u":
		m.Move(-max(m.height/2, 1))
	default:
		return false
	}
	return true
}

func (m *Model) ensureVisible() {
	if m.height <= 0 || len(m.entries) == 0 {
		return
	}
	margin := min(scrollMargin, (m.height-1)/2)

	if m.pos < m.offset+margin {
		m.offset = m.pos - margin
	}
	if m.pos >= m.offset+m.height-margin {
		m.offset = m.pos - m.height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.entries)-m.height, 0))
}

// VisibleRange returns [start, end) of the rows on screen.
func (m Model) VisibleRange() (start, end int) {
	if m.height <= 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+m.height, len(m.entries))
}

// View renders exactly height rows of width cells.
func (m Model) View() string {
	s := styles.T().S()
	if len(m.entries) == 0 {
		return padRows([]string{s.Muted.Render(fit("No eligible files were found.", m.width))}, m.height, m.width)
	}

	start, end := m.VisibleRange()
	rows := make([]string, 0, m.height)
	for i := start; i < end; i++ {
		rows = append(rows, m.row(i))
	}
	return padRows(rows, m.height, m.width)
}

func (m Model) row(i int) string {
	s := styles.T().S()
	e := m.entries[i]

	marker := "  "
	if e.Path == m.playing {
		marker = "▶ "
	}

	right := e.SizeLabel()
	if e.Type.Encrypted() {
		right = e.Type.String() + "  " + right
	}
	titleWidth := max(m.width-runewidth.StringWidth(marker)-runewidth.StringWidth(right)-1, 1)
	line := marker + fit(sanitize(e.Title), titleWidth) + " " + right

	switch {
	case i == m.pos:
		return s.Cursor.Render(line)
	case e.Path == m.playing:
		return s.Playing.Render(line)
	case e.Type.Encrypted():
		return s.Tag.Render(line)
	}
	return s.Base.Render(line)
}

// fit truncates or pads to exactly width cells.
func fit(text string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

// sanitize drops control characters that would break the layout.
func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)
}

func padRows(rows []string, height, width int) string {
	blank := strings.Repeat(" ", max(width, 0))
	for len(rows) < height {
		rows = append(rows, blank)
	}
	return strings.Join(rows, "\n")
}

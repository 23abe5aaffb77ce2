// Package seekbar renders the seek slider with its elapsed/total label and
// maps mouse columns back to seconds.
package seekbar

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/rpgmplay/internal/player"
	"github.com/llehouerou/rpgmplay/internal/ui/styles"
)

// minBarWidth is the narrowest bar worth drawing.
const minBarWidth = 5

// prefixWidth is the status symbol plus a space.
const prefixWidth = 2

type Model struct {
	bar   progress.Model
	width int
}

func New() Model {
	t := styles.T()
	return Model{
		bar: progress.New(
			progress.WithGradient(string(t.Primary), string(t.Secondary)),
			progress.WithoutPercentage(),
			progress.WithFillCharacters('━', '─'),
		),
	}
}

// SetWidth sets the total width of the line.
func (m *Model) SetWidth(width int) { m.width = width }

func symbol(state player.State) string {
	switch state {
	case player.Playing:
		return "▶"
	case player.Paused:
		return "⏸"
	case player.Stopped:
	}
	return "■"
}

func (m Model) barWidth(label string) int {
	return m.width - prefixWidth - 1 - lipgloss.Width(label)
}

// View renders "▶ ━━━━───── 01:23 / 04:56".
func (m Model) View(p *player.Progress, state player.State) string {
	s := styles.T().S()
	label := p.Label()
	if p.Dragging() {
		label = s.Playing.Render(label)
	} else {
		label = s.Muted.Render(label)
	}

	w := m.barWidth(label)
	if w < minBarWidth {
		return symbol(state) + " " + label
	}

	bar := m.bar
	bar.Width = w
	return symbol(state) + " " + bar.ViewAs(p.Fraction()) + " " + label
}

// SecondAt maps column x of the rendered line to a second of the track.
// ok is false when x is not on the bar or the track has no length.
func (m Model) SecondAt(x int, p *player.Progress) (second uint64, ok bool) {
	w := m.barWidth(p.Label())
	total := p.Range()
	if w < minBarWidth || total <= 0 {
		return 0, false
	}
	col := x - prefixWidth
	if col < 0 || col >= w {
		return 0, false
	}
	if w == 1 {
		return 0, true
	}
	frac := float64(col) / float64(w-1)
	return uint64(math.Round(frac * math.Floor(total))), true
}

// Blank returns an empty line of the bar's width.
func (m Model) Blank() string { return strings.Repeat(" ", max(m.width, 0)) }

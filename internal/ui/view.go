package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/rpgmplay/internal/ui/styles"
)

// Layout, top to bottom: header, bordered track list, seek bar, help.
const (
	headerHeight = 1
	borderHeight = 2
	footerHeight = 2 // seek bar + help
)

func (m Model) listRows() int {
	return max(m.height-headerHeight-borderHeight-footerHeight, 0)
}

// barRow is the screen row of the seek bar.
func (m Model) barRow() int {
	return headerHeight + borderHeight + m.listRows()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.alert.Active() {
		return m.alert.View(m.width, m.height)
	}

	s := styles.T().S()

	header := styles.Gradient("rpgmplay")
	if m.folder != "" {
		header += "  " + s.Subtle.Render(m.folder)
	}

	list := s.Panel.Render(m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		list,
		m.bar.View(m.progress, m.player.State()),
		m.help.View(m.keys),
	)
}

// Package alert is a blocking message box: while shown it takes all input
// until dismissed.
package alert

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/rpgmplay/internal/ui/styles"
)

type Model struct {
	message string
}

// Show displays message, replacing any alert already shown.
func (m *Model) Show(message string) { m.message = message }

// Dismiss hides the alert.
func (m *Model) Dismiss() { m.message = "" }

// Active reports whether an alert is shown.
func (m Model) Active() bool { return m.message != "" }

// Message returns the shown message.
func (m Model) Message() string { return m.message }

// View renders the box centered in a width x height area.
func (m Model) View(width, height int) string {
	if !m.Active() {
		return ""
	}
	s := styles.T().S()
	inner := max(min(width-8, 72), 10)

	body := lipgloss.JoinVertical(lipgloss.Left,
		s.Error.Render("Error"),
		"",
		s.Base.Width(inner).Render(m.message),
		"",
		s.Subtle.Render("enter to dismiss"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.Alert.Render(body))
}

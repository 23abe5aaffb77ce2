//go:build !linux

package mpris

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rpgmplay/internal/ui"
)

// Sender delivers messages into the UI loop.
type Sender interface {
	Send(msg tea.Msg)
}

// Status reports what the UI last showed.
type Status interface {
	Load() ui.Snapshot
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Sender, _ Status) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}

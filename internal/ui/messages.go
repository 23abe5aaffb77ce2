package ui

import "time"

// TickMsg drives the poll cycle that drains the position channel.
type TickMsg time.Time

// RemoteAction is a control request coming from outside the UI loop.
type RemoteAction int

const (
	RemotePlay RemoteAction = iota
	RemotePause
	RemoteToggle
	RemoteStop
	RemoteSeek
)

// RemoteMsg carries a control request into the UI loop, which owns the
// player. Second is the absolute target of RemoteSeek.
type RemoteMsg struct {
	Action RemoteAction
	Second uint64
}

// dragReleaseMsg ends a keyboard drag when no further seek key arrived.
type dragReleaseMsg struct {
	seq int
}

// notifiedMsg carries the id of the last track notification so the next
// one replaces it.
type notifiedMsg struct{ id uint32 }

//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/rpgmplay/internal/player"
	"github.com/llehouerou/rpgmplay/internal/ui"
)

const busName = "rpgmplay"

// Sender delivers messages into the UI loop. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Status reports what the UI last showed.
type Status interface {
	Load() ui.Snapshot
}

// Adapter exposes the player over D-Bus. Control calls are forwarded to
// the UI loop, which owns the player; queries read the UI snapshot.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(sender Sender, status Status) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{sender: sender, status: status}),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "rpgmplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/ogg", "audio/mp4", "audio/wav", "audio/flac", "audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	sender Sender
	status Status
}

func (p *playerAdapter) send(action ui.RemoteAction) error {
	p.sender.Send(ui.RemoteMsg{Action: action})
	return nil
}

func (p *playerAdapter) Next() error {
	return nil // No queue
}

func (p *playerAdapter) Previous() error {
	return nil // No queue
}

func (p *playerAdapter) Pause() error {
	return p.send(ui.RemotePause)
}

func (p *playerAdapter) PlayPause() error {
	return p.send(ui.RemoteToggle)
}

func (p *playerAdapter) Stop() error {
	return p.send(ui.RemoteStop)
}

func (p *playerAdapter) Play() error {
	return p.send(ui.RemotePlay)
}

// Seek moves relative to the last reported position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.status.Load()
	if snap.State == player.Stopped {
		return nil
	}
	target := int64(snap.Elapsed) + int64(offset)/1_000_000 //nolint:gosec // seconds fit in int64
	p.sender.Send(ui.RemoteMsg{Action: ui.RemoteSeek, Second: uint64(max(target, 0))}) //nolint:gosec // clamped
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.status.Load()
	if snap.State == player.Stopped || trackID != formatTrackID(snap.TrackID) || position < 0 {
		return nil
	}
	p.sender.Send(ui.RemoteMsg{Action: ui.RemoteSeek, Second: uint64(position) / 1_000_000})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.status.Load().State), nil
}

func playbackStatus(s player.State) types.PlaybackStatus {
	switch s {
	case player.Playing:
		return types.PlaybackStatusPlaying
	case player.Paused:
		return types.PlaybackStatusPaused
	case player.Stopped:
	}
	return types.PlaybackStatusStopped
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.status.Load()), nil
}

func metadata(snap ui.Snapshot) types.Metadata {
	if snap.State == player.Stopped || snap.TrackID == "" {
		return types.Metadata{}
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.TrackID)),
		Length:  types.Microseconds(snap.Duration.Float() * 1e6),
		Title:   snap.Title,
	}
	if snap.Art != "" {
		meta.ArtUrl = "file://" + snap.Art
	}
	return meta
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return int64(p.status.Load().Elapsed) * 1_000_000, nil //nolint:gosec // seconds fit in int64
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.status.Load().State != player.Stopped, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.status.Load().State != player.Stopped, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

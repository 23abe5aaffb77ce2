//go:build linux

package mpris

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/player"
	"github.com/llehouerou/rpgmplay/internal/ui"
)

type recorder struct {
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

type fixedStatus ui.Snapshot

func (s fixedStatus) Load() ui.Snapshot { return ui.Snapshot(s) }

func playing() fixedStatus {
	return fixedStatus{
		State:    player.Playing,
		TrackID:  "/game/audio/bgm/Theme1.ogg",
		Title:    "Theme1",
		Elapsed:  42,
		Duration: media.Time{Seconds: 90, Frac: 0.5},
		Art:      "/game/icon/icon.png",
	}
}

func TestPlayerAdapter_ForwardsControls(t *testing.T) {
	r := &recorder{}
	p := &playerAdapter{sender: r, status: playing()}

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Stop())

	assert.Equal(t, []tea.Msg{
		ui.RemoteMsg{Action: ui.RemotePlay},
		ui.RemoteMsg{Action: ui.RemotePause},
		ui.RemoteMsg{Action: ui.RemoteToggle},
		ui.RemoteMsg{Action: ui.RemoteStop},
	}, r.msgs)
}

func TestPlayerAdapter_Seek(t *testing.T) {
	r := &recorder{}
	p := &playerAdapter{sender: r, status: playing()}

	require.NoError(t, p.Seek(types.Microseconds(10_000_000)))
	require.NoError(t, p.Seek(types.Microseconds(-60_000_000)))
	require.NoError(t, p.SetPosition(formatTrackID("/game/audio/bgm/Theme1.ogg"), types.Microseconds(75_000_000)))
	require.NoError(t, p.SetPosition("/org/mpris/MediaPlayer2/Track/other", types.Microseconds(5_000_000)))

	assert.Equal(t, []tea.Msg{
		ui.RemoteMsg{Action: ui.RemoteSeek, Second: 52},
		ui.RemoteMsg{Action: ui.RemoteSeek, Second: 0},
		ui.RemoteMsg{Action: ui.RemoteSeek, Second: 75},
	}, r.msgs)
}

func TestPlayerAdapter_SeekWhenStopped(t *testing.T) {
	r := &recorder{}
	p := &playerAdapter{sender: r, status: fixedStatus{State: player.Stopped}}

	require.NoError(t, p.Seek(types.Microseconds(1_000_000)))
	assert.Empty(t, r.msgs)

	canSeek, err := p.CanSeek()
	require.NoError(t, err)
	assert.False(t, canSeek)
}

func TestPlayerAdapter_Queries(t *testing.T) {
	p := &playerAdapter{sender: &recorder{}, status: playing()}

	status, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusPlaying, status)

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(42_000_000), pos)

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Theme1", meta.Title)
	assert.Equal(t, types.Microseconds(90_500_000), meta.Length)
	assert.Equal(t, formatTrackID("/game/audio/bgm/Theme1.ogg"), string(meta.TrackId))
	assert.Equal(t, "file:///game/icon/icon.png", meta.ArtUrl)
}

func TestPlaybackStatus(t *testing.T) {
	assert.Equal(t, types.PlaybackStatusPlaying, playbackStatus(player.Playing))
	assert.Equal(t, types.PlaybackStatusPaused, playbackStatus(player.Paused))
	assert.Equal(t, types.PlaybackStatusStopped, playbackStatus(player.Stopped))
}

func TestMetadata_Stopped(t *testing.T) {
	assert.Equal(t, types.Metadata{}, metadata(ui.Snapshot{State: player.Stopped}))
}

// Package ui is the terminal front end: a track list, the seek slider and
// its elapsed/total label, and blocking alerts. It is the only caller of
// the player.
package ui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/rpgmplay/internal/errmsg"
	"github.com/llehouerou/rpgmplay/internal/notify"
	"github.com/llehouerou/rpgmplay/internal/player"
	"github.com/llehouerou/rpgmplay/internal/source"
	"github.com/llehouerou/rpgmplay/internal/state"
	"github.com/llehouerou/rpgmplay/internal/ui/alert"
	"github.com/llehouerou/rpgmplay/internal/ui/seekbar"
	"github.com/llehouerou/rpgmplay/internal/ui/tracklist"
)

const (
	// DefaultPollInterval is the idle cycle that drains positions.
	DefaultPollInterval = 100 * time.Millisecond

	// dragRelease is how long a keyboard drag waits for another seek key
	// before it is released.
	dragRelease = 600 * time.Millisecond

	seekStep    = 5
	seekBigStep = 30
)

// Options configures a Model.
type Options struct {
	Player  player.Interface
	Loader  *source.Loader
	Entries []source.Entry
	// Folder is shown in the header.
	Folder       string
	PollInterval time.Duration
	Logger       logrus.FieldLogger
	NowPlaying   *NowPlaying
	// State remembers the cursor per folder. Optional.
	State state.Interface
	// Notifier announces each started track. Optional.
	Notifier notify.Notifier
}

type Model struct {
	player player.Interface
	loader *source.Loader
	logger logrus.FieldLogger
	now    *NowPlaying
	state  state.Interface
	notify notify.Notifier

	keys     keyMap
	help     help.Model
	list     tracklist.Model
	bar      seekbar.Model
	alert    alert.Model
	progress *player.Progress

	positions <-chan uint64
	poll      time.Duration
	dragSeq   int
	folder    string
	saved     string // last selection written to state
	art       string
	notifyID  uint32

	width, height int
}

func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	now := opts.NowPlaying
	if now == nil {
		now = NewNowPlaying()
	}

	m := Model{
		player:   opts.Player,
		loader:   opts.Loader,
		logger:   logger,
		now:      now,
		state:    opts.State,
		notify:   opts.Notifier,
		keys:     defaultKeyMap(),
		help:     help.New(),
		list:     tracklist.New(opts.Entries),
		bar:      seekbar.New(),
		progress: player.NewProgress(),
		poll:     poll,
		folder:   opts.Folder,
	}
	m.restore()
	return m
}

// restore puts the cursor back where it was when the folder was last used.
func (m *Model) restore() {
	if m.state == nil || m.folder == "" {
		return
	}
	saved, err := m.state.GetFolder(m.folder)
	if err != nil {
		m.logger.WithError(err).Warn("load folder state")
		return
	}
	if saved == nil {
		return
	}
	if i := m.list.Index(saved.SelectedPath); i >= 0 {
		m.list.Jump(i)
		m.saved = saved.SelectedPath
	}
}

// persist records the selection when it changed.
func (m *Model) persist() {
	if m.state == nil || m.folder == "" {
		return
	}
	entry, ok := m.list.Selected()
	if !ok || entry.Path == m.saved {
		return
	}
	m.saved = entry.Path
	m.state.SaveFolder(state.FolderState{Folder: m.folder, SelectedPath: entry.Path})
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(m.width-2, 0), m.listRows())
		m.bar.SetWidth(m.width)
		m.help.Width = m.width

	case TickMsg:
		m.drain()
		cmd = m.tick()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case dragReleaseMsg:
		if msg.seq == m.dragSeq {
			m.endDrag()
		}

	case RemoteMsg:
		cmd = m.handleRemote(msg)

	case notifiedMsg:
		m.notifyID = msg.id
	}

	m.persist()
	m.publish()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.alert.Active() {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert.Dismiss()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Play):
		return m.play()
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	case key.Matches(msg, m.keys.Stop):
		return m.stop()
	case key.Matches(msg, m.keys.SeekBack):
		return m.dragBy(-seekStep)
	case key.Matches(msg, m.keys.SeekForward):
		return m.dragBy(seekStep)
	case key.Matches(msg, m.keys.SeekBackBig):
		return m.dragBy(-seekBigStep)
	case key.Matches(msg, m.keys.SeekFwdBig):
		return m.dragBy(seekBigStep)
	default:
		m.list.HandleKey(msg.String())
	}
	return nil
}

// play starts the track under the cursor. A paused session resumes as is.
func (m *Model) play() tea.Cmd {
	entry, ok := m.list.Selected()
	if !ok {
		return nil
	}

	current := m.player.State()
	resume := current.CanResume() ||
		(current.CanPause() && m.player.Selected() == entry.Path)

	if !resume {
		data, err := m.loader.Load(entry)
		if err != nil {
			op := errmsg.OpFileRead
			if errors.Is(err, source.ErrDecrypt) {
				op = errmsg.OpFileDecrypt
			}
			m.fail(op, entry.Path, err)
			return nil
		}
		m.player.Select(player.Track{ID: entry.Path, Data: data})
	}

	started, err := m.player.Play()
	if err != nil {
		m.fail(errmsg.OpPlaybackStart, entry.Name(), err)
		if !m.player.State().IsActive() {
			m.stopped()
			return m.dismiss()
		}
		return nil
	}
	m.list.SetPlaying(m.player.Selected())
	if started.Resumed {
		return nil
	}
	m.progress.Start(started.Duration, started.Display)
	m.positions = started.Positions
	m.art = m.loader.Art(entry)
	return m.announce(entry, started.Display)
}

// announce sends the track notification off the update loop.
func (m *Model) announce(entry source.Entry, display string) tea.Cmd {
	if m.notify == nil {
		return nil
	}
	details := []string{display}
	if entry.Name() != entry.Title {
		details = []string{entry.Name(), display}
	}
	n := notify.NowPlaying(entry.Title, details, m.art, m.notifyID)
	notifier, logger := m.notify, m.logger
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil {
			logger.WithError(err).Debug("notification failed")
			return nil
		}
		return notifiedMsg{id: id}
	}
}

// dismiss closes the track notification off the update loop.
func (m *Model) dismiss() tea.Cmd {
	if m.notify == nil || m.notifyID == 0 {
		return nil
	}
	id, notifier, logger := m.notifyID, m.notify, m.logger
	m.notifyID = 0
	return func() tea.Msg {
		if err := notifier.Close(id); err != nil {
			logger.WithError(err).Debug("closing notification failed")
		}
		return nil
	}
}

func (m *Model) toggle() tea.Cmd {
	if !m.player.State().IsActive() {
		return m.play()
	}
	m.player.Toggle()
	return nil
}

func (m *Model) stop() tea.Cmd {
	m.player.Stop()
	m.stopped()
	return m.dismiss()
}

func (m *Model) stopped() {
	m.progress.Reset()
	m.positions = nil
	m.art = ""
	m.list.SetPlaying("")
}

func (m *Model) fail(op errmsg.Op, context string, err error) {
	m.logger.WithError(err).WithField("op", string(op)).Warn("action failed")
	m.alert.Show(errmsg.FormatWith(op, context, err))
}

// drain applies every position waiting in the channel without blocking.
func (m *Model) drain() {
	for m.positions != nil {
		select {
		case second, ok := <-m.positions:
			if !ok {
				m.positions = nil
				return
			}
			m.progress.Apply(second)
		default:
			return
		}
	}
}

// dragBy moves the slider and schedules its release.
func (m *Model) dragBy(delta int64) tea.Cmd {
	if !m.player.State().IsActive() {
		return nil
	}
	m.progress.DragBy(delta)
	m.dragSeq++
	seq := m.dragSeq
	return tea.Tick(dragRelease, func(time.Time) tea.Msg { return dragReleaseMsg{seq: seq} })
}

// endDrag releases the slider and writes the seek request.
func (m *Model) endDrag() {
	second, ok := m.progress.EndDrag()
	if !ok {
		return
	}
	m.player.Seek(second)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.alert.Active() || !m.player.State().IsActive() {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != m.barRow() {
			return
		}
		if second, ok := m.bar.SecondAt(msg.X, m.progress); ok {
			m.dragSeq++
			m.progress.DragTo(second)
		}
	case tea.MouseActionMotion:
		if !m.progress.Dragging() {
			return
		}
		if second, ok := m.bar.SecondAt(msg.X, m.progress); ok {
			m.progress.DragTo(second)
		}
	case tea.MouseActionRelease:
		m.endDrag()
	}
}

func (m *Model) handleRemote(msg RemoteMsg) tea.Cmd {
	switch msg.Action {
	case RemotePlay:
		if !m.player.State().IsActive() {
			return m.play()
		}
		_, _ = m.player.Play()
	case RemotePause:
		m.player.Pause()
	case RemoteToggle:
		return m.toggle()
	case RemoteStop:
		return m.stop()
	case RemoteSeek:
		m.player.Seek(msg.Second)
	}
	return nil
}

func (m Model) publish() {
	snap := Snapshot{
		State:   m.player.State(),
		TrackID: m.list.Playing(),
		Elapsed: m.progress.Value(),
	}
	if snap.State.IsActive() {
		snap.Duration, _ = m.player.Duration()
		snap.Art = m.art
		if e, ok := m.list.Find(snap.TrackID); ok {
			snap.Title = e.Title
		}
	}
	m.now.store(snap)
}

// NowPlaying returns the snapshot publisher shared with other goroutines.
func (m Model) NowPlaying() *NowPlaying { return m.now }

package cli

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/rpgmplay/internal/config"
	"github.com/llehouerou/rpgmplay/internal/errmsg"
	"github.com/llehouerou/rpgmplay/internal/log"
	"github.com/llehouerou/rpgmplay/internal/mpris"
	"github.com/llehouerou/rpgmplay/internal/notify"
	"github.com/llehouerou/rpgmplay/internal/output"
	"github.com/llehouerou/rpgmplay/internal/player"
	"github.com/llehouerou/rpgmplay/internal/source"
	"github.com/llehouerou/rpgmplay/internal/state"
	"github.com/llehouerou/rpgmplay/internal/stderr"
	"github.com/llehouerou/rpgmplay/internal/ui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	logger, logFile, err := log.Setup(fs, log.Dir(), cfg.GetLogConfig(), time.Now())
	if err != nil {
		return err
	}
	defer logFile.Close()

	// Capture C library stderr before PortAudio initializes
	if err := stderr.Start(); err != nil {
		logger.WithError(err).Warn("stderr capture unavailable")
	}
	forwarded := stderr.Forward(logger)
	defer func() {
		stderr.Stop()
		<-forwarded
	}()

	paths, folder, err := inputPaths(cfg, args)
	if err != nil {
		return err
	}
	entries, err := source.Discover(fs, paths)
	if err != nil {
		return errorf(errmsg.OpFileScan, err)
	}
	logger.WithField("count", len(entries)).Info("assets discovered")

	p, err := newPlayer(cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	var st state.Interface
	if m, err := openState(); err != nil {
		logger.WithError(err).Warn("folder state unavailable")
	} else {
		defer m.Close()
		st = m
	}

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		notifier, _ = notify.New()
	}

	now := ui.NewNowPlaying()
	model := ui.New(ui.Options{
		Player:       p,
		Loader:       source.NewLoader(fs, nil),
		Entries:      entries,
		Folder:       folder,
		PollInterval: time.Duration(cfg.GetUIConfig().PollIntervalMS) * time.Millisecond,
		Logger:       logger,
		NowPlaying:   now,
		State:        st,
		Notifier:     notifier,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(program, now)
		if err != nil {
			logger.WithError(err).Warn(errmsg.Format(errmsg.OpRemoteInit, err))
		} else {
			defer adapter.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		return errorf(errmsg.OpInitialize, err)
	}
	return nil
}

// inputPaths returns the paths to scan and the folder shown in the header.
func inputPaths(cfg *config.Config, args []string) (paths []string, folder string, err error) {
	if len(args) > 0 {
		if len(args) == 1 {
			if folder, err = filepath.Abs(args[0]); err != nil {
				return nil, "", err
			}
		}
		return args, folder, nil
	}
	if cfg.DefaultFolder != "" {
		folder, err = filepath.Abs(cfg.DefaultFolder)
	} else {
		folder, err = os.Getwd()
	}
	if err != nil {
		return nil, "", err
	}
	return []string{folder}, folder, nil
}

func newPlayer(cfg *config.Config, logger logrus.FieldLogger) (*player.Player, error) {
	audio := cfg.GetAudioConfig()
	host, err := output.NewHost(audio.Backend)
	if err != nil {
		return nil, errorf(errmsg.OpAudioInit, err)
	}
	logger.WithField("backend", host.Name()).Info("audio host ready")

	return player.New(host,
		player.WithFramesPerBuffer(audio.FramesPerBuffer),
		player.WithPositionBuffer(audio.PositionBuffer),
		player.WithLogger(logger),
	), nil
}

func openState() (*state.Manager, error) {
	path, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	return state.Open(path)
}

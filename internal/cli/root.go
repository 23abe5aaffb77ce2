// Package cli implements the rpgmplay command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/rpgmplay/internal/config"
)

const appName = "rpgmplay"

// Flag names shared by the commands.
const (
	flagBackend   = "backend"
	flagFrames    = "frames-per-buffer"
	flagPoll      = "poll-interval"
	flagLogLevel  = "log-level"
	flagNoMPRIS   = "no-mpris"
	flagNotify    = "notify"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [paths...]",
		Short: "Play game audio assets from the terminal",
		Long: appName + " lists the audio assets found in the given files and folders\n" +
			"(the configured default folder, or the current directory) and plays them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringP(flagBackend, "b", "", "audio backend: portaudio, speaker or null")
	flags.Int(flagFrames, 0, "frames per audio callback")
	flags.String(flagLogLevel, "", "log level (trace, debug, info, warn, error)")
	root.Flags().Int(flagPoll, 0, "position poll interval in milliseconds")
	root.Flags().Bool(flagNoMPRIS, false, "do not register MPRIS media controls")
	root.Flags().Bool(flagNotify, false, "show a desktop notification when a track starts")

	root.AddCommand(newInfoCmd(), newDevicesCmd())
	return root
}

// loadConfig reads the config files and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(flagBackend) {
		v, _ := flags.GetString(flagBackend)
		cfg.Audio.Backend = strings.ToLower(v)
	}
	if flags.Changed(flagFrames) {
		cfg.Audio.FramesPerBuffer, _ = flags.GetInt(flagFrames)
	}
	if flags.Changed(flagLogLevel) {
		cfg.Log.Level, _ = flags.GetString(flagLogLevel)
	}
	if flags.Lookup(flagPoll) != nil && flags.Changed(flagPoll) {
		cfg.UI.PollIntervalMS, _ = flags.GetInt(flagPoll)
	}
	if flags.Lookup(flagNoMPRIS) != nil && flags.Changed(flagNoMPRIS) {
		if off, _ := flags.GetBool(flagNoMPRIS); off {
			enabled := false
			cfg.MPRIS.Enabled = &enabled
		}
	}
	if flags.Lookup(flagNotify) != nil && flags.Changed(flagNotify) {
		cfg.Notify.Enabled, _ = flags.GetBool(flagNotify)
	}
}

// Execute runs the root command and exits on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", appName, strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}

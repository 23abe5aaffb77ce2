package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/rpgmplay/internal/errmsg"
	"github.com/llehouerou/rpgmplay/internal/output"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "Show the default output device of the audio backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			host, err := output.NewHost(cfg.GetAudioConfig().Backend)
			if err != nil {
				return errorf(errmsg.OpAudioInit, err)
			}
			defer host.Close()
			return printDevice(cmd, host)
		},
	}
}

func printDevice(cmd *cobra.Command, host output.Host) error {
	device, err := host.DefaultOutputDevice()
	if err != nil {
		return errorf(errmsg.OpAudioInit, err)
	}
	c := device.DefaultConfig()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "backend: %s\ndevice:  %s\nlayout:  %d ch, %d Hz\n",
		host.Name(), device.Name(), c.Channels, c.SampleRate)
	return err
}

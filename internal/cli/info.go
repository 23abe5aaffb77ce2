package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/rpgmplay/internal/errmsg"
	"github.com/llehouerou/rpgmplay/internal/media"
	"github.com/llehouerou/rpgmplay/internal/source"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info paths...",
		Short: "Probe audio assets and print their format and duration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, afero.NewOsFs(), args)
		},
	}
}

func runInfo(cmd *cobra.Command, fs afero.Fs, args []string) error {
	entries, err := source.Discover(fs, args)
	if err != nil {
		return errorf(errmsg.OpFileScan, err)
	}
	if len(entries) == 0 {
		return errNoAssets
	}

	loader := source.NewLoader(fs, nil)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tFORMAT\tCODEC\tRATE\tCH\tDURATION\tSIZE")
	for _, e := range entries {
		fmt.Fprintln(w, infoRow(loader, e))
	}
	return w.Flush()
}

func infoRow(loader *source.Loader, e source.Entry) string {
	data, err := loader.Load(e)
	if err != nil {
		return fmt.Sprintf("%s\t%s", e.Path, err)
	}
	reader, n, err := media.Open(data)
	if err != nil {
		return fmt.Sprintf("%s\t%s", e.Path, err)
	}
	defer reader.Close()
	defer n.Decoder.Close()

	return fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s",
		e.Path, reader.Name(), n.Decoder.CodecParams().CodecName(),
		n.SampleRate, n.Channels, n.Display, e.SizeLabel())
}

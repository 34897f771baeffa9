// Routecell runs the detailed-routing core of SPEC_FULL.md over a cell
// description.
//
// Usage:
//
//	routecell route [flags] input
//	routecell dump-channel [flags] input
//	routecell load-channel [flags] input
//	routecell dump-svg [flags] input
//	routecell dump-config
//
// route reads a CellFile (config, channels, obstacles and nets) and
// runs the full pipeline, writing routing feedback to stderr and, with
// -o, the routed CellFile's nets (now carrying staked/segment state)
// back out as JSON.
//
// dump-channel and load-channel convert between the legacy single-
// channel dump format (channel.Encode/Decode) and the CellFile JSON
// format, for the one-channel case a standalone tool still needs to
// inspect by hand. dump-svg routes a cell and renders one channel's
// Result grid as an SVG debug image.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vlsirouter/drcore"
	"github.com/vlsirouter/drcore/channel"
	"github.com/vlsirouter/drcore/model"
	"github.com/vlsirouter/drcore/paintback"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "routecell",
		Short:         "Run the detailed-routing core over a cell description",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every pipeline stage boundary")

	root.AddCommand(newRouteCmd(&verbose))
	root.AddCommand(newDumpChannelCmd())
	root.AddCommand(newLoadChannelCmd())
	root.AddCommand(newDumpConfigCmd())
	root.AddCommand(newDumpSVGCmd())

	return root
}

func newRouteCmd(verbose *bool) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "route [input]",
		Short: "Stake, globally route and channel-route every net in a cell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			cf, err := drcore.DecodeCellFile(in)
			if err != nil {
				return err
			}

			fb := drcore.NewSliceReporter()
			s, err := cf.Build(fb)
			if err != nil {
				return err
			}
			if *verbose {
				s.Log = drcore.NewLogger(os.Stderr, zerolog.DebugLevel)
			}

			if err := drcore.RouteCell(s); err != nil {
				return err
			}

			for _, rec := range fb.Records() {
				fmt.Fprintf(os.Stderr, "%s: %s %v\n", rec.Severity, rec.Message, rec.Area)
			}

			if outPath != "" {
				out, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("routecell: %w", err)
				}
				defer out.Close()
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(cf.Nets); err != nil {
					return fmt.Errorf("routecell: %w", err)
				}
			}

			if fb.HasErrors() {
				return fmt.Errorf("routecell: routing reported %d error(s)", countErrors(fb))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the routed net list to this file (default: discard)")
	return cmd
}

func newDumpChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-channel [input]",
		Short: "Decode a CellFile's first channel and re-encode it in the legacy dump format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			cf, err := drcore.DecodeCellFile(in)
			if err != nil {
				return err
			}
			fb := drcore.NewSliceReporter()
			s, err := cf.Build(fb)
			if err != nil {
				return err
			}
			channels := s.Channels.Channels()
			if len(channels) == 0 {
				return fmt.Errorf("routecell: cell file declares no channels")
			}
			return channel.Encode(os.Stdout, channels[0])
		},
	}
}

func newDumpSVGCmd() *cobra.Command {
	var channelIndex int

	cmd := &cobra.Command{
		Use:   "dump-svg [input]",
		Short: "Route a cell and write one channel's routed grid as an SVG debug image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			cf, err := drcore.DecodeCellFile(in)
			if err != nil {
				return err
			}
			fb := drcore.NewSliceReporter()
			s, err := cf.Build(fb)
			if err != nil {
				return err
			}
			if err := drcore.RouteCell(s); err != nil {
				return err
			}

			channels := s.Channels.Channels()
			if channelIndex < 0 || channelIndex >= len(channels) {
				return fmt.Errorf("routecell: channel index %d out of range (0..%d)", channelIndex, len(channels)-1)
			}
			return paintback.RenderDebugSVG(os.Stdout, channels[channelIndex])
		},
	}
	cmd.Flags().IntVar(&channelIndex, "channel", 0, "index of the channel to render")
	return cmd
}

func newLoadChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-channel [input]",
		Short: "Decode a legacy channel dump and re-encode it as a CellFile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(args)
			if err != nil {
				return err
			}
			defer closeIn()

			ch, err := channel.Decode(in)
			if err != nil {
				return err
			}

			cf := drcore.CellFile{
				Channels: []drcore.ChannelSpec{{Kind: ch.Kind.String(), Rect: ch.Rect}},
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cf)
		},
	}
}

func newDumpConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-config",
		Short: "Write the default configuration as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(drcore.DefaultConfig())
		},
	}
}

func openInput(args []string) (*os.File, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("routecell: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func countErrors(fb *drcore.SliceReporter) int {
	n := 0
	for _, rec := range fb.Records() {
		if rec.Severity == model.SevError {
			n++
		}
	}
	return n
}

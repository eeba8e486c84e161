package main

import (
	"fmt"

	"github.com/joshuapare/metakit/fits"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate a FITS file and report basic metadata",
		Long: `The info command parses a FITS file and displays basic metadata
for every HDU: dimensions, BITPIX, and data size.

Example:
  fitsctl info m31.fits
  fitsctl info m31.fits --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type hduInfo struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
	BitPix   int    `json:"bitpix"`
	Cards    int    `json:"cards"`
	DataSize int    `json:"dataSize"`
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening FITS file: %s\n", path)

	f, err := fits.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open FITS file: %w", err)
	}

	infos := make([]hduInfo, 0, f.Len())
	for i, hdu := range f.HDUs() {
		kind := "extension"
		if hdu.IsPrimary() {
			kind = "primary"
		}
		infos = append(infos, hduInfo{
			Index:    i,
			Kind:     kind,
			Width:    hdu.Width(),
			Height:   hdu.Height(),
			Channels: hdu.Channels(),
			BitPix:   hdu.BitPix(),
			Cards:    hdu.Header.Len(),
			DataSize: len(hdu.Data()),
		})
	}

	if jsonOut {
		return printJSON(infos)
	}

	printInfo("\nFITS file: %s (%d HDU(s))\n", path, f.Len())
	for _, in := range infos {
		printInfo("  [%d] %-9s %dx%dx%d  BITPIX=%d  %d cards  %d data bytes\n",
			in.Index, in.Kind, in.Width, in.Height, in.Channels, in.BitPix, in.Cards, in.DataSize)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/joshuapare/metakit/fits"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	var hduIndex int
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the header keyword records of an HDU",
		Long: `The dump command prints every header card of the selected HDU.

Example:
  fitsctl dump m31.fits
  fitsctl dump m31.fits --hdu 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], hduIndex)
		},
	}
	cmd.Flags().IntVar(&hduIndex, "hdu", 0, "HDU index to dump")
	return cmd
}

type cardOut struct {
	Keyword string `json:"keyword"`
	Value   string `json:"value,omitempty"`
	Comment string `json:"comment,omitempty"`
}

func runDump(path string, index int) error {
	f, err := fits.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open FITS file: %w", err)
	}
	hdu, err := f.HDU(index)
	if err != nil {
		return err
	}

	cards := hdu.Header.Cards()
	if jsonOut {
		out := make([]cardOut, 0, len(cards))
		for _, c := range cards {
			out = append(out, cardOut{Keyword: c.Keyword, Value: c.Value, Comment: c.Comment})
		}
		return printJSON(out)
	}

	printInfo("HDU %d of %s (%d cards):\n", index, path, len(cards))
	for _, c := range cards {
		if c.Comment != "" && c.Value != "" {
			printInfo("  %-8s = %-20s / %s\n", c.Keyword, c.Value, c.Comment)
		} else if c.Value != "" {
			printInfo("  %-8s = %s\n", c.Keyword, c.Value)
		} else {
			printInfo("  %-8s   %s\n", c.Keyword, c.Comment)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/c360studio/semnif/export"
	"github.com/spf13/cobra"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMAT\tMIME TYPE\tEXTENSION\tDESCRIPTION")
			for _, f := range export.Formats() {
				info, _ := export.GetFormatInfo(f)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f, info.MIMEType, info.Extension, info.Description)
			}
			return tw.Flush()
		},
	}
}

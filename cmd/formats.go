package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zotero-xml/format"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available formats:")
			for _, name := range format.List() {
				f, _ := format.Get(name)
				line := "  " + name
				if aliases := f.Aliases(); len(aliases) > 0 {
					line += " (" + strings.Join(aliases, ", ") + ")"
				}
				line += " - " + f.Description()
				if exts := f.Extensions(); len(exts) > 0 {
					line += " [." + strings.Join(exts, ", .") + "]"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zotero-xml/helpers"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

const summaryWidth = 72

func newValidateCmd(a *app) *cobra.Command {
	var (
		inputFile string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check records without generating XML",
		Long: `Validate decodes each record in a JSON array or JSON Lines file and
reports records with malformed JSON or missing required fields.

Input defaults to stdin.

Examples:
  zotero-xml validate -i items.json
  zotero-xml validate -i items.json --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(cmd, inputFile)
			if err != nil {
				return err
			}

			records, err := hub.SplitRecords(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for i, raw := range records {
				record, err := hub.Decode(raw)
				if err != nil {
					invalid++
					fmt.Fprintf(out, "✗ Record %d: %v\n", i+1, err)
					continue
				}
				if !verbose {
					continue
				}
				fmt.Fprintf(out, "✓ Record %d:\n", i+1)
				for _, line := range strings.Split(record.Summary(), "\n") {
					fmt.Fprintf(out, "    %s\n", helpers.TruncateText(line, summaryWidth))
				}
			}

			a.logger.Debug("validated records", "records", len(records), "invalid", invalid)

			if invalid > 0 {
				return fmt.Errorf("%d of %d records invalid", invalid, len(records))
			}
			fmt.Fprintf(out, "✓ Valid: %d records\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show a summary of each valid record")

	return cmd
}

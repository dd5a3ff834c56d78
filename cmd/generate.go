package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zotero-xml/export"
	"github.com/lehigh-university-libraries/zotero-xml/format"
)

func newGenerateCmd(a *app) *cobra.Command {
	var inputFile, outputFile string

	cmd := &cobra.Command{
		Use:   "generate [format]",
		Short: "Generate one XML document from one JSON record",
		Long: `Generate reads a single JSON record and writes one XML document.

Arguments:
  format  Output format (mods, dublincore, dc). May be omitted when the
          output file name identifies it, e.g. -o ABC123.mods.xml

Input defaults to stdin, output defaults to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			name, err := generateFormat(args, outputFile)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, inputFile)
			if err != nil {
				return err
			}

			doc, err := export.Generate(name, string(data))
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				f, ferr := os.Create(outputFile)
				if ferr != nil {
					return fmt.Errorf("creating output file: %w", ferr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("closing output file: %w", cerr)
					}
				}()
				out = f
			}

			if _, err := io.WriteString(out, doc+"\n"); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			a.logger.Debug("generated document", "format", name, "bytes", len(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func generateFormat(args []string, outputFile string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if outputFile == "" {
		return "", fmt.Errorf("format argument is required when writing to stdout")
	}
	f, err := format.DetectFormat(outputFile)
	if err != nil {
		return "", err
	}
	return f.Name(), nil
}

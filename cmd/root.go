// Package cmd provides CLI commands for zotero-xml.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zotero-xml/export"
	"github.com/lehigh-university-libraries/zotero-xml/internal/config"
	"github.com/lehigh-university-libraries/zotero-xml/internal/logging"
)

// app carries what PersistentPreRunE loads to the sub-commands.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())

	export.Init(export.WithLogger(a.logger))
	return nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "zotero-xml",
		Short: "Generate MODS and Dublin Core XML from reference library records",
		Long: `zotero-xml turns bibliographic item records exported as JSON into
MODS v3 and Dublin Core (oai_dc) XML documents.

Examples:
  zotero-xml generate mods -i item.json
  cat item.json | zotero-xml generate dc
  zotero-xml convert -i items.json -d out/ -f mods,dc
  zotero-xml validate -i items.json --verbose
  zotero-xml serve`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default: ./"+config.DefaultConfigFile+" if present)")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newConvertCmd(a),
		newValidateCmd(a),
		newFormatsCmd(),
		newVocabCmd(),
		newServeCmd(a),
	)

	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when path is empty.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	return data, nil
}

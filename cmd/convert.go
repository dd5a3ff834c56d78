package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

type convertOptions struct {
	inputFile string
	outputDir string
	formats   []string
	workers   int
	stripHTML bool
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a batch of JSON records to XML files",
		Long: `Convert reads a JSON array or JSON Lines file of records and writes
one file per record and format, named <libraryKey>.<format>.xml. When two
records share a key, the later one gets its record number appended
(<libraryKey>-<n>.<format>.xml).

A record that fails to decode is logged and skipped; the command exits
non-zero when any record failed.

Flags not given on the command line fall back to the convert section of
the config file.

Examples:
  zotero-xml convert -i items.json -d out/
  zotero-xml convert -i items.jsonl -d out/ -f dc --workers 8 --strip-html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("output-dir") {
				opts.outputDir = a.cfg.Convert.OutputDir
			}
			if !flags.Changed("formats") {
				opts.formats = a.cfg.Convert.Formats
			}
			if !flags.Changed("workers") {
				opts.workers = a.cfg.Convert.Workers
			}
			if !flags.Changed("strip-html") {
				opts.stripHTML = a.cfg.Convert.StripHTML
			}
			return runConvert(cmd, a.logger, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputFile, "input", "i", "", "Input file (default: stdin)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "Output directory")
	cmd.Flags().StringSliceVarP(&opts.formats, "formats", "f", nil, "Output formats (mods, dublincore, dc)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent workers")
	cmd.Flags().BoolVar(&opts.stripHTML, "strip-html", false, "Strip HTML markup from abstracts")

	return cmd
}

func runConvert(cmd *cobra.Command, logger *slog.Logger, opts *convertOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", opts.workers)
	}

	generators, err := resolveGenerators(opts.formats)
	if err != nil {
		return err
	}

	data, err := readInput(cmd, opts.inputFile)
	if err != nil {
		return err
	}

	records, err := hub.SplitRecords(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	runID := uuid.New().String()
	logger = logger.With("run_id", runID)
	logger.Info("converting records",
		"records", len(records),
		"formats", strings.Join(formatNames(generators), ","),
		"workers", opts.workers,
	)

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.StripHTML = opts.stripHTML

	var (
		failed  atomic.Int64
		written atomic.Int64
	)

	ctx := cmd.Context()
	var g errgroup.Group
	g.SetLimit(opts.workers)

	names := make(outputNames, len(records))
	for i, raw := range records {
		if ctx.Err() != nil {
			break
		}

		record, err := hub.Decode(raw)
		if err != nil {
			failed.Add(1)
			logger.Error("record failed", "index", i, "error", err)
			continue
		}

		want := outputBase(record.LibraryKey, i)
		base := names.reserve(want, i)
		if base != want {
			logger.Warn("duplicate output name, renamed", "index", i, "library_key", record.LibraryKey, "base", base)
		}

		g.Go(func() error {
			n, err := convertRecord(record, base, opts.outputDir, generators, serializeOpts)
			written.Add(int64(n))
			if err != nil {
				failed.Add(1)
				logger.Error("record failed", "index", i, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}

	total := len(records)
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d of %d records, %d files written to %s (run %s)\n",
		total-int(failed.Load()), total, written.Load(), opts.outputDir, runID)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d records failed", n, total)
	}
	return nil
}

// convertRecord writes every format for one record and returns the number
// of files written.
func convertRecord(record *hub.Record, base, dir string, generators []format.Generator, opts *format.SerializeOptions) (int, error) {
	written := 0
	for _, g := range generators {
		path := filepath.Join(dir, base+"."+g.Name()+".xml")
		if err := writeDocument(path, g, record, opts); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeDocument(path string, g format.Generator, record *hub.Record, opts *format.SerializeOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := format.Serialize(f, g, record, opts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var keyReplacer = strings.NewReplacer("/", "_", `\`, "_", "..", "_")

// outputBase derives a file-safe base name from the library key.
func outputBase(libraryKey string, index int) string {
	key := keyReplacer.Replace(strings.TrimSpace(libraryKey))
	if key == "" {
		return fmt.Sprintf("record-%d", index+1)
	}
	return key
}

// outputNames tracks base names already handed out in one run. Keys are
// folded to lower case so case-insensitive filesystems cannot collide.
type outputNames map[string]bool

// reserve returns base when unused, otherwise base suffixed with the
// record's position (and a counter if that is taken too).
func (n outputNames) reserve(base string, index int) string {
	name := base
	for i := 0; n[strings.ToLower(name)]; i++ {
		if i == 0 {
			name = fmt.Sprintf("%s-%d", base, index+1)
		} else {
			name = fmt.Sprintf("%s-%d-%d", base, index+1, i)
		}
	}
	n[strings.ToLower(name)] = true
	return name
}

// resolveGenerators looks up each name once, dropping aliases that resolve
// to a format already listed.
func resolveGenerators(names []string) ([]format.Generator, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no output formats given")
	}

	seen := make(map[string]bool, len(names))
	generators := make([]format.Generator, 0, len(names))
	for _, name := range names {
		g, err := format.GetGenerator(name)
		if err != nil {
			return nil, err
		}
		if seen[g.Name()] {
			continue
		}
		seen[g.Name()] = true
		generators = append(generators, g)
	}
	return generators, nil
}

func formatNames(generators []format.Generator) []string {
	names := make([]string, len(generators))
	for i, g := range generators {
		names[i] = g.Name()
	}
	return names
}

// Package export is the entry point used by the export pipeline: it takes one
// record as JSON and returns one XML document.
package export

import (
	"log/slog"
	"sync"

	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/format/dublincore"
	"github.com/lehigh-university-libraries/zotero-xml/format/mods"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
	"github.com/lehigh-university-libraries/zotero-xml/internal/logging"
)

// GenerateMODS decodes recordJSON and renders it as MODS. On a decode
// failure the error is a *hub.DecodeError and no XML is returned.
func GenerateMODS(recordJSON string) (string, error) {
	record, err := hub.DecodeString(recordJSON)
	if err != nil {
		return "", err
	}
	return mods.Generate(record), nil
}

// GenerateDC decodes recordJSON and renders it as oai_dc Dublin Core.
func GenerateDC(recordJSON string) (string, error) {
	record, err := hub.DecodeString(recordJSON)
	if err != nil {
		return "", err
	}
	return dublincore.Generate(record), nil
}

// Generate renders recordJSON in the named format ("mods", "dublincore" or
// an alias such as "dc"). An unknown format is reported before the record
// is decoded.
func Generate(formatName, recordJSON string) (string, error) {
	g, err := format.GetGenerator(formatName)
	if err != nil {
		return "", err
	}
	record, err := hub.DecodeString(recordJSON)
	if err != nil {
		return "", err
	}
	return g.Generate(record), nil
}

// InitOption configures Init.
type InitOption func(*initOptions)

type initOptions struct {
	logger *slog.Logger
}

// WithLogger installs logger instead of one built from LOG_LEVEL and
// LOG_FORMAT.
func WithLogger(logger *slog.Logger) InitOption {
	return func(o *initOptions) {
		o.logger = logger
	}
}

var initOnce sync.Once

// Init installs the diagnostic logger as the slog default and logs one
// line. Only the first call has any effect. Calling it is optional:
// generation does not depend on it.
func Init(opts ...InitOption) {
	initOnce.Do(func() {
		o := &initOptions{}
		for _, opt := range opts {
			opt(o)
		}
		if o.logger == nil {
			o.logger = logging.New(logging.FromEnv())
		}

		slog.SetDefault(o.logger)
		slog.Info("metadata module initialized", "formats", format.List())
	})
}

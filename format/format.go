// Package format defines the interface for metadata format plugins.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "mods", "dublincore")
	Name() string

	// Aliases returns alternative names the format can be looked up by
	Aliases() []string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string
}

// Generator is a format that renders a single record as an XML document.
//
// Generate must be safe for concurrent use and must not keep references to
// the record after returning.
type Generator interface {
	Format

	// Generate returns the complete document for one record. It cannot fail
	// once the record has been decoded.
	Generate(record *hub.Record) string
}

// SerializeOptions contains options for writing a document.
type SerializeOptions struct {
	// StripHTML removes HTML markup from abstracts before rendering
	StripHTML bool

	// TrailingNewline appends a newline after the document, for files and
	// terminals. Generated documents never end with one on their own.
	TrailingNewline bool
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		TrailingNewline: true,
	}
}

// Serialize writes the document for one record to w.
func Serialize(w io.Writer, g Generator, record *hub.Record, opts *SerializeOptions) error {
	if opts == nil {
		opts = NewSerializeOptions()
	}
	if opts.StripHTML {
		record = stripHTML(record)
	}

	doc := g.Generate(record)
	if opts.TrailingNewline {
		doc += "\n"
	}

	_, err := io.WriteString(w, doc)
	return err
}

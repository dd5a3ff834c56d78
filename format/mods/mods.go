// Package mods provides a format plugin for MODS (Metadata Object Description Schema).
package mods

import (
	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

// Version documents the MODS major version whose namespace the output binds.
const Version = "3"

// Format implements the MODS format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format    = (*Format)(nil)
	_ format.Generator = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "mods"
}

// Aliases returns alternative lookup names.
func (f *Format) Aliases() []string {
	return nil
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MODS (Metadata Object Description Schema v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"mods"}
}

// Generate renders the record as a MODS document.
func (f *Format) Generate(record *hub.Record) string {
	return Generate(record)
}

func init() {
	format.Register(&Format{})
}

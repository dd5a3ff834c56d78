// Package dublincore provides a format plugin for simple Dublin Core in the
// OAI-PMH oai_dc container.
package dublincore

import (
	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

// Version documents the Dublin Core specification this implementation targets.
const Version = "2020-01-20"

// Format implements the Dublin Core format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format    = (*Format)(nil)
	_ format.Generator = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "dublincore"
}

// Aliases returns alternative lookup names.
func (f *Format) Aliases() []string {
	return []string{"dc", "oai_dc"}
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "Dublin Core Metadata Element Set in oai_dc (v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"dc"}
}

// Generate renders the record as an oai_dc document.
func (f *Format) Generate(record *hub.Record) string {
	return Generate(record)
}

func init() {
	format.Register(&Format{})
}

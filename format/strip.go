package format

import (
	"github.com/lehigh-university-libraries/zotero-xml/helpers"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

// stripHTML returns a copy of record whose abstract has HTML markup removed.
// The input record is left unchanged.
func stripHTML(record *hub.Record) *hub.Record {
	if record.AbstractNote == nil || !helpers.IsHTML(*record.AbstractNote) {
		return record
	}
	clone := *record
	clone.AbstractNote = hub.String(helpers.StripHTML(*record.AbstractNote))
	return &clone
}

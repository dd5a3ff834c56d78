package mods

import (
	"strings"

	"github.com/lehigh-university-libraries/zotero-xml/helpers"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

	rootOpen = `<mods xmlns="http://www.loc.gov/mods/v3"` +
		` xmlns:mods="http://www.loc.gov/mods/v3"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` +
		` xmlns:xlink="http://www.w3.org/1999/xlink"` +
		` xsi:schemaLocation="http://www.loc.gov/mods/v3 http://www.loc.gov/standards/mods/mods.xsd">`

	rootClose = `</mods>`
)

// Generate renders a record as a MODS document. Lines are joined with "\n"
// and the result has no trailing newline.
//
// Only title, creators, date, abstract and item type are mapped; publisher,
// language, rights and tags have no MODS rendering here.
func Generate(record *hub.Record) string {
	lines := []string{xmlDeclaration, rootOpen}

	// Title
	if record.Title != nil {
		lines = append(lines, "  <titleInfo><title>"+helpers.EscapeXML(*record.Title)+"</title></titleInfo>")
	}

	// Names
	for _, c := range record.Creators {
		lines = append(lines, `  <name type="personal">`)
		lines = append(lines, "    <namePart>"+helpers.EscapeXML(c.DisplayName())+"</namePart>")
		if c.HasRole() {
			lines = append(lines,
				"    <role>",
				`      <roleTerm type="text">`+helpers.EscapeXML(c.CreatorType)+"</roleTerm>",
				"    </role>",
			)
		}
		lines = append(lines, "  </name>")
	}

	// Origin info
	if record.Date != nil {
		lines = append(lines,
			"  <originInfo>",
			"    <dateIssued>"+helpers.EscapeXML(*record.Date)+"</dateIssued>",
			"  </originInfo>",
		)
	}

	// Abstract
	if record.AbstractNote != nil {
		lines = append(lines, "  <abstract>"+helpers.EscapeXML(*record.AbstractNote)+"</abstract>")
	}

	// Type of resource, passed through as given
	if record.ItemType != nil {
		lines = append(lines, "  <typeOfResource>"+helpers.EscapeXML(*record.ItemType)+"</typeOfResource>")
	}

	lines = append(lines, rootClose)

	return strings.Join(lines, "\n")
}

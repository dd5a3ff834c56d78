package dublincore

import (
	"strings"

	"github.com/lehigh-university-libraries/zotero-xml/helpers"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

const (
	rootOpen = `<oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` +
		` xsi:schemaLocation="http://www.openarchives.org/OAI/2.0/oai_dc/ http://www.openarchives.org/OAI/2.0/oai_dc.xsd">`

	rootClose = `</oai_dc:dc>`
)

// Generate renders a record as an oai_dc document. There is no XML
// declaration; lines are joined with "\n" and the result has no trailing
// newline.
func Generate(record *hub.Record) string {
	lines := []string{rootOpen, element("identifier", record.LibraryKey)}

	if record.Title != nil {
		lines = append(lines, element("title", *record.Title))
	}

	for _, c := range record.Creators {
		lines = append(lines, element(creatorElement(c.CreatorType), c.DisplayName()))
	}

	if record.Date != nil {
		lines = append(lines, element("date", *record.Date))
	}

	if record.AbstractNote != nil {
		lines = append(lines, element("description", *record.AbstractNote))
	}

	// Vocabulary terms are fixed ASCII labels and are written as-is
	if record.ItemType != nil {
		lines = append(lines, "  <dc:type>"+DCMIType(*record.ItemType)+"</dc:type>")
	}

	if record.Publisher != nil {
		lines = append(lines, element("publisher", *record.Publisher))
	}

	if record.Language != nil {
		lines = append(lines, element("language", *record.Language))
	}

	for _, t := range record.Tags {
		lines = append(lines, element("subject", t.Tag))
	}

	if record.Rights != nil {
		lines = append(lines, element("rights", *record.Rights))
	}

	lines = append(lines, rootClose)

	return strings.Join(lines, "\n")
}

// creatorElement picks dc:creator for primary authorship roles and
// dc:contributor for everything else, including an empty role.
func creatorElement(creatorType string) string {
	switch creatorType {
	case "author", "creator":
		return "creator"
	default:
		return "contributor"
	}
}

func element(name, value string) string {
	return "  <dc:" + name + ">" + helpers.EscapeXML(value) + "</dc:" + name + ">"
}

// Package helpers holds small text utilities shared by the format plugins.
package helpers

import "strings"

// xmlEscaper performs every substitution in one left-to-right pass, so the
// ampersands it emits are never escaped a second time.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML makes s safe for XML element content by replacing the five
// predefined entities. All other characters are left untouched.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

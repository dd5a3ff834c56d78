// Package hub defines the item record shared by every output format and
// decodes it from the JSON handed over by the export pipeline.
package hub

import (
	"fmt"
	"strings"
)

// Record is one bibliographic entry exported from a reference library.
//
// Optional scalar fields are pointers so that an absent field (nil) stays
// distinct from a present but empty one. Serializers omit whole elements
// for absent fields.
type Record struct {
	// LibraryKey uniquely identifies the entry within its source library.
	LibraryKey string

	Title        *string
	Creators     []Creator
	Date         *string
	AbstractNote *string
	ItemType     *string
	Publisher    *string
	Language     *string
	Rights       *string
	Tags         []Tag
}

// Tag is a single subject keyword attached to a record.
type Tag struct {
	Tag string
}

// Summary returns a short multi-line description of the record for
// validation listings.
func (r *Record) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Key: %s\n", r.LibraryKey)
	fmt.Fprintf(&b, "Title: %s\n", Value(r.Title))
	fmt.Fprintf(&b, "Creators: %d\n", len(r.Creators))
	fmt.Fprintf(&b, "Tags: %d\n", len(r.Tags))
	if r.ItemType != nil {
		fmt.Fprintf(&b, "Item Type: %s\n", *r.ItemType)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Value dereferences an optional field, returning "" when it is absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// String returns a pointer to s, for building records in code.
func String(s string) *string {
	return &s
}

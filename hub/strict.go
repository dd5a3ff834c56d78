package hub

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	jsoniter "github.com/json-iterator/go"
)

// Known keys per object. Repeating one of these is an error; repeated
// unknown keys are ignored like any other unknown key.
var (
	recordFields = map[string]bool{
		"libraryKey": true, "title": true, "creators": true, "date": true,
		"abstractNote": true, "itemType": true, "publisher": true,
		"language": true, "rights": true, "tags": true,
	}
	creatorFields = map[string]bool{"firstName": true, "lastName": true, "creatorType": true}
	tagFields     = map[string]bool{"tag": true}
)

// checkStrict rejects input the unmarshaller tolerates: a known key given
// twice, and \u escapes naming half a surrogate pair. data must already
// have unmarshalled cleanly.
func checkStrict(data []byte) error {
	if field := duplicateField(jsoniter.ParseBytes(jsonAPI, data), "", recordFields); field != "" {
		return &DecodeError{Msg: fmt.Sprintf("duplicate field `%s`", field)}
	}
	if offset, ok := loneSurrogate(data); ok {
		return &DecodeError{Msg: fmt.Sprintf("lone surrogate in hex escape at offset %d", offset)}
	}
	return nil
}

func duplicateField(iter *jsoniter.Iterator, prefix string, known map[string]bool) string {
	seen := make(map[string]bool, len(known))
	dup := ""
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		if known[field] {
			if seen[field] {
				dup = prefix + field
				return false
			}
			seen[field] = true
		}

		nested := nestedFields(prefix, field)
		if nested == nil || it.WhatIsNext() != jsoniter.ArrayValue {
			it.Skip()
			return true
		}

		i := 0
		it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			if it.WhatIsNext() == jsoniter.ObjectValue {
				dup = duplicateField(it, fmt.Sprintf("%s[%d].", field, i), nested)
			} else {
				it.Skip()
			}
			i++
			return dup == ""
		})
		return dup == ""
	})
	return dup
}

// nestedFields returns the known keys of the objects inside a top-level
// array field, or nil when the field holds no checked objects.
func nestedFields(prefix, field string) map[string]bool {
	if prefix != "" {
		return nil
	}
	switch field {
	case "creators":
		return creatorFields
	case "tags":
		return tagFields
	}
	return nil
}

// loneSurrogate returns the offset of the first \u escape that is an
// unpaired UTF-16 surrogate. Backslashes only occur inside strings in
// valid JSON, so no string tracking is needed.
func loneSurrogate(data []byte) (int, bool) {
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			continue
		}
		r, ok := hexEscape(data, i)
		if !ok {
			i++
			continue
		}
		switch {
		case !utf16.IsSurrogate(r):
			i += 5
		case r < 0xdc00:
			low, ok := hexEscape(data, i+6)
			if !ok || low < 0xdc00 || low > 0xdfff {
				return i, true
			}
			i += 11
		default:
			return i, true
		}
	}
	return 0, false
}

func hexEscape(data []byte, i int) (rune, bool) {
	if i+6 > len(data) || data[i] != '\\' || data[i+1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(data[i+2:i+6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

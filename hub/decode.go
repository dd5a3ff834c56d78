package hub

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// Keys match their json tags exactly; "Title" is an unknown key, not title.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// Wire shapes. Required keys are pointers so that a missing key can be told
// apart from an empty string; the validator rejects nil.

type recordJSON struct {
	LibraryKey   *string       `json:"libraryKey" validate:"required"`
	Title        *string       `json:"title"`
	Creators     []creatorJSON `json:"creators" validate:"dive"`
	Date         *string       `json:"date"`
	AbstractNote *string       `json:"abstractNote"`
	ItemType     *string       `json:"itemType"`
	Publisher    *string       `json:"publisher"`
	Language     *string       `json:"language"`
	Rights       *string       `json:"rights"`
	Tags         []tagJSON     `json:"tags" validate:"dive"`
}

type creatorJSON struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName" validate:"required"`
	CreatorType *string `json:"creatorType" validate:"required"`
}

type tagJSON struct {
	Tag *string `json:"tag" validate:"required"`
}

// Decode parses one JSON record. Keys are case-sensitive, unknown keys are
// ignored and a missing or null optional key decodes to an absent field.
// A repeated known key or an unpaired surrogate escape is rejected. Every
// failure is a *DecodeError.
func Decode(data []byte) (*Record, error) {
	if !utf8.Valid(data) {
		return nil, &DecodeError{Msg: "input is not valid UTF-8"}
	}

	var raw recordJSON
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Msg: err.Error(), Err: err}
	}

	if err := checkStrict(data); err != nil {
		return nil, err
	}

	if err := validate.Struct(&raw); err != nil {
		return nil, validationError(err)
	}

	return raw.toRecord(), nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (*Record, error) {
	return Decode([]byte(s))
}

// SplitRecords splits a batch document into raw per-record JSON. A document
// starting with '[' is a JSON array; anything else is read as JSON Lines.
// Records are not decoded, so one bad record does not fail the batch.
func SplitRecords(data []byte) ([][]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []jsoniter.RawMessage
		if err := jsonAPI.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parsing record array: %w", err)
		}
		out := make([][]byte, 0, len(items))
		for _, item := range items {
			out = append(out, []byte(item))
		}
		return out, nil
	}

	var out [][]byte
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *recordJSON) toRecord() *Record {
	record := &Record{
		LibraryKey:   *r.LibraryKey,
		Title:        r.Title,
		Date:         r.Date,
		AbstractNote: r.AbstractNote,
		ItemType:     r.ItemType,
		Publisher:    r.Publisher,
		Language:     r.Language,
		Rights:       r.Rights,
	}

	if r.Creators != nil {
		record.Creators = make([]Creator, 0, len(r.Creators))
		for _, c := range r.Creators {
			record.Creators = append(record.Creators, Creator{
				FirstName:   c.FirstName,
				LastName:    *c.LastName,
				CreatorType: *c.CreatorType,
			})
		}
	}

	if r.Tags != nil {
		record.Tags = make([]Tag, 0, len(r.Tags))
		for _, t := range r.Tags {
			record.Tags = append(record.Tags, Tag{Tag: *t.Tag})
		}
	}

	return record
}

package hub

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFullRecord(t *testing.T) {
	input := `{
		"libraryKey": "ABC123",
		"title": "Test Article",
		"creators": [
			{"firstName": "John", "lastName": "Doe", "creatorType": "author"},
			{"lastName": "Smith", "creatorType": ""}
		],
		"date": "2024-01-01",
		"abstractNote": "An abstract.",
		"itemType": "journalArticle",
		"publisher": "Test Press",
		"language": "en",
		"rights": "CC BY 4.0",
		"tags": [{"tag": "a"}, {"tag": "b"}],
		"version": 42,
		"collections": ["X"]
	}`

	r, err := DecodeString(input)
	require.NoError(t, err)

	assert.Equal(t, "ABC123", r.LibraryKey)
	assert.Equal(t, "Test Article", Value(r.Title))
	require.Len(t, r.Creators, 2)
	assert.Equal(t, "John Doe", r.Creators[0].DisplayName())
	assert.Equal(t, "author", r.Creators[0].CreatorType)
	assert.Nil(t, r.Creators[1].FirstName)
	assert.Equal(t, "Smith", r.Creators[1].DisplayName())
	assert.False(t, r.Creators[1].HasRole())
	assert.Equal(t, "2024-01-01", Value(r.Date))
	assert.Equal(t, "An abstract.", Value(r.AbstractNote))
	assert.Equal(t, "journalArticle", Value(r.ItemType))
	assert.Equal(t, "Test Press", Value(r.Publisher))
	assert.Equal(t, "en", Value(r.Language))
	assert.Equal(t, "CC BY 4.0", Value(r.Rights))
	assert.Equal(t, []Tag{{Tag: "a"}, {Tag: "b"}}, r.Tags)
}

func TestDecodeAbsentVersusEmpty(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "K", "title": "", "date": null}`)
	require.NoError(t, err)

	require.NotNil(t, r.Title, "empty title must stay present")
	assert.Equal(t, "", *r.Title)
	assert.Nil(t, r.Date, "null decodes to absent")
	assert.Nil(t, r.AbstractNote)
	assert.Nil(t, r.Creators)
	assert.Nil(t, r.Tags)
}

func TestDecodeEmptyArrays(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "K", "creators": [], "tags": []}`)
	require.NoError(t, err)

	assert.NotNil(t, r.Creators)
	assert.Empty(t, r.Creators)
	assert.NotNil(t, r.Tags)
	assert.Empty(t, r.Tags)
}

func TestDecodeEmptyRequiredValues(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "", "creators": [{"firstName": "Ann", "lastName": "", "creatorType": ""}]}`)
	require.NoError(t, err)

	assert.Equal(t, "", r.LibraryKey)
	require.Len(t, r.Creators, 1)
	assert.Equal(t, "Ann ", r.Creators[0].DisplayName())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:  "malformed json",
			input: `{"libraryKey": "K",`,
		},
		{
			name:  "not an object",
			input: `"just a string"`,
		},
		{
			name:    "missing library key",
			input:   `{"title": "No key"}`,
			wantMsg: "missing field `libraryKey`",
		},
		{
			name:    "null library key",
			input:   `{"libraryKey": null}`,
			wantMsg: "missing field `libraryKey`",
		},
		{
			name:    "creator missing last name",
			input:   `{"libraryKey": "K", "creators": [{"firstName": "John", "creatorType": "author"}]}`,
			wantMsg: "missing field `creators[0].lastName`",
		},
		{
			name:    "creator missing type",
			input:   `{"libraryKey": "K", "creators": [{"lastName": "Doe"}]}`,
			wantMsg: "missing field `creators[0].creatorType`",
		},
		{
			name:    "tag missing value",
			input:   `{"libraryKey": "K", "tags": [{"tag": "a"}, {"type": 1}]}`,
			wantMsg: "missing field `tags[1].tag`",
		},
		{
			name:  "wrong field type",
			input: `{"libraryKey": "K", "title": 12}`,
		},
		{
			name:  "tags not an array",
			input: `{"libraryKey": "K", "tags": "a,b"}`,
		},
		{
			name:  "invalid utf-8",
			input: "{\"libraryKey\": \"K\", \"title\": \"\xff\xfe\"}",
		},
		{
			name:  "trailing garbage",
			input: `{"libraryKey": "K"} extra`,
		},
		{
			name:    "key in wrong case",
			input:   `{"LIBRARYKEY": "K"}`,
			wantMsg: "missing field `libraryKey`",
		},
		{
			name:    "creator key in wrong case",
			input:   `{"libraryKey": "K", "creators": [{"LastName": "Doe", "creatorType": "author"}]}`,
			wantMsg: "missing field `creators[0].lastName`",
		},
		{
			name:    "duplicate key",
			input:   `{"libraryKey": "A", "libraryKey": "B"}`,
			wantMsg: "duplicate field `libraryKey`",
		},
		{
			name:    "duplicate creator key",
			input:   `{"libraryKey": "K", "creators": [{"lastName": "A", "creatorType": ""}, {"lastName": "B", "lastName": "C", "creatorType": ""}]}`,
			wantMsg: "duplicate field `creators[1].lastName`",
		},
		{
			name:    "duplicate tag key",
			input:   `{"libraryKey": "K", "tags": [{"tag": "a", "tag": "b"}]}`,
			wantMsg: "duplicate field `tags[0].tag`",
		},
		{
			name:    "lone leading surrogate",
			input:   `{"libraryKey": "K", "title": "\ud800"}`,
			wantMsg: "lone surrogate",
		},
		{
			name:    "lone trailing surrogate",
			input:   `{"libraryKey": "K", "title": "x\udc00y"}`,
			wantMsg: "lone surrogate",
		},
		{
			name:    "leading surrogate followed by non-surrogate",
			input:   `{"libraryKey": "K", "title": "\ud83d\u0041"}`,
			wantMsg: "lone surrogate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeString(tt.input)
			require.Error(t, err)
			assert.Nil(t, r)

			assert.True(t, errors.Is(err, ErrDecode))

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.NotEmpty(t, decodeErr.Msg)
			assert.Contains(t, err.Error(), "JSON parse error")
			if tt.wantMsg != "" {
				assert.Contains(t, decodeErr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestDecodeKeysAreCaseSensitive(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "K", "Title": "Shouting", "ABSTRACTNOTE": "x", "tags": [{"tag": "a", "Tag": "b"}]}`)
	require.NoError(t, err)

	assert.Nil(t, r.Title)
	assert.Nil(t, r.AbstractNote)
	assert.Equal(t, []Tag{{Tag: "a"}}, r.Tags)
}

func TestDecodeEscapes(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "K", "title": "\ud83d\ude00 \\ud800 \u00e9"}`)
	require.NoError(t, err)
	assert.Equal(t, "😀 \\ud800 é", Value(r.Title))
}

func TestDecodeRepeatedUnknownKey(t *testing.T) {
	r, err := DecodeString(`{"libraryKey": "K", "version": 1, "version": 2}`)
	require.NoError(t, err)
	assert.Equal(t, "K", r.LibraryKey)
}

func TestDecodePreservesOrder(t *testing.T) {
	r, err := DecodeString(`{
		"libraryKey": "K",
		"creators": [
			{"lastName": "C", "creatorType": "author"},
			{"lastName": "A", "creatorType": "editor"},
			{"lastName": "B", "creatorType": "author"}
		],
		"tags": [{"tag": "z"}, {"tag": "x"}, {"tag": "y"}]
	}`)
	require.NoError(t, err)

	names := make([]string, 0, len(r.Creators))
	for _, c := range r.Creators {
		names = append(names, c.LastName)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
	assert.Equal(t, []Tag{{"z"}, {"x"}, {"y"}}, r.Tags)
}

func TestSplitRecords(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		parts, err := SplitRecords([]byte(` [{"libraryKey": "A"}, {"libraryKey": "B"}] `))
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.JSONEq(t, `{"libraryKey": "A"}`, string(parts[0]))
		assert.JSONEq(t, `{"libraryKey": "B"}`, string(parts[1]))
	})

	t.Run("json lines", func(t *testing.T) {
		parts, err := SplitRecords([]byte("{\"libraryKey\": \"A\"}\n\n{\"libraryKey\": \"B\"}\n"))
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.Equal(t, `{"libraryKey": "B"}`, string(parts[1]))
	})

	t.Run("bad line kept for per-record decode", func(t *testing.T) {
		parts, err := SplitRecords([]byte("{\"libraryKey\": \"A\"}\nnot json"))
		require.NoError(t, err)
		require.Len(t, parts, 2)

		_, err = Decode(parts[1])
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("empty", func(t *testing.T) {
		parts, err := SplitRecords([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("malformed array", func(t *testing.T) {
		_, err := SplitRecords([]byte(`[{"libraryKey": "A"}`))
		assert.Error(t, err)
	})
}

func TestRecordSummary(t *testing.T) {
	r := &Record{
		LibraryKey: "K1",
		Title:      String("A Title"),
		Creators:   []Creator{{LastName: "Doe", CreatorType: "author"}},
		ItemType:   String("book"),
	}

	summary := r.Summary()
	assert.Contains(t, summary, "Key: K1")
	assert.Contains(t, summary, "Title: A Title")
	assert.Contains(t, summary, "Creators: 1")
	assert.Contains(t, summary, "Item Type: book")
}

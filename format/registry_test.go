package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/zotero-xml/format"
	"github.com/lehigh-university-libraries/zotero-xml/format/dublincore"
	"github.com/lehigh-university-libraries/zotero-xml/format/mods"
	"github.com/lehigh-university-libraries/zotero-xml/hub"
)

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{"dublincore", "mods"}, format.List())

	for _, name := range []string{"mods", "MODS", " mods ", "dublincore", "dc", "oai_dc"} {
		t.Run(name, func(t *testing.T) {
			g, err := format.GetGenerator(name)
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}

	_, err := format.GetGenerator("bibtex")
	assert.EqualError(t, err, "unknown format: bibtex")
}

type describeOnly struct{}

func (describeOnly) Name() string         { return "listing" }
func (describeOnly) Aliases() []string    { return nil }
func (describeOnly) Description() string  { return "not a generator" }
func (describeOnly) Extensions() []string { return []string{"lst"} }

func TestRegistryNonGenerator(t *testing.T) {
	r := format.NewRegistry()
	r.Register(describeOnly{})

	f, ok := r.Get("LISTING")
	require.True(t, ok)
	assert.Equal(t, "listing", f.Name())

	_, err := r.GetGenerator("listing")
	assert.EqualError(t, err, "format listing does not support generation")
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"ABC123.mods.xml", "mods"},
		{"out/ABC123.dublincore.xml", "dublincore"},
		{"ABC123.dc.xml", "dublincore"},
		{"record.mods", "mods"},
		{"record.DC", "dublincore"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			f, err := format.DetectFormat(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	for _, bad := range []string{"record.xml", "record.json", "record"} {
		_, err := format.DetectFormat(bad)
		assert.Error(t, err, bad)
	}
}

func TestSerialize(t *testing.T) {
	record := &hub.Record{
		LibraryKey:   "K",
		AbstractNote: hub.String("<p>Rich &amp; <i>styled</i></p>"),
	}

	t.Run("defaults add trailing newline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, format.Serialize(&buf, &dublincore.Format{}, record, nil))
		assert.Equal(t, dublincore.Generate(record)+"\n", buf.String())
	})

	t.Run("strip html", func(t *testing.T) {
		var buf bytes.Buffer
		opts := &format.SerializeOptions{StripHTML: true}
		require.NoError(t, format.Serialize(&buf, &mods.Format{}, record, opts))

		out := buf.String()
		assert.Contains(t, out, "<abstract>Rich &amp; styled</abstract>")
		assert.False(t, strings.HasSuffix(out, "\n"))
		assert.Equal(t, "<p>Rich &amp; <i>styled</i></p>", *record.AbstractNote, "input record untouched")
	})

	t.Run("plain abstract kept", func(t *testing.T) {
		plain := &hub.Record{LibraryKey: "K", AbstractNote: hub.String("a < b")}
		var buf bytes.Buffer
		require.NoError(t, format.Serialize(&buf, &mods.Format{}, plain, &format.SerializeOptions{StripHTML: true}))
		assert.Contains(t, buf.String(), "<abstract>a &lt; b</abstract>")
	})
}

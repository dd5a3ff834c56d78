package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleRecord = `{"libraryKey": "ABC123", "title": "Test Article", "creators": [{"firstName": "John", "lastName": "Doe", "creatorType": "author"}], "itemType": "film"}`

// run executes the CLI from an empty temp directory and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, sampleRecord, "generate", "mods")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<namePart>John Doe</namePart>")
	assert.True(t, strings.HasSuffix(out, "</mods>\n"))

	out, err = run(t, sampleRecord, "generate", "dc")
	require.NoError(t, err)
	assert.Contains(t, out, "<dc:type>MovingImage</dc:type>")
}

func TestGenerateCommandDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "item.json")
	output := filepath.Join(dir, "ABC123.dublincore.xml")
	require.NoError(t, os.WriteFile(input, []byte(sampleRecord), 0o600))

	_, err := run(t, "", "generate", "-i", input, "-o", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<dc:identifier>ABC123</dc:identifier>")
}

func TestGenerateCommandErrors(t *testing.T) {
	_, err := run(t, sampleRecord, "generate")
	assert.ErrorContains(t, err, "format argument is required")

	_, err = run(t, sampleRecord, "generate", "marc")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, `{"title": "no key"}`, "generate", "mods")
	assert.ErrorContains(t, err, "missing field `libraryKey`")
}

func TestConvertCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	batch := `[` + sampleRecord + `, {"libraryKey": "DEF456", "tags": [{"tag": "x"}]}]`

	out, err := run(t, batch, "convert", "-d", outDir, "-f", "mods,dc", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 2 of 2 records, 4 files written")

	for _, name := range []string{"ABC123.mods.xml", "ABC123.dublincore.xml", "DEF456.mods.xml", "DEF456.dublincore.xml"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	content, err := os.ReadFile(filepath.Join(outDir, "DEF456.dublincore.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<dc:subject>x</dc:subject>")
	assert.True(t, strings.HasSuffix(string(content), "</oai_dc:dc>\n"))
}

func TestConvertCommandPartialFailure(t *testing.T) {
	outDir := t.TempDir()
	lines := sampleRecord + "\n" + `{"libraryKey": "BAD", "creators": [{"lastName": "X"}]}` + "\n"

	out, err := run(t, lines, "convert", "-d", outDir, "-f", "dublincore")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 records failed")
	assert.Contains(t, out, "Converted 1 of 2 records")

	assert.FileExists(t, filepath.Join(outDir, "ABC123.dublincore.xml"))
	assert.NoFileExists(t, filepath.Join(outDir, "BAD.dublincore.xml"))
}

func TestConvertCommandStripHTML(t *testing.T) {
	outDir := t.TempDir()
	record := `{"libraryKey": "H1", "abstractNote": "<p>Hello <i>world</i></p>"}`

	_, err := run(t, record, "convert", "-d", outDir, "-f", "mods", "--strip-html")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "H1.mods.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<abstract>Hello world</abstract>")
}

func TestConvertCommandDuplicateKeys(t *testing.T) {
	outDir := t.TempDir()
	batch := `[
		{"libraryKey": "DUP", "title": "First"},
		{"libraryKey": "DUP", "title": "Second"},
		{"libraryKey": "dup", "title": "Third"}
	]`

	out, err := run(t, batch, "convert", "-d", outDir, "-f", "dc", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 3 of 3 records, 3 files written")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	for name, title := range map[string]string{
		"DUP.dublincore.xml":   "First",
		"DUP-2.dublincore.xml": "Second",
		"dup-3.dublincore.xml": "Third",
	} {
		content, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(content), "<dc:title>"+title+"</dc:title>")
	}
}

func TestOutputNamesReserve(t *testing.T) {
	names := outputNames{}
	assert.Equal(t, "A", names.reserve("A", 0))
	assert.Equal(t, "A-2", names.reserve("A", 1))
	assert.Equal(t, "a-3", names.reserve("a", 2))
	assert.Equal(t, "A-2-2", names.reserve("A-2", 1))
	assert.Equal(t, "A-2-2-1", names.reserve("A-2", 1))
	assert.Equal(t, "record-5", names.reserve("record-5", 4))
}

func TestOutputBase(t *testing.T) {
	assert.Equal(t, "ABC", outputBase("ABC", 0))
	assert.Equal(t, "a_b", outputBase("a/b", 0))
	assert.Equal(t, "__etc", outputBase("../etc", 0))
	assert.Equal(t, "record-3", outputBase("  ", 2))
}

func TestResolveGenerators(t *testing.T) {
	gens, err := resolveGenerators([]string{"dc", "dublincore", "mods"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dublincore", "mods"}, formatNames(gens))

	_, err = resolveGenerators(nil)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, `[`+sampleRecord+`]`, "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Key: ABC123")
	assert.Contains(t, out, "Creators: 1")
	assert.Contains(t, out, "✓ Valid: 1 records")

	out, err = run(t, sampleRecord+"\nnot json\n", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "✗ Record 2: JSON parse error")
	assert.Contains(t, err.Error(), "1 of 2 records invalid")
}

func TestFormatsCommand(t *testing.T) {
	out, err := run(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "dublincore (dc, oai_dc)")
	assert.Contains(t, out, "mods - MODS")
}

func TestVocabCommand(t *testing.T) {
	out, err := run(t, "", "vocab")
	require.NoError(t, err)

	var doc vocabularyDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Text", doc.Default)
	require.Len(t, doc.Mappings, 8)
	assert.Equal(t, "book", doc.Mappings[0].ItemType)
}

func TestConfigFlag(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "custom.yaml")
	outDir := filepath.Join(t.TempDir(), "configured")
	require.NoError(t, os.WriteFile(cfgFile, []byte("convert:\n  formats: [mods]\n  output_dir: "+outDir+"\n"), 0o600))

	_, err := run(t, sampleRecord, "--config", cfgFile, "convert")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "ABC123.mods.xml"))
	assert.NoFileExists(t, filepath.Join(outDir, "ABC123.dublincore.xml"))

	_, err = run(t, sampleRecord, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "formats")
	assert.Error(t, err)
}

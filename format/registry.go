package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds registered formats.
//
// Formats are registered from package init functions and only read
// afterwards, so lookups need no locking.
type Registry struct {
	formats map[string]Format
	aliases map[string]string
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
		aliases: make(map[string]string),
	}
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) {
	name := strings.ToLower(f.Name())
	r.formats[name] = f
	for _, alias := range f.Aliases() {
		r.aliases[strings.ToLower(alias)] = name
	}
}

// Get retrieves a format by name or alias.
func (r *Registry) Get(name string) (Format, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	f, ok := r.formats[name]
	return f, ok
}

// GetGenerator retrieves a generator by name.
func (r *Registry) GetGenerator(name string) (Generator, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	g, ok := f.(Generator)
	if !ok {
		return nil, fmt.Errorf("format %s does not support generation", name)
	}
	return g, nil
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectFormat finds the format whose output file name matches filename,
// e.g. "ABC123.mods.xml" or "record.dc".
func (r *Registry) DetectFormat(filename string) (Format, error) {
	base := strings.ToLower(filepath.Base(filename))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	// Qualified names like "key.mods.xml" carry the format before ".xml"
	if ext == "xml" {
		inner := strings.TrimPrefix(filepath.Ext(strings.TrimSuffix(base, ".xml")), ".")
		if f, ok := r.Get(inner); ok {
			return f, nil
		}
	}

	for _, name := range r.List() {
		f := r.formats[name]
		for _, fext := range f.Extensions() {
			if ext == fext {
				return f, nil
			}
		}
	}

	return nil, fmt.Errorf("could not detect format for %s", filename)
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) {
	return DefaultRegistry.Get(name)
}

// GetGenerator retrieves a generator from the default registry.
func GetGenerator(name string) (Generator, error) {
	return DefaultRegistry.GetGenerator(name)
}

// List returns the format names in the default registry.
func List() []string {
	return DefaultRegistry.List()
}

// DetectFormat detects format using the default registry.
func DetectFormat(filename string) (Format, error) {
	return DefaultRegistry.DetectFormat(filename)
}

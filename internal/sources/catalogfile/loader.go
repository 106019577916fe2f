package catalogfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Loader reads a catalog document from a file, or the built-in one when no path is set.
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty filePath selects the embedded catalog.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the catalog document.
func (l *Loader) Load() (File, error) {
	data := defaultCatalog
	if l.filePath != "" {
		raw, err := os.ReadFile(l.filePath)
		if err != nil {
			return File{}, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a catalog document. Unknown fields are rejected so typos in
// hand-edited files surface at startup.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return f, nil
}

// Default returns the parsed embedded catalog.
func Default() (File, error) {
	return Parse(defaultCatalog)
}

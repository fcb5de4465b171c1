package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
)

// ManifestName is the build manifest written into the output directory.
const ManifestName = ".vader-build.properties"

const filePrefix = "file."

// Manifest records the hash of every source built into an output directory.
type Manifest struct {
	path  string
	props *properties.Properties
}

// LoadManifest reads the manifest in outDir. A missing manifest is empty.
func LoadManifest(outDir string) (*Manifest, error) {
	path := filepath.Join(outDir, ManifestName)
	p, err := properties.LoadFile(path, properties.UTF8)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{path: path, props: properties.NewProperties()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Manifest{path: path, props: p}, nil
}

// Hash returns the recorded hash of a source, by slash-separated relative path.
func (m *Manifest) Hash(rel string) (string, bool) {
	return m.props.Get(filePrefix + rel)
}

// SetHash records the hash of a source.
func (m *Manifest) SetHash(rel, hash string) {
	_, _, _ = m.props.Set(filePrefix+rel, hash)
}

// Remove forgets a source.
func (m *Manifest) Remove(rel string) {
	m.props.Delete(filePrefix + rel)
}

// Sources lists the recorded sources in sorted order.
func (m *Manifest) Sources() []string {
	var out []string
	for _, k := range m.props.Keys() {
		if rel, ok := strings.CutPrefix(k, filePrefix); ok {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// Save writes the manifest.
func (m *Manifest) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	if _, err := m.props.WriteComment(f, "# ", properties.UTF8); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package hostcaps

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
)

// Manifest is the on-disk record of an artifact's required capability set,
// written by the build toolchain next to the artifact it describes.
//
// The manifest names capabilities textually so it survives vocabulary growth
// across toolchain versions; [Manifest.RequiredSet] resolves the names back
// to values and fails closed on anything it does not recognize.
type Manifest struct {
	// Arch is the GOARCH the artifact was compiled for.
	Arch string `yaml:"arch"`
	// Capabilities lists the required capability names in build order.
	Capabilities []string `yaml:"capabilities"`
}

// HostManifest captures a capability set as a manifest for the build
// architecture. Used by tooling to snapshot a reference host.
func HostManifest(caps Set) *Manifest {
	return &Manifest{
		Arch:         runtime.GOARCH,
		Capabilities: manifestNames(caps),
	}
}

func manifestNames(caps Set) []string {
	names := make([]string, 0, caps.Len())
	for _, c := range caps.Members() {
		names = append(names, c.String())
	}
	return names
}

// RequiredSet resolves the manifest into a capability set.
//
// It fails when the manifest targets a different architecture or names
// capabilities outside this build's vocabulary; the error lists every
// unknown name, not just the first. Duplicate names collapse into one
// membership, preserving first-occurrence order.
func (m *Manifest) RequiredSet() (Set, error) {
	if m.Arch != runtime.GOARCH {
		return Set{}, fmt.Errorf("manifest targets %s, this binary runs on %s", m.Arch, runtime.GOARCH)
	}

	var required Set
	var unknown []string
	for _, name := range m.Capabilities {
		c, ok := ByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		required.Add(c)
	}
	if len(unknown) > 0 {
		return Set{}, fmt.Errorf("manifest names unknown capabilities: %s", strings.Join(unknown, ", "))
	}
	return required, nil
}

// ParseManifest decodes a manifest from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding capability manifest: %w", err)
	}
	if m.Arch == "" {
		return nil, fmt.Errorf("capability manifest has no arch")
	}
	return &m, nil
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capability manifest %q: %w", path, err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}
	return m, nil
}

// WriteManifest encodes the manifest to w.
func WriteManifest(w io.Writer, m *Manifest) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encoding capability manifest: %w", err)
	}
	return nil
}

// SaveManifest writes the manifest to path, truncating any existing file.
func SaveManifest(path string, m *Manifest) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating capability manifest %q: %w", path, err)
	}
	defer f.Close()

	return WriteManifest(f, m)
}

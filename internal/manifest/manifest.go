// Package manifest loads the YAML sample lists consumed by the preload
// command.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samplecask/samplecask/pkg/samples"
)

// Manifest is the on-disk preload list.
type Manifest struct {
	Samples []samples.Sample `yaml:"samples"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if len(m.Samples) == 0 {
		return nil, fmt.Errorf("manifest lists no samples")
	}
	for i, s := range m.Samples {
		if s.Directory == "" || s.File == "" {
			return nil, fmt.Errorf("manifest entry %d: directory and file are required", i)
		}
	}
	return &m, nil
}

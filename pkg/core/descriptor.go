// pkg/core/descriptor.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DescriptorFileName is the package descriptor read from the package root
const DescriptorFileName = "unipkg.toml"

// Descriptor is the package metadata the standard actions need to name and
// fill distributions.
type Descriptor struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Package     string   `toml:"package"` // import package directory under the root
	Description string   `toml:"description"`
	PackageData []string `toml:"package_data"`
}

// DefaultDescriptor returns the descriptor of the unicorn bindings
func DefaultDescriptor() *Descriptor {
	return &Descriptor{
		Name:        "unicorn",
		Version:     "1.0.0",
		Package:     "unicorn",
		Description: "Unicorn CPU emulator engine",
		PackageData: []string{"lib/*", "include/unicorn/*"},
	}
}

// LoadDescriptor reads <root>/unipkg.toml. A missing file yields the
// defaults.
func LoadDescriptor(root string) (*Descriptor, error) {
	path := filepath.Join(root, DescriptorFileName)
	desc := DefaultDescriptor()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return desc, nil
		}
		return nil, fmt.Errorf("descriptor: reading %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), desc); err != nil {
		return nil, fmt.Errorf("descriptor: failed to parse %s: %w", path, err)
	}

	if desc.Name == "" {
		return nil, fmt.Errorf("descriptor: %s: name is required", path)
	}
	if desc.Package == "" {
		desc.Package = desc.Name
	}

	return desc, nil
}

// DistName returns "<name>-<version>", the stem used by every distribution
func (d *Descriptor) DistName() string {
	return fmt.Sprintf("%s-%s", d.Name, d.Version)
}

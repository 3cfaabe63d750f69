package dist

import (
	"fmt"
	"path/filepath"

	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/fsutil"
)

// EggName returns the egg file name for a platform descriptor
func EggName(desc *core.Descriptor, platform string) string {
	return fmt.Sprintf("%s-%s-py3-%s.egg", wheelName(desc.Name), desc.Version, platform)
}

// WriteEgg packs <buildDir>/lib into an egg with EGG-INFO metadata and
// returns its path.
func WriteEgg(desc *core.Descriptor, buildDir, distDir, platform string) (string, error) {
	libDir := BuildLibDir(buildDir)
	if !fsutil.IsDir(filepath.Join(libDir, desc.Package)) {
		return "", fmt.Errorf("egg: %s not built under %s", desc.Package, libDir)
	}

	eggPath := filepath.Join(distDir, EggName(desc, platform))
	err := writeZip(eggPath, func(a *zipArchive) error {
		if err := a.addTree(libDir, ""); err != nil {
			return err
		}
		if err := a.addBytes("EGG-INFO/PKG-INFO", []byte(pkgInfo(desc)), 0644); err != nil {
			return err
		}
		if err := a.addBytes("EGG-INFO/top_level.txt", []byte(desc.Package+"\n"), 0644); err != nil {
			return err
		}
		// the package loads a shared library from its own directory
		return a.addBytes("EGG-INFO/not-zip-safe", []byte("\n"), 0644)
	})
	if err != nil {
		return "", fmt.Errorf("egg: writing %s: %w", eggPath, err)
	}

	return eggPath, nil
}

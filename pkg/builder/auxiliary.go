package builder

import (
	"fmt"
	"path/filepath"

	"github.com/unicorn-engine/unipkg/pkg/fsutil"
)

// AuxiliaryDependencies lists the runtime DLLs for the profile with their
// candidate locations: the toolchain prefix first, then the prebuilt
// directory.
func (b *Builder) AuxiliaryDependencies() []AuxiliaryDependency {
	names := b.config.Profile.AuxiliaryLibraries()
	if len(names) == 0 {
		return nil
	}

	var dirs []string
	if b.config.Prefix != "" {
		dirs = append(dirs, filepath.Join(b.config.Prefix, "bin"))
	}
	dirs = append(dirs, b.config.Layout.PrebuiltDir)

	deps := make([]AuxiliaryDependency, 0, len(names))
	for _, name := range names {
		dep := AuxiliaryDependency{Filename: name}
		for _, dir := range dirs {
			dep.Candidates = append(dep.Candidates, filepath.Join(dir, name))
		}
		deps = append(deps, dep)
	}

	return deps
}

// Resolve returns the first existing candidate
func (d AuxiliaryDependency) Resolve() (string, bool) {
	for _, candidate := range d.Candidates {
		if fsutil.IsFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// installAuxiliaries copies every resolvable dependency into the library
// directory and returns the names that could not be found.
func (b *Builder) installAuxiliaries(deps []AuxiliaryDependency) ([]string, error) {
	var missing []string

	for _, dep := range deps {
		src, ok := dep.Resolve()
		if !ok {
			b.logger.Printf("Auxiliary %s not found in %v", dep.Filename, dep.Candidates)
			missing = append(missing, dep.Filename)
			continue
		}
		if err := fsutil.CopyFile(src, b.config.Layout.LibraryDir); err != nil {
			return missing, fmt.Errorf("copying %s: %w", src, err)
		}
		b.logger.Printf("Bundled %s", src)
	}

	return missing, nil
}

package dist

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/fsutil"
	"github.com/unicorn-engine/unipkg/pkg/layout"
)

// BuildLibDir is where BuildPackage places importable packages
func BuildLibDir(buildDir string) string {
	return filepath.Join(buildDir, "lib")
}

// BuildPackage copies the import package into <buildDir>/lib/<package>:
// every Python module plus the files matched by the descriptor's
// package_data globs (relative to the package directory). The previous copy
// is replaced.
func BuildPackage(l *layout.Layout, desc *core.Descriptor, buildDir string) (string, error) {
	if !fsutil.IsDir(l.PackageDir) {
		return "", fmt.Errorf("package directory %s not found", l.PackageDir)
	}

	files, err := packageFiles(l.PackageDir, desc.PackageData)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(BuildLibDir(buildDir), desc.Package)
	if err := fsutil.Recreate(dst); err != nil {
		return "", err
	}

	for _, rel := range files {
		if err := fsutil.CopyFile(filepath.Join(l.PackageDir, rel), filepath.Join(dst, rel)); err != nil {
			return "", fmt.Errorf("copying package to %s: %w", dst, err)
		}
	}

	return dst, nil
}

// packageFiles returns the modules and data files of dir, relative to it
func packageFiles(dir string, dataGlobs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(rel string) {
		if !seen[rel] {
			seen[rel] = true
			files = append(files, rel)
		}
	}

	skip := skipBuildOutput()
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if skip(filepath.ToSlash(rel), d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".py") {
			add(rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing modules of %s: %w", dir, err)
	}

	data, err := fsutil.Glob(dir, dataGlobs...)
	if err != nil {
		return nil, fmt.Errorf("package_data: %w", err)
	}
	for _, p := range data {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil, err
		}
		add(rel)
	}

	return files, nil
}

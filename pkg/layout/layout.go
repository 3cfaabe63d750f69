// Package layout computes the fixed directory layout every pipeline stage
// works against.
package layout

import (
	"fmt"
	"path/filepath"

	"github.com/unicorn-engine/unipkg/pkg/fsutil"
)

// Layout holds the directories of one package root. All fields are absolute.
type Layout struct {
	PackageRoot      string // bindings directory holding unipkg.toml
	NativeSourceRoot string // enclosing native project (two levels up)
	StagingDir       string // <root>/src, present once sources are staged
	PackageDir       string // <root>/<package>
	HeaderDir        string // <root>/<package>/include
	LibraryDir       string // <root>/<package>/lib
	PrebuiltDir      string // <root>/prebuilt
	NativeBuildRoot  string // StagingDir if it exists, else NativeSourceRoot
}

// New computes the layout for the package root and import package name
func New(root, pkg string) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving package root %s: %w", root, err)
	}
	if pkg == "" {
		pkg = "unicorn"
	}

	l := &Layout{
		PackageRoot:      abs,
		NativeSourceRoot: filepath.Clean(filepath.Join(abs, "..", "..")),
		StagingDir:       filepath.Join(abs, "src"),
		PackageDir:       filepath.Join(abs, pkg),
		PrebuiltDir:      filepath.Join(abs, "prebuilt"),
	}
	l.HeaderDir = filepath.Join(l.PackageDir, "include")
	l.LibraryDir = filepath.Join(l.PackageDir, "lib")
	l.NativeBuildRoot = l.buildRoot()

	return l, nil
}

// buildRoot prefers the staged sources so a source distribution builds from
// its own snapshot.
func (l *Layout) buildRoot() string {
	if fsutil.IsDir(l.StagingDir) {
		return l.StagingDir
	}
	return l.NativeSourceRoot
}

// Refresh recomputes NativeBuildRoot after the staging directory changed
func (l *Layout) Refresh() {
	l.NativeBuildRoot = l.buildRoot()
}

// PublicHeaders is the header subtree copied into HeaderDir
func (l *Layout) PublicHeaders() string {
	return filepath.Join(l.NativeBuildRoot, "include", "unicorn")
}

// CleanArtifacts removes HeaderDir and LibraryDir
func (l *Layout) CleanArtifacts() error {
	for _, dir := range []string{l.HeaderDir, l.LibraryDir} {
		if err := removeAll(dir); err != nil {
			return err
		}
	}
	return nil
}

// ResetArtifacts removes and recreates HeaderDir and LibraryDir so no file
// from a previous run survives.
func (l *Layout) ResetArtifacts() error {
	for _, dir := range []string{l.HeaderDir, l.LibraryDir} {
		if err := fsutil.Recreate(dir); err != nil {
			return err
		}
	}
	return nil
}

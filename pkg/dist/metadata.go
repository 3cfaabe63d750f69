// Package dist implements the standard packaging actions that run after the
// native artifacts are in place: copying the package into the build tree,
// writing source and binary distributions, and linking an editable install.
package dist

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/unicorn-engine/unipkg/pkg/core"
)

// Generator is written into wheel and egg metadata
const Generator = "unipkg"

// pkgInfo renders core metadata in the PKG-INFO / METADATA format
func pkgInfo(desc *core.Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Metadata-Version: 2.1\n")
	fmt.Fprintf(&b, "Name: %s\n", desc.Name)
	fmt.Fprintf(&b, "Version: %s\n", desc.Version)
	if desc.Description != "" {
		fmt.Fprintf(&b, "Summary: %s\n", desc.Description)
	}
	return b.String()
}

// wheelName normalizes a distribution name for wheel and egg filenames
func wheelName(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// skipBuildOutput filters entries that never belong in a distribution:
// hidden files, bytecode caches and the output directories themselves.
func skipBuildOutput(excluded ...string) func(rel string, d fs.DirEntry) bool {
	return func(rel string, d fs.DirEntry) bool {
		name := d.Name()
		if strings.HasPrefix(name, ".") || name == "__pycache__" || strings.HasSuffix(name, ".pyc") {
			return true
		}
		for _, dir := range excluded {
			if rel == dir || strings.HasPrefix(rel, dir+"/") {
				return true
			}
		}
		return false
	}
}

// joinSlash joins archive member names
func joinSlash(elem ...string) string {
	return path.Join(elem...)
}

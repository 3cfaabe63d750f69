package dist

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/fsutil"
)

// WheelPythonTag is the interpreter tag of the wheels written here. The
// interop layer loads the library at run time, so it is not tied to an ABI.
const WheelPythonTag = "py2.py3-none"

// WheelName returns the wheel file name for a platform tag
func WheelName(desc *core.Descriptor, platTag string) string {
	return fmt.Sprintf("%s-%s-%s-%s.whl", wheelName(desc.Name), desc.Version, WheelPythonTag, platTag)
}

// WriteWheel packs <buildDir>/lib into a wheel tagged platTag and returns its
// path. The build tree must already hold the package.
func WriteWheel(desc *core.Descriptor, buildDir, distDir, platTag string) (string, error) {
	if platTag == "" {
		return "", fmt.Errorf("wheel: platform tag is required")
	}

	libDir := BuildLibDir(buildDir)
	if !fsutil.IsDir(filepath.Join(libDir, desc.Package)) {
		return "", fmt.Errorf("wheel: %s not built under %s", desc.Package, libDir)
	}

	wheelPath := filepath.Join(distDir, WheelName(desc, platTag))
	distInfo := fmt.Sprintf("%s-%s.dist-info", wheelName(desc.Name), desc.Version)

	err := writeZip(wheelPath, func(a *zipArchive) error {
		if err := a.addTree(libDir, ""); err != nil {
			return err
		}
		if err := a.addBytes(joinSlash(distInfo, "METADATA"), []byte(pkgInfo(desc)), 0644); err != nil {
			return err
		}
		if err := a.addBytes(joinSlash(distInfo, "WHEEL"), []byte(wheelFile(platTag)), 0644); err != nil {
			return err
		}
		if err := a.addBytes(joinSlash(distInfo, "top_level.txt"), []byte(desc.Package+"\n"), 0644); err != nil {
			return err
		}

		recordName := joinSlash(distInfo, "RECORD")
		var record strings.Builder
		for _, entry := range a.records {
			record.WriteString(entry.String() + "\n")
		}
		record.WriteString(recordEntry{Name: recordName}.String() + "\n")

		// RECORD lists itself without a hash
		data := []byte(record.String())
		return a.addBytes(recordName, data, 0644)
	})
	if err != nil {
		return "", fmt.Errorf("wheel: writing %s: %w", wheelPath, err)
	}

	return wheelPath, nil
}

func wheelFile(platTag string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wheel-Version: 1.0\n")
	fmt.Fprintf(&b, "Generator: %s\n", Generator)
	fmt.Fprintf(&b, "Root-Is-Purelib: false\n")
	for _, py := range strings.Split(strings.SplitN(WheelPythonTag, "-", 2)[0], ".") {
		fmt.Fprintf(&b, "Tag: %s-none-%s\n", py, platTag)
	}
	return b.String()
}

package dist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unicorn-engine/unipkg/pkg/core"
)

// PthFile collects the paths added to the interpreter search path
const PthFile = "easy-install.pth"

// LinkDevelop points installDir at the package root: it writes
// <name>.egg-link and adds the root to easy-install.pth once. The package
// directory is used in place, so rebuilt libraries are picked up directly.
func LinkDevelop(desc *core.Descriptor, packageRoot, installDir string) (string, error) {
	if err := os.MkdirAll(installDir, 0755); err != nil {
		return "", fmt.Errorf("develop: creating %s: %w", installDir, err)
	}

	linkPath := filepath.Join(installDir, desc.Name+".egg-link")
	if err := os.WriteFile(linkPath, []byte(packageRoot+"\n.\n"), 0644); err != nil {
		return "", fmt.Errorf("develop: writing %s: %w", linkPath, err)
	}

	pthPath := filepath.Join(installDir, PthFile)
	if err := appendUniqueLine(pthPath, packageRoot); err != nil {
		return "", fmt.Errorf("develop: updating %s: %w", pthPath, err)
	}

	return linkPath, nil
}

// appendUniqueLine appends line to path unless it is already present
func appendUniqueLine(path, line string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	entry := line + "\n"
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		entry = "\n" + entry
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

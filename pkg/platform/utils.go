// pkg/platform/utils.go
package platform

import (
	"fmt"
	"strings"
)

// defaultMacOSTarget is the deployment target used in macOS descriptors
const defaultMacOSTarget = "11.0"

// Machine returns the machine name uname would report for a Go architecture
func Machine(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "aarch64"
	case "arm":
		return "armv7l"
	case "ppc64le":
		return "ppc64le"
	case "s390x":
		return "s390x"
	default:
		return goarch
	}
}

// Descriptor returns the distutils-style platform descriptor, e.g.
// "linux-x86_64", "macosx-11.0-arm64", "win-amd64" or "mingw".
func Descriptor(p Profile) string {
	machine := Machine(p.Arch)

	switch p.Family {
	case WindowsEmulated:
		return "mingw"
	case WindowsNative:
		if strings.HasPrefix(p.OSID, "mingw") {
			return "mingw"
		}
		if p.Is64() {
			return "win-amd64"
		}
		return "win32"
	case Darwin:
		// macOS keeps the arm64 spelling
		if p.Arch == "arm64" {
			machine = "arm64"
		}
		return fmt.Sprintf("macosx-%s-%s", defaultMacOSTarget, machine)
	default:
		osID := p.OSID
		if osID == "" {
			osID = "linux"
		}
		return fmt.Sprintf("%s-%s", osID, machine)
	}
}

// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// OSFamily is the operating system family the native library is built for
type OSFamily int

const (
	Posix OSFamily = iota
	Darwin
	WindowsNative
	WindowsEmulated // Cygwin and the MSYS2 POSIX shell
)

func (f OSFamily) String() string {
	switch f {
	case Darwin:
		return "darwin"
	case WindowsNative:
		return "windows"
	case WindowsEmulated:
		return "windows-emulated"
	default:
		return "posix"
	}
}

// Profile identifies the platform the artifacts are staged for.
// It is resolved once per invocation and never mutated.
type Profile struct {
	Family       OSFamily
	PointerWidth int // 32 or 64
	OSID         string
	Arch         string
}

// Detect resolves the profile of the running process
func Detect() Profile {
	p := Resolve(hostOSID(), strconv.IntSize)
	p.Arch = runtime.GOARCH
	return p
}

func hostOSID() string {
	return osID(runtime.GOOS, os.Getenv)
}

// osID returns the OS identifier for goos. Go reports "windows" for native,
// MinGW, MSYS and Cygwin shells alike, so the shell markers decide.
func osID(goos string, getenv func(string) string) string {
	if goos != "windows" {
		return goos
	}

	// MINGW64, MINGW32, UCRT64 and CLANG64 all target native Windows. MSYS2
	// exports MSYSTEM in every shell, so it wins over OSTYPE.
	switch msystem := strings.ToLower(getenv("MSYSTEM")); {
	case msystem == "msys":
		return "msys"
	case msystem != "":
		return "mingw"
	}

	ostype := strings.ToLower(getenv("OSTYPE"))
	switch {
	case strings.HasPrefix(ostype, "cygwin"):
		return "cygwin"
	case strings.HasPrefix(ostype, "msys"):
		return "msys"
	}

	return "windows"
}

// IsWindows reports whether the profile targets any Windows flavor
func (p Profile) IsWindows() bool {
	return p.Family == WindowsNative || p.Family == WindowsEmulated
}

// Is64 reports whether the profile targets a 64-bit process
func (p Profile) Is64() bool {
	return p.PointerWidth == 64
}

// String returns a string representation of the profile
func (p Profile) String() string {
	return fmt.Sprintf("%s/%d-bit (%s)", p.Family, p.PointerWidth, p.SharedLibrary())
}

// pkg/platform/resolver.go
package platform

import "strings"

const (
	sharedPosix   = "libunicorn.so"
	sharedDarwin  = "libunicorn.dylib"
	sharedWindows = "unicorn.dll"
	staticPosix   = "libunicorn.a"
	staticWindows = "unicorn.lib"
)

// Resolve maps an OS identifier and pointer width to a profile.
// Unknown identifiers fall into the posix family.
func Resolve(osID string, pointerWidth int) Profile {
	id := strings.ToLower(strings.TrimSpace(osID))

	family := Posix
	switch {
	case id == "darwin":
		family = Darwin
	case id == "windows" || id == "win32" || strings.HasPrefix(id, "mingw"):
		// MinGW shells build native Windows binaries
		family = WindowsNative
	case id == "cygwin" || id == "msys":
		family = WindowsEmulated
	}

	if pointerWidth != 32 {
		pointerWidth = 64
	}

	return Profile{
		Family:       family,
		PointerWidth: pointerWidth,
		OSID:         id,
	}
}

// SharedLibrary returns the shared library filename for the profile
func (p Profile) SharedLibrary() string {
	switch {
	case p.Family == Darwin:
		return sharedDarwin
	case p.IsWindows():
		return sharedWindows
	default:
		return sharedPosix
	}
}

// StaticLibrary returns the static library filename for the profile
func (p Profile) StaticLibrary() string {
	if p.IsWindows() {
		return staticWindows
	}
	return staticPosix
}

// AuxiliaryLibraries returns the runtime DLLs that must ship next to the
// library on native Windows, in resolution order. The gcc runtime differs
// between the SEH (64-bit) and DWARF-2 (32-bit) toolchains.
func (p Profile) AuxiliaryLibraries() []string {
	if p.Family != WindowsNative {
		return nil
	}

	gccRuntime := "libgcc_s_dw2-1.dll"
	if p.Is64() {
		gccRuntime = "libgcc_s_seh-1.dll"
	}

	return []string{
		"libwinpthread-1.dll",
		gccRuntime,
		"libiconv-2.dll",
		"libpcre-1.dll",
		"libintl-8.dll",
	}
}

// NativeTarget returns the make.sh target for the profile, or "" for a
// native host build.
func (p Profile) NativeTarget() string {
	switch p.Family {
	case WindowsEmulated:
		if p.Is64() {
			return "cygwin-mingw64"
		}
		return "cygwin-mingw32"
	case WindowsNative:
		if p.Is64() {
			return "cross-win64"
		}
		return "cross-win32"
	default:
		return ""
	}
}

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFilenames(t *testing.T) {
	testCases := []struct {
		osID   string
		family OSFamily
		shared string
		static string
	}{
		{"darwin", Darwin, "libunicorn.dylib", "libunicorn.a"},
		{"windows", WindowsNative, "unicorn.dll", "unicorn.lib"},
		{"win32", WindowsNative, "unicorn.dll", "unicorn.lib"},
		{"cygwin", WindowsEmulated, "unicorn.dll", "unicorn.lib"},
		{"mingw64", WindowsNative, "unicorn.dll", "unicorn.lib"},
		{"msys", WindowsEmulated, "unicorn.dll", "unicorn.lib"},
		{"linux", Posix, "libunicorn.so", "libunicorn.a"},
		{"freebsd", Posix, "libunicorn.so", "libunicorn.a"},
		{"plan9", Posix, "libunicorn.so", "libunicorn.a"},
		{"", Posix, "libunicorn.so", "libunicorn.a"},
	}

	for _, tc := range testCases {
		t.Run(tc.osID, func(t *testing.T) {
			p := Resolve(tc.osID, 64)
			assert.Equal(t, tc.family, p.Family)
			assert.Equal(t, tc.shared, p.SharedLibrary())
			assert.Equal(t, tc.static, p.StaticLibrary())
		})
	}
}

func TestAuxiliaryLibrariesPointerWidth(t *testing.T) {
	aux64 := Resolve("windows", 64).AuxiliaryLibraries()
	require.Len(t, aux64, 5)
	assert.Equal(t, "libwinpthread-1.dll", aux64[0])
	assert.Equal(t, "libgcc_s_seh-1.dll", aux64[1])

	aux32 := Resolve("windows", 32).AuxiliaryLibraries()
	require.Len(t, aux32, 5)
	assert.Equal(t, "libgcc_s_dw2-1.dll", aux32[1])

	assert.Nil(t, Resolve("linux", 64).AuxiliaryLibraries())
	assert.Nil(t, Resolve("darwin", 64).AuxiliaryLibraries())
}

func TestNativeTarget(t *testing.T) {
	assert.Equal(t, "", Resolve("linux", 64).NativeTarget())
	assert.Equal(t, "", Resolve("darwin", 64).NativeTarget())
	assert.Equal(t, "cross-win64", Resolve("windows", 64).NativeTarget())
	assert.Equal(t, "cross-win32", Resolve("windows", 32).NativeTarget())
	assert.Equal(t, "cygwin-mingw64", Resolve("cygwin", 64).NativeTarget())
	assert.Equal(t, "cygwin-mingw32", Resolve("cygwin", 32).NativeTarget())
}

func TestDescriptor(t *testing.T) {
	linux := Resolve("linux", 64)
	linux.Arch = "amd64"
	assert.Equal(t, "linux-x86_64", Descriptor(linux))

	mac := Resolve("darwin", 64)
	mac.Arch = "arm64"
	assert.Equal(t, "macosx-11.0-arm64", Descriptor(mac))

	assert.Equal(t, "win-amd64", Descriptor(Resolve("windows", 64)))
	assert.Equal(t, "win32", Descriptor(Resolve("windows", 32)))
	assert.Equal(t, "mingw", Descriptor(Resolve("msys", 64)))
}

func TestResolveNormalizesPointerWidth(t *testing.T) {
	assert.Equal(t, 64, Resolve("linux", 0).PointerWidth)
	assert.Equal(t, 32, Resolve("linux", 32).PointerWidth)
}

func TestMinGWShellBuildsNativeWindows(t *testing.T) {
	env := map[string]string{"MSYSTEM": "MINGW64", "MINGW_PREFIX": "/mingw64"}
	id := osID("windows", func(k string) string { return env[k] })
	assert.Equal(t, "mingw", id)

	p := Resolve(id, 64)
	assert.Equal(t, WindowsNative, p.Family)
	assert.Equal(t, "cross-win64", p.NativeTarget())
	assert.Len(t, p.AuxiliaryLibraries(), 5)
	assert.Equal(t, "libgcc_s_seh-1.dll", p.AuxiliaryLibraries()[1])
	assert.Equal(t, "mingw", Descriptor(p))

	p32 := Resolve(osID("windows", func(k string) string {
		return map[string]string{"MSYSTEM": "MINGW32"}[k]
	}), 32)
	assert.Equal(t, "cross-win32", p32.NativeTarget())
	assert.Equal(t, "libgcc_s_dw2-1.dll", p32.AuxiliaryLibraries()[1])
}

func TestOSIDShellMarkers(t *testing.T) {
	testCases := []struct {
		name string
		goos string
		env  map[string]string
		want string
	}{
		{"linux", "linux", nil, "linux"},
		{"plain windows", "windows", nil, "windows"},
		{"cygwin", "windows", map[string]string{"OSTYPE": "cygwin"}, "cygwin"},
		{"mingw shell with msys ostype", "windows", map[string]string{"OSTYPE": "msys", "MSYSTEM": "MINGW64"}, "mingw"},
		{"msys ostype", "windows", map[string]string{"OSTYPE": "msys"}, "msys"},
		{"msys system", "windows", map[string]string{"MSYSTEM": "MSYS"}, "msys"},
		{"ucrt64", "windows", map[string]string{"MSYSTEM": "UCRT64"}, "mingw"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := osID(tc.goos, func(k string) string { return tc.env[k] })
			assert.Equal(t, tc.want, got)
		})
	}
}

package command

import (
	"fmt"
	"strings"
)

// PlatNameFlag is the bdist_wheel flag carrying the platform tag
const (
	PlatNameFlag  = "plat-name"
	PlatNameShort = "p"
)

// PlatformTag maps a platform descriptor to a wheel compatibility tag.
// linux_* tags are rejected by package indexes, so Linux builds are tagged
// manylinux1 for the machine.
func PlatformTag(descriptor, machine string, pointerWidth int) string {
	switch {
	case strings.Contains(descriptor, "linux"):
		return fmt.Sprintf("manylinux1_%s", machine)
	case strings.Contains(descriptor, "mingw"):
		if pointerWidth == 64 {
			return "win_amd64"
		}
		return "win32"
	default:
		return strings.NewReplacer(".", "_", "-", "_").Replace(descriptor)
	}
}

// WithPlatformTag returns cmd with "--plat-name <tag>" inserted after the
// verb when it builds a wheel and carries no tag yet. Applying it twice is
// the same as applying it once.
func WithPlatformTag(cmd Command, descriptor, machine string, pointerWidth int) Command {
	if cmd.Verb != BdistWheel || cmd.HasFlag(PlatNameFlag, PlatNameShort) {
		return cmd
	}
	tag := PlatformTag(descriptor, machine, pointerWidth)
	return cmd.WithArgsFront("--"+PlatNameFlag, tag)
}

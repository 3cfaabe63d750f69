// Package command models a packaging invocation as an immutable value so
// argument rewrites never touch the process argument vector.
package command

import "strings"

// Lifecycle verbs
const (
	Build      = "build"
	Sdist      = "sdist"
	Develop    = "develop"
	BdistEgg   = "bdist_egg"
	BdistWheel = "bdist_wheel"
)

// ValueFlags take their value as the following argument when written in the
// separated form. That argument is never a verb or a flag of its own.
var ValueFlags = map[string]bool{
	"--root":        true,
	"--config":      true,
	"--dist-dir":    true,
	"-d":            true,
	"--formats":     true,
	"--install-dir": true,
	"--plat-name":   true,
	"-p":            true,
}

// Command is a parsed invocation: global arguments before the verb, the
// verb, and the arguments after it. Methods never modify the receiver.
type Command struct {
	Global []string
	Verb   string
	Args   []string
}

// Parse splits argv (without the program name) at the first lifecycle verb.
// Values of ValueFlags are skipped, so "--root build" names a directory.
// Without a known verb the whole argv is kept as global arguments.
func Parse(argv []string) Command {
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if ValueFlags[arg] {
			i++
			continue
		}
		if IsVerb(arg) {
			return Command{
				Global: clone(argv[:i]),
				Verb:   arg,
				Args:   clone(argv[i+1:]),
			}
		}
	}
	return Command{Global: clone(argv)}
}

// IsVerb reports whether s names a lifecycle verb
func IsVerb(s string) bool {
	switch s {
	case Build, Sdist, Develop, BdistEgg, BdistWheel:
		return true
	}
	return false
}

// HasFlag reports whether the verb arguments carry the long flag name, as
// "--name", "--name=value", or as the short alias if one is given.
func (c Command) HasFlag(name string, short string) bool {
	long := "--" + name
	for i := 0; i < len(c.Args); i++ {
		arg := c.Args[i]
		if arg == "--" {
			return false
		}
		if arg == long || strings.HasPrefix(arg, long+"=") {
			return true
		}
		if short != "" && strings.HasPrefix(arg, "-"+short) && !strings.HasPrefix(arg, "--") {
			return true
		}
		if ValueFlags[arg] {
			i++
		}
	}
	return false
}

// Value returns the value given to the long flag name or its short alias.
// Both the separated ("--name v", "-s v") and joined ("--name=v", "-sv")
// forms are recognized; the last occurrence wins.
func (c Command) Value(name string, short string) (string, bool) {
	long := "--" + name
	var value string
	found := false

	for i := 0; i < len(c.Args); i++ {
		arg := c.Args[i]
		if arg == "--" {
			break
		}

		switch {
		case arg == long || (short != "" && arg == "-"+short):
			if i+1 < len(c.Args) {
				value, found = c.Args[i+1], true
				i++
			}
		case ValueFlags[arg]:
			i++
		case strings.HasPrefix(arg, long+"="):
			value, found = strings.TrimPrefix(arg, long+"="), true
		case short != "" && strings.HasPrefix(arg, "-"+short) && !strings.HasPrefix(arg, "--"):
			value, found = strings.TrimPrefix(arg, "-"+short), true
		}
	}

	return value, found
}

// WithArgsFront returns a copy with args inserted directly after the verb
func (c Command) WithArgsFront(args ...string) Command {
	out := Command{
		Global: clone(c.Global),
		Verb:   c.Verb,
		Args:   make([]string, 0, len(args)+len(c.Args)),
	}
	out.Args = append(out.Args, args...)
	out.Args = append(out.Args, c.Args...)
	return out
}

// Render returns a fresh argv for the command
func (c Command) Render() []string {
	argv := make([]string, 0, len(c.Global)+1+len(c.Args))
	argv = append(argv, c.Global...)
	if c.Verb != "" {
		argv = append(argv, c.Verb)
	}
	return append(argv, c.Args...)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

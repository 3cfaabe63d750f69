package builder

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/unicorn-engine/unipkg/pkg/layout"
	"github.com/unicorn-engine/unipkg/pkg/platform"
)

var (
	// ErrSharedLibraryMissing indicates the native build produced no shared library
	ErrSharedLibraryMissing = errors.New("shared library missing")

	// ErrMissingAuxiliary indicates a runtime DLL could not be found while publishing
	ErrMissingAuxiliary = errors.New("auxiliary runtime library missing")
)

// CoreOnlyEnv is set for the native build so it skips samples and tools
const CoreOnlyEnv = "UNICORN_BUILD_CORE_ONLY"

// Config configures a Builder
type Config struct {
	Profile platform.Profile
	Layout  *layout.Layout

	// Prefix is the toolchain install prefix; <Prefix>/bin is searched for
	// auxiliary DLLs before the prebuilt directory.
	Prefix string

	// Runner runs the native build. Defaults to the mage-backed runner.
	Runner Runner

	// Stdout and Stderr receive the native build output
	Stdout io.Writer
	Stderr io.Writer

	Debug  bool
	Logger *log.Logger
}

// AuxiliaryDependency is a runtime library bundled next to the engine.
// Candidates are searched in order and the first existing file wins.
type AuxiliaryDependency struct {
	Filename   string
	Candidates []string
}

// Outcome reports what a build produced
type Outcome struct {
	Succeeded          bool
	Prebuilt           bool     // copied from the prebuilt directory, no native build
	MissingAuxiliaries []string // auxiliary DLLs that were not found
	Artifacts          []string // files placed in the library directory
	StaticInstalled    bool
	NativeExitCode     int
	Digest             string   // digest of the header and library trees
	Warnings           []string // recoverable problems worth surfacing
}

func (o *Outcome) warn(logger *log.Logger, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	o.Warnings = append(o.Warnings, msg)
	logger.Printf("warning: %s", msg)
}

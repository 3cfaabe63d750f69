// Package builder fills the package's library and header directories with
// the native artifacts for the current platform.
package builder

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/unicorn-engine/unipkg/pkg/fsutil"
)

// Builder produces the native artifacts of one package root
type Builder struct {
	config *Config
	runner Runner
	logger *log.Logger
}

// New creates a Builder
func New(cfg *Config) (*Builder, error) {
	if cfg == nil || cfg.Layout == nil {
		return nil, fmt.Errorf("builder: layout is required")
	}

	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[builder] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	runner := cfg.Runner
	if runner == nil {
		runner = &MageRunner{Stdout: cfg.Stdout, Stderr: cfg.Stderr}
	}

	return &Builder{
		config: cfg,
		runner: runner,
		logger: logger,
	}, nil
}

// Build resets the artifact directories and fills them again. When publish
// is set, a missing auxiliary DLL aborts the build instead of warning.
func (b *Builder) Build(ctx context.Context, publish bool) (*Outcome, error) {
	l := b.config.Layout
	p := b.config.Profile
	out := &Outcome{}

	l.Refresh()
	b.logger.Printf("Building %s artifacts from %s", p, l.NativeBuildRoot)

	if err := l.ResetArtifacts(); err != nil {
		return out, err
	}

	headers := l.PublicHeaders()
	if err := fsutil.CopyTree(headers, filepath.Join(l.HeaderDir, "unicorn")); err != nil {
		return out, fmt.Errorf("copying public headers from %s: %w", headers, err)
	}

	if deps := b.AuxiliaryDependencies(); len(deps) > 0 {
		missing, err := b.installAuxiliaries(deps)
		if err != nil {
			return out, err
		}
		out.MissingAuxiliaries = missing
		if len(missing) > 0 {
			if publish {
				return out, fmt.Errorf("%w: %v", ErrMissingAuxiliary, missing)
			}
			out.warn(b.logger, "not all DLLs were found (%v); this build is not appropriate for a binary distribution", missing)
		}
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}

	prebuilt := filepath.Join(l.PrebuiltDir, p.SharedLibrary())
	if fsutil.IsFile(prebuilt) {
		b.logger.Printf("Using prebuilt %s", prebuilt)
		if err := fsutil.CopyFile(prebuilt, l.LibraryDir); err != nil {
			return out, fmt.Errorf("copying prebuilt library: %w", err)
		}
		out.Prebuilt = true
		out.Artifacts = append(out.Artifacts, p.SharedLibrary())
		return b.finish(out)
	}

	err := InDir(l.NativeBuildRoot, func() error {
		b.runNative(ctx, out)
		return b.collect(out)
	})
	if err != nil {
		return out, err
	}

	return b.finish(out)
}

// runNative invokes make.sh. Its exit status only produces a warning; the
// presence of the shared library decides success.
func (b *Builder) runNative(ctx context.Context, out *Outcome) {
	args := []string{"./make.sh"}
	if target := b.config.Profile.NativeTarget(); target != "" {
		args = append(args, target)
	}

	env := map[string]string{CoreOnlyEnv: "yes"}
	b.logger.Printf("Running sh %v (%s=yes)", args, CoreOnlyEnv)

	code, err := b.runner.Run(ctx, env, "sh", args...)
	out.NativeExitCode = code
	switch {
	case err != nil:
		out.warn(b.logger, "native build did not run: %v", err)
	case code != 0:
		out.warn(b.logger, "native build exited with status %d", code)
	}
}

// collect copies the build output from the current directory
func (b *Builder) collect(out *Outcome) error {
	l := b.config.Layout
	p := b.config.Profile

	shared := p.SharedLibrary()
	if !fsutil.IsFile(shared) {
		return fmt.Errorf("%w: %s not found in %s", ErrSharedLibraryMissing, shared, l.NativeBuildRoot)
	}
	if err := fsutil.CopyFile(shared, l.LibraryDir); err != nil {
		return fmt.Errorf("copying %s: %w", shared, err)
	}
	out.Artifacts = append(out.Artifacts, shared)

	// Toolchains without MSVC cannot produce the static library
	static := p.StaticLibrary()
	if !fsutil.IsFile(static) {
		out.warn(b.logger, "static library %s was not built", static)
		return nil
	}
	members, err := ArchiveMembers(static)
	if err != nil {
		out.warn(b.logger, "skipping static library %s: %v", static, err)
		return nil
	}
	if err := fsutil.CopyFile(static, l.LibraryDir); err != nil {
		out.warn(b.logger, "copying static library %s: %v", static, err)
		return nil
	}
	b.logger.Printf("Copied %s (%d objects)", static, len(members))
	out.StaticInstalled = true
	out.Artifacts = append(out.Artifacts, static)

	return nil
}

func (b *Builder) finish(out *Outcome) (*Outcome, error) {
	l := b.config.Layout

	digest, err := TreeDigest(l.PackageDir, "include", "lib")
	if err != nil {
		return out, fmt.Errorf("computing artifact digest: %w", err)
	}
	out.Digest = digest
	out.Succeeded = true
	b.logger.Printf("Artifacts %v ready (%s)", out.Artifacts, digest)

	return out, nil
}

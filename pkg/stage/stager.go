// Package stage assembles a self-contained copy of the native sources for a
// source distribution.
package stage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/unicorn-engine/unipkg/pkg/builder"
	"github.com/unicorn-engine/unipkg/pkg/fsutil"
	"github.com/unicorn-engine/unipkg/pkg/layout"
)

// SourceTrees are the native subtrees copied recursively. tests/ is needed
// because the native clean target descends into it.
var SourceTrees = []string{"qemu", "include", "tests"}

// HostConfigFiles are generated by the native configure step and describe
// the build host; they never belong in a snapshot.
var HostConfigFiles = []string{filepath.Join("qemu", "config-host.mak")}

// LooseFilePatterns select the top-level files of the native project copied
// into the staging root.
var LooseFilePatterns = []string{
	"*.[ch]",
	"*.mk",
	"Makefile",
	"LICENSE*",
	"README.md",
	"*.TXT",
	"RELEASE_NOTES",
	"make.sh",
	"CMakeLists.txt",
}

// RevisionFile records the native project's commit in the staging root
const RevisionFile = "REVISION"

// Config configures a Stager
type Config struct {
	Layout *layout.Layout
	Runner builder.Runner
	Debug  bool
	Logger *log.Logger
}

// Stager copies the native project into the layout's staging directory
type Stager struct {
	layout *layout.Layout
	runner builder.Runner
	logger *log.Logger
}

// New creates a Stager
func New(cfg *Config) (*Stager, error) {
	if cfg == nil || cfg.Layout == nil {
		return nil, fmt.Errorf("stage: layout is required")
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[stage] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	runner := cfg.Runner
	if runner == nil {
		runner = &builder.MageRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}

	return &Stager{layout: cfg.Layout, runner: runner, logger: logger}, nil
}

// Stage replaces the staging directory with a fresh copy of the native
// sources. Any copy failure aborts: a partial snapshot must not be packaged.
func (s *Stager) Stage(ctx context.Context) error {
	l := s.layout
	native := l.NativeSourceRoot

	s.clean(ctx)

	if err := fsutil.Recreate(l.StagingDir); err != nil {
		return err
	}

	for _, tree := range SourceTrees {
		src := filepath.Join(native, tree)
		if err := fsutil.CopyTree(src, filepath.Join(l.StagingDir, tree)); err != nil {
			return fmt.Errorf("staging %s: %w", src, err)
		}
		s.logger.Printf("%s -> %s", src, filepath.Join(l.StagingDir, tree))
	}

	for _, rel := range HostConfigFiles {
		path := filepath.Join(l.StagingDir, rel)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing host configuration %s: %w", path, err)
		}
	}

	files, err := fsutil.Glob(native, LooseFilePatterns...)
	if err != nil {
		return fmt.Errorf("listing native sources: %w", err)
	}
	for _, src := range files {
		dst := filepath.Join(l.StagingDir, filepath.Base(src))
		if err := fsutil.CopyFile(src, dst); err != nil {
			return fmt.Errorf("staging %s: %w", src, err)
		}
		s.logger.Printf("%s -> %s", src, dst)
	}

	if rev, ok := Revision(native); ok {
		if err := os.WriteFile(filepath.Join(l.StagingDir, RevisionFile), []byte(rev+"\n"), 0644); err != nil {
			return fmt.Errorf("writing revision: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	l.Refresh()
	return nil
}

// clean runs the native project's clean target. Failures are logged only.
func (s *Stager) clean(ctx context.Context) {
	code, err := s.runner.Run(ctx, nil, "make", "-C", s.layout.NativeSourceRoot, "clean")
	switch {
	case err != nil:
		s.logger.Printf("make clean did not run: %v", err)
	case code != 0:
		s.logger.Printf("make clean exited with status %d", code)
	}
}

// unipkg.go
package unipkg

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/unicorn-engine/unipkg/pkg/builder"
	"github.com/unicorn-engine/unipkg/pkg/command"
	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/hooks"
	"github.com/unicorn-engine/unipkg/pkg/layout"
	"github.com/unicorn-engine/unipkg/pkg/platform"
	"github.com/unicorn-engine/unipkg/pkg/stage"
)

// Re-export pipeline types for convenience
type (
	Config     = core.Config
	Descriptor = core.Descriptor
	Command    = command.Command
	Profile    = platform.Profile
	Outcome    = builder.Outcome
	Layout     = layout.Layout
)

// Verb flags read by the standard actions
const (
	FlagFormats    = "formats"
	FlagDistDir    = "dist-dir"
	FlagInstallDir = "install-dir"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Options configures a Pipeline
type Options struct {
	Config *Config

	// Profile overrides the detected host platform
	Profile *Profile

	// Runner runs native commands. Defaults to the mage-backed runner.
	Runner builder.Runner

	// Stdout and Stderr receive native build output
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger
}

// Result reports what one invocation produced
type Result struct {
	Verb      string
	Build     *Outcome // nil unless the verb ran the library builder
	Artifacts []string // distributions and links written
	Warnings  []string
}

// Pipeline runs the packaging lifecycle verbs of one package root
type Pipeline struct {
	config     *Config
	descriptor *Descriptor
	profile    Profile
	layout     *layout.Layout
	builder    *builder.Builder
	stager     *stage.Stager
	registry   *hooks.Registry
	logger     *log.Logger

	result *Result
}

// New creates a pipeline for the configured package root
func New(opts Options) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Resolve(); err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	desc, err := core.LoadDescriptor(cfg.PackageRoot)
	if err != nil {
		return nil, &Error{Op: "configure", Err: fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)}
	}

	profile := platform.Detect()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	l, err := layout.New(cfg.PackageRoot, desc.Package)
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[unipkg] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	b, err := builder.New(&builder.Config{
		Profile: profile,
		Layout:  l,
		Prefix:  cfg.Prefix,
		Runner:  opts.Runner,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	s, err := stage.New(&stage.Config{
		Layout: l,
		Runner: opts.Runner,
		Debug:  cfg.Debug,
	})
	if err != nil {
		return nil, &Error{Op: "configure", Err: err}
	}

	p := &Pipeline{
		config:     cfg,
		descriptor: desc,
		profile:    profile,
		layout:     l,
		builder:    b,
		stager:     s,
		logger:     logger,
	}
	p.registry = p.newRegistry()

	return p, nil
}

// newRegistry wires the preparation steps in front of each standard action
func (p *Pipeline) newRegistry() *hooks.Registry {
	var hookLogger *log.Logger
	if p.config.Debug {
		hookLogger = log.New(os.Stdout, "[hooks] ", log.LstdFlags)
	}
	r := hooks.New(hookLogger)

	buildLibraries := hooks.Step{Name: "build libraries", Run: p.buildLibraries}

	r.Before(command.Sdist,
		hooks.Step{Name: "clean binaries", Run: p.cleanBinaries},
		hooks.Step{Name: "stage sources", Run: p.stageSources},
	)
	r.Handle(command.Sdist, p.sdist)

	r.Before(command.Build, buildLibraries)
	r.Handle(command.Build, p.buildPackage)

	r.Before(command.Develop, buildLibraries)
	r.Handle(command.Develop, p.develop)

	r.Before(command.BdistEgg, r.RunVerb(command.Build))
	r.Handle(command.BdistEgg, p.bdistEgg)

	r.Before(command.BdistWheel, r.RunVerb(command.Build))
	r.Handle(command.BdistWheel, p.bdistWheel)

	return r
}

// Run dispatches cmd through the hook registry
func (p *Pipeline) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Verb == "" {
		return nil, &Error{Op: "run", Err: fmt.Errorf("%w: no verb given", ErrUnknownVerb)}
	}

	p.result = &Result{Verb: cmd.Verb}
	defer func() { p.result = nil }()

	p.logger.Printf("running %s for %s (%s)", cmd.Verb, p.descriptor.DistName(), p.profile)

	result := p.result
	if err := p.registry.Dispatch(ctx, cmd); err != nil {
		return result, &Error{Op: "run", Verb: cmd.Verb, Err: err}
	}

	return result, nil
}

// Verbs lists the lifecycle verbs the pipeline handles
func (p *Pipeline) Verbs() []string {
	return p.registry.Verbs()
}

// Steps names the preparation steps run ahead of verb
func (p *Pipeline) Steps(verb string) []string {
	var names []string
	for _, step := range p.registry.Steps(verb) {
		names = append(names, step.Name)
	}
	return names
}

// Config returns the resolved configuration
func (p *Pipeline) Config() *Config {
	return p.config
}

// Descriptor returns the package descriptor
func (p *Pipeline) Descriptor() *Descriptor {
	return p.descriptor
}

// Profile returns the target platform profile
func (p *Pipeline) Profile() Profile {
	return p.profile
}

// Layout returns the directory layout
func (p *Pipeline) Layout() *Layout {
	return p.layout
}

// PlatformDescriptor returns the distutils-style platform name of the target
func (p *Pipeline) PlatformDescriptor() string {
	return platform.Descriptor(p.profile)
}

// PlatformTag returns the wheel tag injected for the target
func (p *Pipeline) PlatformTag() string {
	return command.PlatformTag(p.PlatformDescriptor(), platform.Machine(p.profile.Arch), p.profile.PointerWidth)
}

func (p *Pipeline) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Printf("warning: %s", msg)
	if p.result != nil {
		p.result.Warnings = append(p.result.Warnings, msg)
	}
}

func (p *Pipeline) produced(path string) {
	p.logger.Printf("wrote %s", path)
	if p.result != nil {
		p.result.Artifacts = append(p.result.Artifacts, path)
	}
}

func (p *Pipeline) distDir(cmd Command) string {
	if dir, ok := cmd.Value(FlagDistDir, "d"); ok && dir != "" {
		return dir
	}
	return p.config.DistDir
}

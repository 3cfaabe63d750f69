// actions.go
package unipkg

import (
	"context"

	"github.com/unicorn-engine/unipkg/pkg/command"
	"github.com/unicorn-engine/unipkg/pkg/dist"
	"github.com/unicorn-engine/unipkg/pkg/platform"
)

// cleanBinaries drops built artifacts so a source distribution never ships
// host binaries.
func (p *Pipeline) cleanBinaries(_ context.Context, _ Command) error {
	return p.layout.CleanArtifacts()
}

func (p *Pipeline) stageSources(ctx context.Context, _ Command) error {
	return p.stager.Stage(ctx)
}

func (p *Pipeline) buildLibraries(ctx context.Context, _ Command) error {
	outcome, err := p.builder.Build(ctx, p.config.Publish)
	if p.result != nil && outcome != nil {
		p.result.Build = outcome
		p.result.Warnings = append(p.result.Warnings, outcome.Warnings...)
	}
	if err != nil {
		return err
	}

	p.logger.Printf("artifacts %s (%s)", outcome.Digest, p.layout.LibraryDir)
	return nil
}

func (p *Pipeline) sdist(_ context.Context, cmd Command) error {
	format := p.config.SdistFormat
	if f, ok := cmd.Value(FlagFormats, ""); ok && f != "" {
		format = f
	}

	path, err := dist.WriteSourceArchive(p.layout, p.descriptor, p.distDir(cmd), p.config.BuildDir, format)
	if err != nil {
		return err
	}
	p.produced(path)
	return nil
}

func (p *Pipeline) buildPackage(_ context.Context, _ Command) error {
	path, err := dist.BuildPackage(p.layout, p.descriptor, p.config.BuildDir)
	if err != nil {
		return err
	}
	p.logger.Printf("package copied to %s", path)
	return nil
}

func (p *Pipeline) develop(_ context.Context, cmd Command) error {
	installDir := p.config.InstallDir
	if dir, ok := cmd.Value(FlagInstallDir, ""); ok && dir != "" {
		installDir = dir
	}

	path, err := dist.LinkDevelop(p.descriptor, p.layout.PackageRoot, installDir)
	if err != nil {
		return err
	}
	p.produced(path)
	return nil
}

func (p *Pipeline) bdistEgg(_ context.Context, cmd Command) error {
	path, err := dist.WriteEgg(p.descriptor, p.config.BuildDir, p.distDir(cmd), platform.Descriptor(p.profile))
	if err != nil {
		return err
	}
	p.produced(path)
	return nil
}

func (p *Pipeline) bdistWheel(_ context.Context, cmd Command) error {
	tag, ok := cmd.Value(command.PlatNameFlag, command.PlatNameShort)
	if !ok || tag == "" {
		// invoked without the injected tag, e.g. through the library API
		tag = p.PlatformTag()
		p.warn("no --%s given, tagging wheel %s", command.PlatNameFlag, tag)
	}

	path, err := dist.WriteWheel(p.descriptor, p.config.BuildDir, p.distDir(cmd), tag)
	if err != nil {
		return err
	}
	p.produced(path)
	return nil
}

// internal/cli/verbs.go
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/unicorn-engine/unipkg"
	"github.com/unicorn-engine/unipkg/pkg/command"
)

// verbCmds returns one subcommand per lifecycle verb. Their flags are
// forwarded to the pipeline as verb arguments.
func verbCmds() []*cobra.Command {
	build := newVerbCmd(command.Build, "Build the native library and copy the package into the build tree")

	sdist := newVerbCmd(command.Sdist, "Stage the native sources and write a source archive")
	sdist.Flags().String(unipkg.FlagFormats, "", "archive format: xztar, zsttar, gztar or tar (default from config)")
	sdist.Flags().StringP(unipkg.FlagDistDir, "d", "", "directory to put the archive in")

	develop := newVerbCmd(command.Develop, "Build the native library and link the package root into an install directory")
	develop.Flags().String(unipkg.FlagInstallDir, "", "directory receiving the .egg-link and easy-install.pth")

	egg := newVerbCmd(command.BdistEgg, "Build and write an egg")
	egg.Flags().StringP(unipkg.FlagDistDir, "d", "", "directory to put the egg in")

	wheel := newVerbCmd(command.BdistWheel, "Build and write a platform wheel")
	wheel.Flags().StringP(unipkg.FlagDistDir, "d", "", "directory to put the wheel in")
	wheel.Flags().StringP(command.PlatNameFlag, command.PlatNameShort, "", "platform tag (injected for the host when absent)")

	return []*cobra.Command{build, sdist, develop, egg, wheel}
}

func newVerbCmd(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  runVerb,
	}
}

func runVerb(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := unipkg.New(unipkg.Options{Config: config})
	if err != nil {
		return err
	}

	invocation := command.Command{Verb: cmd.Name(), Args: verbArgs(cmd)}
	result, err := p.Run(ctx, invocation)
	if result != nil {
		for _, w := range result.Warnings {
			warnf("%s", w)
		}
	}
	if err != nil {
		return err
	}

	if result.Build != nil {
		successf(cmd, "Native artifacts ready (%s)", result.Build.Digest)
	}
	for _, artifact := range result.Artifacts {
		successf(cmd, "Wrote %s", artifact)
	}
	return nil
}

// verbArgs renders the verb's own flags that were set on the command line
func verbArgs(cmd *cobra.Command) []string {
	var args []string
	cmd.LocalNonPersistentFlags().Visit(func(f *pflag.Flag) {
		args = append(args, "--"+f.Name+"="+f.Value.String())
	})
	return args
}

// internal/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unicorn-engine/unipkg"
	"github.com/unicorn-engine/unipkg/pkg/core"
)

var saveConfigPath string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved platform, layout and lifecycle hooks",
	Long:  `Display what a build would do on this host without running it.`,
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&saveConfigPath, "save-config", "", "write the effective configuration to this file")
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := unipkg.New(unipkg.Options{Config: config})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	desc := p.Descriptor()
	prof := p.Profile()
	l := p.Layout()

	// Display info
	fmt.Fprintf(out, "Package: %s %s\n", desc.Name, desc.Version)
	fmt.Fprintf(out, "Platform: %s (%s)\n", prof, p.PlatformDescriptor())
	fmt.Fprintf(out, "Wheel tag: %s\n", p.PlatformTag())
	fmt.Fprintf(out, "Shared library: %s\n", prof.SharedLibrary())
	fmt.Fprintf(out, "Static library: %s\n", prof.StaticLibrary())
	if aux := prof.AuxiliaryLibraries(); len(aux) > 0 {
		fmt.Fprintf(out, "Bundled DLLs: %s\n", strings.Join(aux, ", "))
	}
	if target := prof.NativeTarget(); target != "" {
		fmt.Fprintf(out, "Native target: %s\n", target)
	}
	fmt.Fprintf(out, "Package root: %s\n", l.PackageRoot)
	fmt.Fprintf(out, "Native build root: %s\n", l.NativeBuildRoot)
	fmt.Fprintf(out, "Library directory: %s\n", l.LibraryDir)
	fmt.Fprintf(out, "Header directory: %s\n", l.HeaderDir)

	for _, verb := range p.Verbs() {
		steps := p.Steps(verb)
		if len(steps) == 0 {
			fmt.Fprintf(out, "  %s\n", verb)
			continue
		}
		fmt.Fprintf(out, "  %s <- %s\n", verb, strings.Join(steps, ", "))
	}

	if saveConfigPath != "" {
		if err := core.SaveConfig(p.Config(), saveConfigPath); err != nil {
			return err
		}
		successf(cmd, "Saved configuration to %s", saveConfigPath)
	}

	return nil
}

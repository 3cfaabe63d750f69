// internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/unicorn-engine/unipkg/pkg/command"
	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/platform"
)

var (
	cfgFile     string
	packageRoot string
	debug       bool
	publish     bool
	config      *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "unipkg",
	Short: "Unicorn bindings packager",
	Long: `unipkg - Unicorn bindings packager

Builds the native Unicorn engine for the current platform, stages its
libraries and headers into the bindings package and produces source and
binary distributions.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run injects the host's wheel platform tag into argv (without the program
// name) and executes the resulting command line.
func Run(argv []string) error {
	host := platform.Detect()
	cmd := command.WithPlatformTag(
		command.Parse(argv),
		platform.Descriptor(host),
		platform.Machine(host.Arch),
		host.PointerWidth,
	)
	return Execute(cmd.Render())
}

// Execute runs the root command with args (without the program name)
func Execute(args []string) error {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		failf("Error: %v", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/unipkg.yaml)")
	rootCmd.PersistentFlags().StringVar(&packageRoot, "root", "", "package root holding unipkg.toml (default is the current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&publish, "publish", false, "fail instead of warning when bundled runtime DLLs are missing")

	// Add commands
	for _, verb := range verbCmds() {
		rootCmd.AddCommand(verb)
	}
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	envRoot := packageRoot
	if envRoot == "" {
		envRoot = "."
	}
	if err := core.LoadEnv(envRoot); err != nil {
		warnf("%v", err)
	}

	path := cfgFile
	if path == "" && os.Getenv("UNIPKG_CONFIG") == "" && packageRoot != "" {
		path = filepath.Join(packageRoot, core.ConfigFileName)
	}

	var err error
	config, err = core.LoadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Warn.Sprintf("Error loading config: %v", err))
		config = core.DefaultConfig()
	}

	// Override config with flags
	if packageRoot != "" {
		config.PackageRoot = packageRoot
	}
	if debug {
		config.Debug = true
	}
	if publish {
		config.Publish = true
	}
}

// warnf prints a highlighted warning to stderr
func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.Warn.Sprintf("warning: "+format, args...))
}

// failf prints a highlighted error to stderr
func failf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.Danger.Sprintf(format, args...))
}

func successf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.Success.Sprintf(format, args...))
}

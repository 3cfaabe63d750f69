package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicorn-engine/unipkg/pkg/command"
	"github.com/unicorn-engine/unipkg/pkg/core"
	"github.com/unicorn-engine/unipkg/pkg/platform"
)

// resetFlags undoes flag values left behind by an earlier Execute
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, Execute([]string{"version"}))
	assert.Contains(t, buf.String(), "unipkg version "+Version)
}

func TestInfoCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "unipkg.toml"), []byte("name = \"unicorn\"\nversion = \"3.0.0\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "unipkg.yaml"), []byte("build_dir: out\n"), 0644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, Execute([]string{"--root", root, "info"}))

	out := buf.String()
	assert.Contains(t, out, "Package: unicorn 3.0.0")
	assert.Contains(t, out, "Package root: "+root)
	assert.Contains(t, out, "sdist <- clean binaries, stage sources")
	assert.Contains(t, out, "bdist_wheel <- run build")
	assert.Equal(t, filepath.Join(root, "out"), config.BuildDir)
}

func TestVerbArgsForwardsSetFlags(t *testing.T) {
	wheel, _, err := rootCmd.Find([]string{command.BdistWheel})
	require.NoError(t, err)
	require.Equal(t, command.BdistWheel, wheel.Name())

	t.Cleanup(func() {
		debug = false
		resetFlags(wheel)
	})
	require.NoError(t, wheel.ParseFlags([]string{"--plat-name", "win32", "-d", "out", "--debug"}))
	assert.Equal(t, []string{"--dist-dir=out", "--plat-name=win32"}, verbArgs(wheel))
}

func TestUnknownVerbFails(t *testing.T) {
	assert.Error(t, Execute([]string{"upload"}))
}

func TestInfoSavesEffectiveConfig(t *testing.T) {
	root := t.TempDir()
	saved := filepath.Join(t.TempDir(), "effective.yaml")
	t.Cleanup(func() { resetFlags(infoCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, Execute([]string{"--root", root, "info", "--save-config", saved}))
	assert.Contains(t, buf.String(), "Saved configuration to "+saved)

	cfg, err := core.LoadConfig(saved)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.PackageRoot)
	assert.Equal(t, filepath.Join(root, "dist"), cfg.DistDir)
}

func TestRunTagsWheelForHost(t *testing.T) {
	native := t.TempDir()
	root := filepath.Join(native, "bindings", "python")
	host := platform.Detect()

	files := map[string]string{
		filepath.Join(native, "include", "unicorn", "unicorn.h"): "/* api */",
		filepath.Join(root, "unipkg.toml"):                       "name = \"unicorn\"\nversion = \"2.0.1\"\n",
		filepath.Join(root, "unicorn", "__init__.py"):            "",
		filepath.Join(root, "prebuilt", host.SharedLibrary()):    "prebuilt",
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	wheel, _, err := rootCmd.Find([]string{command.BdistWheel})
	require.NoError(t, err)
	resetFlags(wheel)
	t.Cleanup(func() { resetFlags(wheel) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, Run([]string{"--root", root, command.BdistWheel}))

	tag := command.PlatformTag(platform.Descriptor(host), platform.Machine(host.Arch), host.PointerWidth)
	flag := wheel.Flags().Lookup(command.PlatNameFlag)
	require.NotNil(t, flag)
	assert.True(t, flag.Changed)
	assert.Equal(t, tag, flag.Value.String())

	whl := filepath.Join(root, "dist", "unicorn-2.0.1-py2.py3-none-"+tag+".whl")
	assert.FileExists(t, whl)
	assert.Contains(t, buf.String(), "Wrote "+whl)
}

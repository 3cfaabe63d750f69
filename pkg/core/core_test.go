package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "xztar", cfg.SdistFormat)
	assert.Equal(t, "dist", cfg.DistDir)
	assert.False(t, cfg.Publish)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unipkg.yaml")
	data := "prefix: /mingw64\npublish: true\nsdist_format: zsttar\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/mingw64", cfg.Prefix)
	assert.True(t, cfg.Publish)
	assert.Equal(t, "zsttar", cfg.SdistFormat)
	assert.Equal(t, "build", cfg.BuildDir)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "unipkg.yaml")
	cfg := DefaultConfig()
	cfg.Prefix = "/opt/mingw"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/mingw", loaded.Prefix)
}

func TestConfigResolveMakesPathsAbsolute(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.PackageRoot = root
	cfg.InstallDir = "site"

	require.NoError(t, cfg.Resolve())
	assert.Equal(t, filepath.Join(root, "dist"), cfg.DistDir)
	assert.Equal(t, filepath.Join(root, "build"), cfg.BuildDir)
	assert.Equal(t, filepath.Join(root, "site"), cfg.InstallDir)
}

func TestLoadDescriptor(t *testing.T) {
	root := t.TempDir()

	desc, err := LoadDescriptor(root)
	require.NoError(t, err)
	assert.Equal(t, "unicorn-1.0.0", desc.DistName())

	toml := "name = \"unicorn-engine\"\nversion = \"2.0.1\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, DescriptorFileName), []byte(toml), 0644))

	desc, err = LoadDescriptor(root)
	require.NoError(t, err)
	assert.Equal(t, "unicorn-engine-2.0.1", desc.DistName())
	assert.Equal(t, "unicorn", desc.Package)
}

func TestLoadDescriptorRejectsEmptyName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DescriptorFileName), []byte("name = \"\"\n"), 0644))

	_, err := LoadDescriptor(root)
	assert.Error(t, err)
}

func TestLoadDescriptorInvalidToml(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DescriptorFileName), []byte("name = "), 0644))

	_, err := LoadDescriptor(root)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, LoadEnv(root))

	t.Setenv("UNIPKG_PREFIX", "/from/shell")
	require.NoError(t, os.WriteFile(filepath.Join(root, EnvFileName),
		[]byte("UNIPKG_PREFIX=/mingw64\nUNIPKG_TEST_ENV_ONLY=yes\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("UNIPKG_TEST_ENV_ONLY") })

	require.NoError(t, LoadEnv(root))
	assert.Equal(t, "/from/shell", os.Getenv("UNIPKG_PREFIX"))
	assert.Equal(t, "yes", os.Getenv("UNIPKG_TEST_ENV_ONLY"))
	assert.Equal(t, "/from/shell", DefaultConfig().Prefix)
}

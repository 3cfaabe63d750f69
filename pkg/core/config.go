// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project configuration file looked up in the
// package root when no explicit path is given.
const ConfigFileName = "unipkg.yaml"

// EnvFileName holds environment defaults in the package root, typically
// UNIPKG_PREFIX for an MSYS2 toolchain
const EnvFileName = ".env"

// LoadEnv reads <root>/.env into the process environment. Variables that
// are already set win; a missing file is not an error.
func LoadEnv(root string) error {
	path := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Config holds unipkg configuration
type Config struct {
	PackageRoot string `yaml:"package_root"`
	Prefix      string `yaml:"prefix"` // install prefix searched for auxiliary DLLs (<prefix>/bin)
	DistDir     string `yaml:"dist_dir"`
	BuildDir    string `yaml:"build_dir"`
	InstallDir  string `yaml:"install_dir"`
	SdistFormat string `yaml:"sdist_format"`
	Publish     bool   `yaml:"publish"`
	Debug       bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PackageRoot: ".",
		Prefix:      getDefaultPrefix(),
		DistDir:     "dist",
		BuildDir:    "build",
		InstallDir:  getDefaultInstallDir(),
		SdistFormat: "xztar",
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; unset fields in a present file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("UNIPKG_CONFIG")
	}
	if path == "" {
		path = ConfigFileName
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = ConfigFileName
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Resolve makes every directory in the config absolute relative to the
// package root.
func (c *Config) Resolve() error {
	root, err := filepath.Abs(c.PackageRoot)
	if err != nil {
		return fmt.Errorf("resolving package root: %w", err)
	}
	c.PackageRoot = root

	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	c.DistDir = abs(c.DistDir)
	c.BuildDir = abs(c.BuildDir)
	c.InstallDir = abs(c.InstallDir)

	return nil
}

func getDefaultPrefix() string {
	if prefix := os.Getenv("UNIPKG_PREFIX"); prefix != "" {
		return prefix
	}
	// MSYS2 shells export the toolchain prefix (e.g. /mingw64)
	return os.Getenv("MINGW_PREFIX")
}

func getDefaultInstallDir() string {
	if dir := os.Getenv("UNIPKG_INSTALL_DIR"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "unipkg", "site-packages")
	}

	return filepath.Join(home, ".local", "share", "unipkg", "site-packages")
}

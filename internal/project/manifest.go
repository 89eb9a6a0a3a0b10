// Package project reads and writes the nkl.toml project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"nkl/internal/version"
)

// SourceExt is the extension of nkl source files.
const SourceExt = ".nkl"

// Manifest is a loaded nkl.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	// Compiler is an optional semver constraint on the nkl version.
	Compiler string `toml:"compiler,omitempty"`
}

type BuildConfig struct {
	// Main is a .nkl file or a directory, relative to the manifest.
	Main           string `toml:"main"`
	MaxDiagnostics int    `toml:"max_diagnostics,omitempty"`
}

// Load finds nkl.toml upward from startDir and decodes it. ok is false
// when there is no manifest.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].main", path)
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}

// CheckCompiler verifies [package].compiler against this build.
func (m *Manifest) CheckCompiler() error {
	constraint := strings.TrimSpace(m.Config.Package.Compiler)
	if constraint == "" {
		return nil
	}
	ok, err := version.Satisfies(constraint)
	if err != nil {
		return fmt.Errorf("%s: invalid [package].compiler %q: %w", m.Path, constraint, err)
	}
	if !ok {
		return fmt.Errorf("%s: nkl %s does not satisfy [package].compiler %q", m.Path, version.Number, constraint)
	}
	return nil
}

// Target resolves [build].main to an absolute path and reports whether
// it is a directory.
func (m *Manifest) Target() (path string, isDir bool, err error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("%s: [build].main path does not exist: %s", m.Path, mainPath)
		}
		return "", false, fmt.Errorf("%s: failed to stat [build].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return mainPath, true, nil
	}
	if filepath.Ext(mainPath) != SourceExt {
		return "", false, fmt.Errorf("%s: [build].main must be a %s file or directory", m.Path, SourceExt)
	}
	return mainPath, false, nil
}

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

const defaultMain = `// nkl hello world
main :: (args: [][^]u8) -> int {
	0
}
`

// InitResult lists what Init wrote.
type InitResult struct {
	Root        string
	Manifest    string
	Main        string
	CreatedMain bool
}

// Default returns the manifest nkl init writes for a package name.
func Default(name string) Config {
	v := version.Semver()
	return Config{
		Package: PackageConfig{
			Name:     name,
			Compiler: fmt.Sprintf(">=%d.%d.0", v.Major(), v.Minor()),
		},
		Build: BuildConfig{Main: "main" + SourceExt},
	}
}

// Init creates dir if needed and writes nkl.toml plus main.nkl. An
// existing manifest is an error; an existing main.nkl is kept.
func Init(dir string) (InitResult, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return InitResult{}, err
		}
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return InitResult{}, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return InitResult{}, fmt.Errorf("%q is not a directory", dir)
	}

	name := strings.TrimSpace(filepath.Base(dir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "nkl-project"
	}

	res := InitResult{
		Root:     dir,
		Manifest: filepath.Join(dir, ManifestName),
		Main:     filepath.Join(dir, "main"+SourceExt),
	}
	if _, err := os.Stat(res.Manifest); err == nil {
		return InitResult{}, fmt.Errorf("project already initialized: %s exists", res.Manifest)
	}

	f, err := os.OpenFile(res.Manifest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return InitResult{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	enc := toml.NewEncoder(f)
	if err := enc.Encode(Default(name)); err != nil {
		_ = f.Close()
		return InitResult{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return InitResult{}, err
	}

	if _, err := os.Stat(res.Main); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(res.Main, []byte(defaultMain), 0o600); err != nil {
			return InitResult{}, fmt.Errorf("failed to write %s: %w", res.Main, err)
		}
		res.CreatedMain = true
	}
	return res, nil
}

package bump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ModulePathFor returns modPath with its major version suffix replaced to
// match v: no suffix for v0 and v1, "/vN" from v2 on. gopkg.in paths always
// carry a ".vN" suffix.
func ModulePathFor(modPath string, v Version) string {
	base, _, ok := module.SplitPathVersion(modPath)
	if !ok {
		base = modPath
	}
	maj := semver.Major(v.Canonical())
	if strings.HasPrefix(modPath, "gopkg.in/") {
		return base + "." + maj
	}
	if maj == "v0" || maj == "v1" {
		return base
	}
	return base + "/" + maj
}

// SyncModulePath rewrites the module directive of dir/go.mod so its major
// version suffix matches v. It reports whether the file changed.
func SyncModulePath(dir string, v Version) (bool, error) {
	modPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(modPath)
	if err != nil {
		return false, fmt.Errorf("reading go.mod: %w", err)
	}

	f, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return false, fmt.Errorf("parsing go.mod: %w", err)
	}
	if f.Module == nil {
		return false, errors.New("module directive not found")
	}

	newPath := ModulePathFor(f.Module.Mod.Path, v)
	if newPath == f.Module.Mod.Path {
		return false, nil
	}
	if err := f.AddModuleStmt(newPath); err != nil {
		return false, fmt.Errorf("updating module path: %w", err)
	}

	out, err := f.Format()
	if err != nil {
		return false, fmt.Errorf("formatting go.mod: %w", err)
	}
	info, err := os.Stat(modPath)
	if err != nil {
		return false, fmt.Errorf("reading go.mod: %w", err)
	}
	if err := os.WriteFile(modPath, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing go.mod: %w", err)
	}
	return true, nil
}

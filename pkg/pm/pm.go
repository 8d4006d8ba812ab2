// Package pm abstracts the JavaScript package managers the tool drives.
//
// Each manager is identified by the lockfile it owns. [Detect] inspects a
// project directory and returns the matching implementation:
//
//	yarn.lock         → yarn  (chains parsed from "yarn why --json")
//	package-lock.json → npm   (chains passed through from "npm ls")
//	pnpm-lock.yaml    → pnpm  (chains passed through from "pnpm why")
//
// Only yarn output is structured enough to parse; the other managers return
// their tool's raw output untouched. Chain lookups never fail: a process
// error degrades to the no-transcript sentinel.
package pm

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
)

// PackageManager is the interface the generate flow drives.
type PackageManager interface {
	// Name is the executable name ("yarn", "npm", "pnpm").
	Name() string

	// Lockfile is the lockfile filename this manager owns.
	Lockfile() string

	// Version returns the installed version of pkg, read from the
	// project's node_modules tree.
	Version(pkg string) (string, error)

	// Update upgrades pkg to the latest version the manifest allows.
	Update(ctx context.Context, pkg string) error

	// DependencyChain explains why pkg at version is installed. It never
	// returns an error: when the underlying process fails or produces
	// nothing useful, the result is one of the yarnwhy sentinel strings.
	DependencyChain(ctx context.Context, pkg, version string) string
}

// Detect returns the package manager for the project at dir, based on which
// lockfile is present. Lockfiles are probed in yarn, npm, pnpm order; the
// first hit wins.
func Detect(dir string, runner Runner) (PackageManager, error) {
	managers := []PackageManager{
		NewYarn(dir, runner),
		NewNpm(dir, runner),
		NewPnpm(dir, runner),
	}
	for _, mgr := range managers {
		if _, err := os.Stat(filepath.Join(dir, mgr.Lockfile())); err == nil {
			return mgr, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidManifest, "no supported lockfile in %s (looked for yarn.lock, package-lock.json, pnpm-lock.yaml)", dir)
}

// base carries the state shared by all managers.
type base struct {
	dir    string
	runner Runner
}

// Version reads the installed version from node_modules. All managers
// install to the same layout, so the lookup is manager-agnostic and avoids
// spawning a process.
func (b base) Version(pkg string) (string, error) {
	meta, err := ReadPackageJSON(filepath.Join(b.dir, "node_modules", pkg))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodePackageNotFound, err, "%s is not installed in %s", pkg, b.dir)
	}
	return meta.Version, nil
}

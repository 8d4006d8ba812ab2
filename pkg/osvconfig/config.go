// Package osvconfig reads and writes osv-scanner.toml ignore lists.
//
// The file layout matches what osv-scanner consumes:
//
//	[[IgnoredVulns]]
//	id = "GHSA-xvch-5gv4-984h"
//	ignoreUntil = 2026-11-25T00:00:00Z
//	reason = "dev-only dependency, not reachable at runtime"
package osvconfig

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/fabien-sanchez-jvs/generate-osv-config/pkg/errors"
)

// Filename is the config filename osv-scanner picks up next to a lockfile.
const Filename = "osv-scanner.toml"

// Config is the osv-scanner configuration this tool manages.
type Config struct {
	IgnoredVulns []IgnoredVuln `toml:"IgnoredVulns"`
}

// IgnoredVuln is one ignore entry. IgnoreUntil is optional; the zero time
// is omitted and means "ignore indefinitely".
type IgnoredVuln struct {
	ID          string    `toml:"id"`
	IgnoreUntil time.Time `toml:"ignoreUntil,omitempty"`
	Reason      string    `toml:"reason"`
}

// Load reads the config at path. A missing file is not an error: it yields
// an empty config, ready for entries to be added.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return &cfg, nil
}

// Ignored reports whether id already has an entry.
func (c *Config) Ignored(id string) bool {
	for _, v := range c.IgnoredVulns {
		if v.ID == id {
			return true
		}
	}
	return false
}

// Add appends an entry unless its id is already present. It reports
// whether the entry was added.
func (c *Config) Add(v IgnoredVuln) bool {
	if c.Ignored(v.ID) {
		return false
	}
	c.IgnoredVulns = append(c.IgnoredVulns, v)
	return true
}

// Write encodes the config to path, replacing any existing file.
func (c *Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return f.Close()
}

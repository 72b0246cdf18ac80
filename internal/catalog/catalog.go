// Package catalog provides the read-only product catalog the matching
// engine resolves against. The catalog is loaded once and treated as
// immutable for the lifetime of a session resolution.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agrovision/kiosk-go/internal/errors"
	"github.com/agrovision/kiosk-go/internal/logging"
)

// Entry is one identifiable product in the catalog.
type Entry struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Company  string   `yaml:"company"`
	Crops    []string `yaml:"crops"`
	Pests    []string `yaml:"pests"`
	Usage    string   `yaml:"usage"`
	Warnings string   `yaml:"warnings"`
}

// Catalog is an immutable snapshot of entries with id and name indexes.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
	byName  map[string]Entry
}

// New builds a catalog from entries. Entries without an id or name are
// skipped with a warning; duplicate ids keep the first occurrence.
func New(entries []Entry) *Catalog {
	log := logging.ForService("catalog")

	c := &Catalog{
		byID:   make(map[string]Entry),
		byName: make(map[string]Entry),
	}
	for _, e := range entries {
		if e.ID == "" || strings.TrimSpace(e.Name) == "" {
			log.Warn("skipping catalog entry without id or name", "id", e.ID)
			continue
		}
		if _, dup := c.byID[e.ID]; dup {
			log.Warn("skipping duplicate catalog entry", "id", e.ID)
			continue
		}
		c.entries = append(c.entries, e)
		c.byID[e.ID] = e
		c.byName[strings.ToLower(e.Name)] = e
	}
	return c
}

// Load builds the catalog from a YAML file when path is non-empty and
// readable, and falls back to the built-in seed entries otherwise. The
// original deployment shipped its catalog as a bundled asset with the same
// hybrid strategy.
func Load(path string) *Catalog {
	log := logging.ForService("catalog")

	if path != "" {
		entries, err := loadFile(path)
		if err != nil {
			log.Warn("catalog file unreadable, using seed data", "path", path, "error", err)
		} else {
			log.Info("catalog loaded", "path", path, "entries", len(entries))
			return New(entries)
		}
	}

	log.Info("using seed catalog", "entries", len(seedEntries))
	return New(seedEntries)
}

func loadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(fmt.Errorf("reading catalog file: %w", err)).
			Component("catalog").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.New(fmt.Errorf("parsing catalog file: %w", err)).
			Component("catalog").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return entries, nil
}

// Entries returns a copy of all entries in load order. Callers may
// modify the returned slice freely.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// ByID looks up an entry by its id.
func (c *Catalog) ByID(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// ByName looks up an entry by its exact name, case-insensitively.
func (c *Catalog) ByName(name string) (Entry, bool) {
	e, ok := c.byName[strings.ToLower(name)]
	return e, ok
}

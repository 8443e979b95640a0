// Package templates manages issue-type formatting templates.
//
// Built-in templates ship as embedded markdown assets. Users can shadow
// any of them (or add new issue types) by dropping *.md files into
// ~/.jissue/templates — the file stem becomes the issue type, the file
// contents become the template verbatim. A user template always wins
// over the built-in one for the same type; there is no merging.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/*.md
var defaultFS embed.FS

// Store holds the built-in templates plus any user overrides.
type Store struct {
	defaults  map[string]string
	overrides map[string]string
}

// NewStore creates a Store with the embedded defaults and loads user
// overrides from overrideDir. A missing override directory is fine.
// Individual override files that cannot be read are logged and skipped —
// a broken template must never abort startup.
func NewStore(overrideDir string) (*Store, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, fmt.Errorf("loading built-in templates: %w", err)
	}

	return &Store{
		defaults:  defaults,
		overrides: loadOverrides(overrideDir),
	}, nil
}

func loadDefaults() (map[string]string, error) {
	entries, err := fs.ReadDir(defaultFS, "defaults")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := defaultFS.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		templates[stem(entry.Name())] = string(data)
	}
	return templates, nil
}

func loadOverrides(dir string) map[string]string {
	templates := make(map[string]string)
	if dir == "" {
		return templates
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("cannot read template directory", "dir", dir, "error", err)
		}
		return templates
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("skipping unreadable template", "file", entry.Name(), "error", err)
			continue
		}
		issueType := stem(entry.Name())
		templates[issueType] = string(data)
		slog.Info("loaded custom template", "type", issueType)
	}
	return templates
}

// Get returns the template for an issue type, preferring user overrides.
// The lookup is case-insensitive on the requested type.
func (s *Store) Get(issueType string) (string, bool) {
	issueType = strings.ToLower(issueType)

	if tmpl, ok := s.overrides[issueType]; ok {
		return tmpl, true
	}
	tmpl, ok := s.defaults[issueType]
	return tmpl, ok
}

// List returns the sorted names of all available templates. A type that
// exists both as a default and an override appears once.
func (s *Store) List() []string {
	names := make([]string, 0, len(s.defaults)+len(s.overrides))
	for name := range s.All() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every template, with overrides shadowing defaults.
func (s *Store) All() map[string]string {
	all := make(map[string]string, len(s.defaults)+len(s.overrides))
	for name, tmpl := range s.defaults {
		all[name] = tmpl
	}
	for name, tmpl := range s.overrides {
		all[name] = tmpl
	}
	return all
}

// stem returns the file name without its extension.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

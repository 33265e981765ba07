// Package seededcatalog implements ports.CatalogSource by reading a
// statically seeded YAML fixture (spec.md §6 "abstract catalog source, in
// the reference implementation statically seeded"). The YAML is unmarshaled
// into DTOs, then a conversion pass turns those into domain types.
package seededcatalog

import (
	"context"
	"os"

	"github.com/trailib/supergemlock/internal/core/domain"
	"github.com/trailib/supergemlock/internal/manifest"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Source reads catalog entries from a YAML file at Filename.
type Source struct {
	Filename string
}

// New returns a Source reading from path.
func New(path string) *Source {
	return &Source{Filename: path}
}

// catalogFile mirrors the on-disk YAML shape: a flat list of library
// entries, each with its own dependency list.
type catalogFile struct {
	Libraries []libraryDTO `yaml:"libraries"`
}

type libraryDTO struct {
	Name         string          `yaml:"name"`
	Version      string          `yaml:"version"`
	Dependencies []dependencyDTO `yaml:"dependencies"`
}

type dependencyDTO struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// Entries implements ports.CatalogSource.
func (s *Source) Entries(_ context.Context) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(s.Filename)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read catalog fixture")
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse catalog fixture")
	}

	entries := make([]domain.CatalogEntry, 0, len(file.Libraries))
	for _, lib := range file.Libraries {
		v, err := domain.ParseVersion(lib.Version)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid version in catalog fixture"), "library", lib.Name)
		}

		deps := make([]domain.CatalogDependency, 0, len(lib.Dependencies))
		for _, d := range lib.Dependencies {
			var constraints []domain.Constraint
			if d.Constraint != "" {
				c, err := manifest.ParseConstraintExpr(d.Constraint)
				if err == nil {
					constraints = []domain.Constraint{c}
				}
			}
			deps = append(deps, domain.CatalogDependency{
				Name:        domain.NewInternedString(d.Name),
				Constraints: constraints,
			})
		}

		entries = append(entries, domain.CatalogEntry{
			Name:         lib.Name,
			Version:      v,
			Dependencies: deps,
		})
	}

	return entries, nil
}

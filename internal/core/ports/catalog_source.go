// Package ports declares the abstract collaborators the core resolution
// pipeline depends on but does not implement itself.
package ports

import (
	"context"

	"github.com/trailib/supergemlock/internal/core/domain"
)

// CatalogSource is the abstract collaborator that supplies catalog entries.
// Actual network retrieval of catalog metadata is explicitly out of scope
// (spec.md §1); the reference implementation in
// internal/adapters/seededcatalog loads a statically seeded in-memory
// catalog instead.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog_source.go -destination=mocks/mock_catalog_source.go -package=mocks
type CatalogSource interface {
	// Entries returns every known catalog entry across all library names.
	// The orchestrator populates the catalog cache from this once, before
	// resolution begins (spec.md §5: "writers only before resolver start").
	Entries(ctx context.Context) ([]domain.CatalogEntry, error)
}

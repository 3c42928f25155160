// Package ports defines the abstract read interfaces the core recommend
// engine depends on (spec §6), plus the write-side ports the auxiliary
// adapters (bulk import, evaluation capture) use. The core never imports
// an adapter; adapters depend on ports, and app wires the two together.
package ports

import (
	"context"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
)

// Catalog is the read-only view of the fragrance catalog spec §6 requires.
type Catalog interface {
	// GetFragrance returns a single fragrance, or core.ErrFragranceNotFound.
	GetFragrance(ctx context.Context, id core.FragranceID) (*fragrance.Fragrance, error)

	// IterCandidates returns every fragrance not in excludeIDs, each with
	// its positioned notes and accords eagerly loaded (spec §6).
	IterCandidates(ctx context.Context, excludeIDs map[core.FragranceID]struct{}) ([]fragrance.Fragrance, error)
}

// CatalogWriter is the write side used by adapters/excel's bulk importer
// (spec §1 "auxiliary pieces... a CSV bulk importer", expanded in
// SPEC_FULL.md §11.3). Not consumed by the core.
type CatalogWriter interface {
	UpsertNote(ctx context.Context, note fragrance.Note) (core.NoteID, error)
	UpsertFragrance(ctx context.Context, f fragrance.Fragrance) error
}

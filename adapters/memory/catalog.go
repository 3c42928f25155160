// Package memory provides map-backed Catalog and Ratings implementations
// for tests and small deployments where a database is unnecessary.
package memory

import (
	"context"
	"sync"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
)

// Catalog is an in-memory ports.Catalog backed by a map keyed on
// fragrance id.
type Catalog struct {
	mu         sync.RWMutex
	fragrances map[core.FragranceID]fragrance.Fragrance
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{fragrances: make(map[core.FragranceID]fragrance.Fragrance)}
}

// NewCatalogFrom seeds a Catalog with an initial set of fragrances.
func NewCatalogFrom(fragrances []fragrance.Fragrance) *Catalog {
	c := NewCatalog()
	for _, f := range fragrances {
		c.fragrances[f.ID] = f
	}
	return c
}

func (c *Catalog) GetFragrance(ctx context.Context, id core.FragranceID) (*fragrance.Fragrance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.fragrances[id]
	if !ok {
		return nil, core.ErrFragranceNotFound
	}
	return &f, nil
}

func (c *Catalog) IterCandidates(ctx context.Context, excludeIDs map[core.FragranceID]struct{}) ([]fragrance.Fragrance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]fragrance.Fragrance, 0, len(c.fragrances))
	for id, f := range c.fragrances {
		if _, skip := excludeIDs[id]; skip {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *Catalog) UpsertNote(ctx context.Context, note fragrance.Note) (core.NoteID, error) {
	if note.ID == "" {
		note.ID = core.NoteID(core.NewID())
	}
	return note.ID, nil
}

func (c *Catalog) UpsertFragrance(ctx context.Context, f fragrance.Fragrance) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f.ID == "" {
		f.ID = core.FragranceID(core.NewID())
	}
	c.fragrances[f.ID] = f
	return nil
}

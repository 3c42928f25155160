// Package postgres implements the read-side ports against a relational
// schema (spec §6 "Implementations may use a relational database").
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"fragrancerater/domain/core"
	"fragrancerater/domain/fragrance"
)

// CatalogRepository implements ports.Catalog and ports.CatalogWriter
// against Postgres.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository wires a CatalogRepository to an open connection.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type fragranceRow struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Brand         string  `db:"brand"`
	Concentration string  `db:"concentration"`
	LaunchYear    *int    `db:"launch_year"`
	GenderTarget  string  `db:"gender_target"`
	PrimaryFamily string  `db:"primary_family"`
	Subfamily     string  `db:"subfamily"`
}

type positionedNoteRow struct {
	NoteID      string `db:"note_id"`
	NoteName    string `db:"note_name"`
	Category    string `db:"category"`
	Subcategory string `db:"subcategory"`
	Position    string `db:"position"`
}

type accordRow struct {
	AccordType string  `db:"accord_type"`
	Intensity  float64 `db:"intensity"`
}

func (r *CatalogRepository) GetFragrance(ctx context.Context, id core.FragranceID) (*fragrance.Fragrance, error) {
	var row fragranceRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, brand, concentration, launch_year, gender_target, primary_family, subfamily
		FROM fragrances WHERE id = $1`, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrFragranceNotFound
		}
		return nil, fmt.Errorf("get fragrance %s: %w", id, err)
	}

	f, err := r.hydrate(ctx, row)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *CatalogRepository) IterCandidates(ctx context.Context, excludeIDs map[core.FragranceID]struct{}) ([]fragrance.Fragrance, error) {
	var rows []fragranceRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, brand, concentration, launch_year, gender_target, primary_family, subfamily
		FROM fragrances ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list fragrances: %w", err)
	}

	candidates := rows[:0]
	for _, row := range rows {
		if _, skip := excludeIDs[core.FragranceID(row.ID)]; skip {
			continue
		}
		candidates = append(candidates, row)
	}

	out := make([]fragrance.Fragrance, len(candidates))
	group, gctx := errgroup.WithContext(ctx)
	for i, row := range candidates {
		i, row := i, row
		group.Go(func() error {
			f, err := r.hydrate(gctx, row)
			if err != nil {
				return err
			}
			out[i] = *f
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// hydrate loads a fragrance's positioned notes and accords concurrently —
// two independent queries with no shared state, a natural fit for
// errgroup (spec §6 "each element carries its positioned notes and
// accords eagerly loaded").
func (r *CatalogRepository) hydrate(ctx context.Context, row fragranceRow) (*fragrance.Fragrance, error) {
	var notes []positionedNoteRow
	var accords []accordRow

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return r.db.SelectContext(gctx, &notes, `
			SELECT n.id AS note_id, n.name AS note_name, n.category, n.subcategory, fn.position
			FROM fragrance_notes fn
			JOIN notes n ON n.id = fn.note_id
			WHERE fn.fragrance_id = $1
			ORDER BY n.name`, row.ID)
	})
	group.Go(func() error {
		return r.db.SelectContext(gctx, &accords, `
			SELECT accord_type, intensity FROM fragrance_accords
			WHERE fragrance_id = $1 ORDER BY accord_type`, row.ID)
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("hydrate fragrance %s: %w", row.ID, err)
	}

	f := &fragrance.Fragrance{
		ID:            core.FragranceID(row.ID),
		Name:          row.Name,
		Brand:         row.Brand,
		Concentration: row.Concentration,
		LaunchYear:    row.LaunchYear,
		GenderTarget:  row.GenderTarget,
		PrimaryFamily: row.PrimaryFamily,
		Subfamily:     row.Subfamily,
	}
	for _, n := range notes {
		f.Notes = append(f.Notes, fragrance.PositionedNote{
			Note: fragrance.Note{
				ID:          core.NoteID(n.NoteID),
				Name:        n.NoteName,
				Category:    n.Category,
				Subcategory: n.Subcategory,
			},
			Position: fragrance.Position(n.Position),
		})
	}
	for _, a := range accords {
		f.Accords = append(f.Accords, fragrance.Accord{Type: a.AccordType, Intensity: a.Intensity})
	}
	return f, nil
}

func (r *CatalogRepository) UpsertNote(ctx context.Context, note fragrance.Note) (core.NoteID, error) {
	if note.ID == "" {
		note.ID = core.NoteID(core.NewID())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, name, category, subcategory)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category, subcategory = EXCLUDED.subcategory`,
		string(note.ID), note.Name, note.Category, note.Subcategory)
	if err != nil {
		return "", fmt.Errorf("upsert note %s: %w", note.Name, err)
	}
	return note.ID, nil
}

func (r *CatalogRepository) UpsertFragrance(ctx context.Context, f fragrance.Fragrance) error {
	if f.ID == "" {
		f.ID = core.FragranceID(core.NewID())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fragrances (id, name, brand, concentration, launch_year, gender_target, primary_family, subfamily)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, brand = EXCLUDED.brand, concentration = EXCLUDED.concentration,
			launch_year = EXCLUDED.launch_year, gender_target = EXCLUDED.gender_target,
			primary_family = EXCLUDED.primary_family, subfamily = EXCLUDED.subfamily`,
		string(f.ID), f.Name, f.Brand, f.Concentration, f.LaunchYear, f.GenderTarget, f.PrimaryFamily, f.Subfamily)
	if err != nil {
		return fmt.Errorf("upsert fragrance %s: %w", f.Name, err)
	}

	for _, pn := range f.Notes {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO fragrance_notes (fragrance_id, note_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (fragrance_id, note_id) DO UPDATE SET position = EXCLUDED.position`,
			string(f.ID), string(pn.Note.ID), string(pn.Position)); err != nil {
			return fmt.Errorf("upsert fragrance note %s/%s: %w", f.ID, pn.Note.ID, err)
		}
	}
	for _, acc := range f.Accords {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO fragrance_accords (fragrance_id, accord_type, intensity)
			VALUES ($1, $2, $3)
			ON CONFLICT (fragrance_id, accord_type) DO UPDATE SET intensity = EXCLUDED.intensity`,
			string(f.ID), acc.Type, acc.Intensity); err != nil {
			return fmt.Errorf("upsert fragrance accord %s/%s: %w", f.ID, acc.Type, err)
		}
	}
	return nil
}

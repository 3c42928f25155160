package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fragrancerater/domain/core"
	"fragrancerater/domain/reviewer"
)

// RatingsRepository implements ports.Ratings and ports.EvaluationWriter.
type RatingsRepository struct {
	db      *sqlx.DB
	catalog *CatalogRepository
}

// NewRatingsRepository wires a RatingsRepository, sharing the catalog
// repository so evaluations can be returned with fragrances pre-loaded
// (spec §6 "Fragrance is pre-loaded with notes and accords").
func NewRatingsRepository(db *sqlx.DB, catalog *CatalogRepository) *RatingsRepository {
	return &RatingsRepository{db: db, catalog: catalog}
}

func (r *RatingsRepository) ReviewerExists(ctx context.Context, reviewerID core.ReviewerID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM reviewers WHERE id = $1)`, string(reviewerID))
	if err != nil {
		return false, fmt.Errorf("check reviewer %s: %w", reviewerID, err)
	}
	return exists, nil
}

type reviewerRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (r *RatingsRepository) GetReviewer(ctx context.Context, reviewerID core.ReviewerID) (*reviewer.Reviewer, error) {
	var row reviewerRow
	err := r.db.GetContext(ctx, &row, `SELECT id, name FROM reviewers WHERE id = $1`, string(reviewerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrReviewerNotFound
		}
		return nil, fmt.Errorf("get reviewer %s: %w", reviewerID, err)
	}
	return &reviewer.Reviewer{ID: core.ReviewerID(row.ID), Name: row.Name}, nil
}

type evaluationRow struct {
	ID          string `db:"id"`
	FragranceID string `db:"fragrance_id"`
	ReviewerID  string `db:"reviewer_id"`
	Rating      int    `db:"rating"`
}

func (r *RatingsRepository) EvaluationsOf(ctx context.Context, reviewerID core.ReviewerID) ([]reviewer.RatedEvaluation, error) {
	var rows []evaluationRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, fragrance_id, reviewer_id, rating FROM evaluations
		WHERE reviewer_id = $1`, string(reviewerID))
	if err != nil {
		return nil, fmt.Errorf("list evaluations for %s: %w", reviewerID, err)
	}

	out := make([]reviewer.RatedEvaluation, len(rows))
	for i, row := range rows {
		f, err := r.catalog.GetFragrance(ctx, core.FragranceID(row.FragranceID))
		if err != nil {
			return nil, fmt.Errorf("load fragrance for evaluation %s: %w", row.ID, err)
		}
		out[i] = reviewer.RatedEvaluation{
			Evaluation: reviewer.Evaluation{
				ID:          core.EvaluationID(row.ID),
				FragranceID: core.FragranceID(row.FragranceID),
				ReviewerID:  core.ReviewerID(row.ReviewerID),
				Rating:      row.Rating,
			},
			Fragrance: *f,
		}
	}
	return out, nil
}

func (r *RatingsRepository) RatedFragranceIDs(ctx context.Context, reviewerID core.ReviewerID) (map[core.FragranceID]struct{}, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT fragrance_id FROM evaluations WHERE reviewer_id = $1`, string(reviewerID))
	if err != nil {
		return nil, fmt.Errorf("list rated fragrance ids for %s: %w", reviewerID, err)
	}

	out := make(map[core.FragranceID]struct{}, len(ids))
	for _, id := range ids {
		out[core.FragranceID(id)] = struct{}{}
	}
	return out, nil
}

func (r *RatingsRepository) RecordEvaluation(ctx context.Context, e reviewer.Evaluation) error {
	if e.ID == "" {
		e.ID = core.EvaluationID(core.NewID())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, fragrance_id, reviewer_id, rating, evaluated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (reviewer_id, fragrance_id) DO UPDATE SET rating = EXCLUDED.rating, evaluated_at = NOW()`,
		string(e.ID), string(e.FragranceID), string(e.ReviewerID), e.Rating)
	if err != nil {
		return fmt.Errorf("record evaluation %s/%s: %w", e.ReviewerID, e.FragranceID, err)
	}
	return nil
}

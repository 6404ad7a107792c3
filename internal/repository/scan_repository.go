package repository

import (
	"context"
	"fmt"

	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// scanRepository implements the ScanRepository interface using PostgreSQL.
type scanRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewScanRepository creates a new PostgreSQL-backed scan repository.
func NewScanRepository(pool *pgxpool.Pool, logger zerolog.Logger) ScanRepository {
	return &scanRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "scan").Logger(),
	}
}

// Create inserts a scan within the provided transaction.
func (r *scanRepository) Create(ctx context.Context, tx pgx.Tx, scan *model.Scan) error {
	query := `
		INSERT INTO scans (id, user_id, ingredients_text, analysis, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		scan.ID,
		scan.UserID,
		scan.IngredientsText,
		scan.Analysis,
		string(scan.Source),
		scan.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("scan_id", scan.ID.String()).
			Str("user_id", scan.UserID.String()).
			Msg("failed to create scan")
		return fmt.Errorf("failed to create scan: %w", err)
	}

	r.logger.Debug().
		Str("scan_id", scan.ID.String()).
		Str("source", string(scan.Source)).
		Msg("scan created successfully")

	return nil
}

// ListByUser returns the most recent scans of a user, newest first.
func (r *scanRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Scan, error) {
	query := `
		SELECT id, user_id, ingredients_text, analysis, source, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query scans")
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	scans := []model.Scan{}
	for rows.Next() {
		var s model.Scan
		var source string
		if err := rows.Scan(&s.ID, &s.UserID, &s.IngredientsText, &s.Analysis, &source, &s.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan scan row")
			return nil, fmt.Errorf("failed to scan scan: %w", err)
		}
		s.Source = model.AnalysisSource(source)
		scans = append(scans, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating scan rows")
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}

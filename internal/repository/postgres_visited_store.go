package repository

import (
	"context"
	"fmt"

	"routeplanner/internal/domain/repository"
	"routeplanner/internal/infrastructure/database"
)

// PostgresVisitedStore backs visited_pois (§6): a thin read over a
// `visited_pois(user_id, poi_id, visited_at)` table populated by the
// external walk-tracking collaborator named in SPEC_FULL.md's expansion of
// this operation (grounded on the teacher's WalksService/walks table,
// which records exactly this kind of user-to-POI visitation history).
type PostgresVisitedStore struct {
	client *database.PostgresClient
}

func NewPostgresVisitedStore(client *database.PostgresClient) repository.VisitedStore {
	return &PostgresVisitedStore{client: client}
}

func (r *PostgresVisitedStore) GetVisited(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.client.DB.QueryContext(ctx, `SELECT poi_id FROM visited_pois WHERE user_id = $1 ORDER BY visited_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: get visited pois: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: scan visited poi: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
	"routeplanner/internal/infrastructure/database"
)

// PostgresPOIStore is the §6 POI store: `pois` table with id, name, lat,
// lon, address, poi_type, normalize_stars_reviews, open_hours, queried via
// PostGIS ST_DWithin, grounded on the teacher's PostgresPOIsRepository.
type PostgresPOIStore struct {
	client *database.PostgresClient
}

func NewPostgresPOIStore(client *database.PostgresClient) repository.POIStore {
	return &PostgresPOIStore{client: client}
}

const poiColumns = `id, name, lat, lon, address, poi_type, normalize_stars_reviews, open_hours`

func (r *PostgresPOIStore) scanPOI(row scanner) (model.POI, error) {
	var p model.POI
	var hoursRaw []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Location.Lat, &p.Location.Lng, &p.Address, &p.Category, &p.Rating, &hoursRaw); err != nil {
		return model.POI{}, err
	}
	if len(hoursRaw) > 0 {
		_ = json.Unmarshal(hoursRaw, &p.Hours) // malformed hours -> zero value -> "always open" policy (§3)
	}
	return p, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (r *PostgresPOIStore) GetByID(ctx context.Context, id string) (*model.POI, error) {
	query := fmt.Sprintf(`SELECT %s FROM pois WHERE id = $1`, poiColumns)
	row := r.client.DB.QueryRowContext(ctx, query, id)
	poi, err := r.scanPOI(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("poi %q not found", id)
		}
		return nil, fmt.Errorf("postgres: get poi by id: %w", err)
	}
	return &poi, nil
}

func (r *PostgresPOIStore) GetByIDs(ctx context.Context, ids []string) ([]model.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM pois WHERE id = ANY($1)`, poiColumns)
	rows, err := r.client.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("postgres: batch get pois: %w", err)
	}
	defer rows.Close()

	var out []model.POI
	for rows.Next() {
		poi, err := r.scanPOI(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan poi: %w", err)
		}
		out = append(out, poi)
	}
	return out, rows.Err()
}

// FindNearby implements the bounding/radius query named in §6, using
// PostGIS's geography ST_DWithin the way the teacher's GetNearbyPOIs does,
// generalized with an optional category filter (teacher's GetByCategories).
func (r *PostgresPOIStore) FindNearby(ctx context.Context, lat, lon float64, radiusMeters float64, categories []model.Category, limit int) ([]model.POI, error) {
	if limit <= 0 {
		limit = 500
	}

	var b strings.Builder
	fmt.Fprintf(&b, `SELECT %s FROM pois WHERE ST_DWithin(`, poiColumns)
	b.WriteString(`ST_GeogFromText('POINT(' || lon || ' ' || lat || ')'), `)
	b.WriteString(`ST_GeogFromText('POINT(' || $2 || ' ' || $1 || ')'), $3)`)
	query := b.String()

	args := []any{lat, lon, radiusMeters}
	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, c := range categories {
			cats[i] = string(c)
		}
		query += ` AND poi_type = ANY($4)`
		args = append(args, pq.Array(cats))
	}
	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: find nearby pois: %w", err)
	}
	defer rows.Close()

	var out []model.POI
	for rows.Next() {
		poi, err := r.scanPOI(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan poi: %w", err)
		}
		out = append(out, poi)
	}
	return out, rows.Err()
}

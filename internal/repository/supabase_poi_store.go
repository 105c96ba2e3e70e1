package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"routeplanner/internal/domain/geo"
	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
	"routeplanner/internal/infrastructure/database"
)

// SupabasePOIStore is an alternate POI-store backend over the Supabase
// REST query builder, grounded on the teacher's SupabasePOIsRepository,
// selected in place of PostgresPOIStore by configuration (store.backend =
// "supabase"). Unlike the teacher's GetNearbyPOIs (which fetches every row
// and appends it unfiltered, per a TODO in the original), this filters by
// haversine distance client-side after the REST fetch, since the REST
// query builder used here has no ST_DWithin equivalent.
type SupabasePOIStore struct {
	client *database.SupabaseClient
}

func NewSupabasePOIStore(client *database.SupabaseClient) repository.POIStore {
	return &SupabasePOIStore{client: client}
}

// poiRow is the flat row shape returned by the `pois` table (§6), decoded
// before being reshaped into model.POI's nested LatLng location.
type poiRow struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Lat                   float64         `json:"lat"`
	Lon                   float64         `json:"lon"`
	Address               string          `json:"address"`
	PoiType               string          `json:"poi_type"`
	NormalizeStarsReviews float64         `json:"normalize_stars_reviews"`
	OpenHours             json.RawMessage `json:"open_hours"`
}

func (row poiRow) toPOI() model.POI {
	p := model.POI{
		ID:       row.ID,
		Name:     row.Name,
		Location: model.LatLng{Lat: row.Lat, Lng: row.Lon},
		Address:  row.Address,
		Category: model.Category(row.PoiType),
		Rating:   row.NormalizeStarsReviews,
	}
	if len(row.OpenHours) > 0 {
		_ = json.Unmarshal(row.OpenHours, &p.Hours)
	}
	return p
}

func (r *SupabasePOIStore) GetByID(ctx context.Context, id string) (*model.POI, error) {
	data, _, err := r.client.GetClient().From("pois").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase: get poi by id: %w", err)
	}
	var rows []poiRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("supabase: decode poi rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("poi %q not found", id)
	}
	poi := rows[0].toPOI()
	return &poi, nil
}

func (r *SupabasePOIStore) GetByIDs(ctx context.Context, ids []string) ([]model.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	data, _, err := r.client.GetClient().From("pois").Select("*", "exact", false).In("id", ids).Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase: batch get pois: %w", err)
	}
	var rows []poiRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("supabase: decode poi rows: %w", err)
	}
	out := make([]model.POI, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPOI())
	}
	return out, nil
}

func (r *SupabasePOIStore) FindNearby(ctx context.Context, lat, lon float64, radiusMeters float64, categories []model.Category, limit int) ([]model.POI, error) {
	query := r.client.GetClient().From("pois").Select("*", "exact", false)
	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, c := range categories {
			cats[i] = string(c)
		}
		query = query.In("poi_type", cats)
	}
	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase: find nearby pois: %w", err)
	}
	var rows []poiRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("supabase: decode poi rows: %w", err)
	}

	center := model.LatLng{Lat: lat, Lng: lon}
	radiusKm := radiusMeters / 1000.0
	out := make([]model.POI, 0, len(rows))
	for _, row := range rows {
		poi := row.toPOI()
		if geo.HaversineKm(center, poi.Location) <= radiusKm {
			out = append(out, poi)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

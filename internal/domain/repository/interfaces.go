// Package repository declares the external-collaborator contracts named in
// §6: the POI store, the vector index, the embedding service, and the
// cell/per-user cache. The orchestrator and its components depend on these
// interfaces only; concrete adapters live under internal/repository and
// internal/infrastructure.
package repository

import (
	"context"
	"time"

	"routeplanner/internal/domain/model"
)

// POIStore is the relational POI store contract (§6).
type POIStore interface {
	// GetByID hydrates a single POI by stable id.
	GetByID(ctx context.Context, id string) (*model.POI, error)
	// GetByIDs batch-hydrates POIs, used to hydrate deduplicated candidate
	// pools and substitution candidates alike.
	GetByIDs(ctx context.Context, ids []string) ([]model.POI, error)
	// FindNearby returns POIs within radiusMeters of (lat, lon), optionally
	// restricted to categories (empty slice means no category filter).
	FindNearby(ctx context.Context, lat, lon float64, radiusMeters float64, categories []model.Category, limit int) ([]model.POI, error)
}

// VectorIndex is the vector-similarity search contract (§6).
type VectorIndex interface {
	// SearchTopK returns POI ids ranked by cosine similarity descending,
	// paired with their similarity score. idFilter, when non-empty,
	// restricts results to that id set.
	SearchTopK(ctx context.Context, vector []float32, topK int, idFilter []string) ([]ScoredID, error)
}

// ScoredID is a vector-index hit: a POI id with its similarity score.
type ScoredID struct {
	ID         string
	Similarity float64
}

// Embedder is the embedding-service contract (§6). isQuery selects the
// asymmetric "query:"/"passage:" prefix for models that require it.
type Embedder interface {
	Embed(ctx context.Context, text string, isQuery bool) ([]float32, error)
}

// VisitedStore backs the visited_pois inbound operation (§6): a
// read-through over the visited_pois table, owned by an
// external collaborator (walk/visit tracking) and exposed here only as a
// thin read contract.
type VisitedStore interface {
	GetVisited(ctx context.Context, userID string) ([]string, error)
}

// Cache is the key-value store contract shared by the H3 cell cache (C3)
// and the per-user route cache (C8): set-with-TTL, get, delete, and atomic
// overwrite, keyed by string.
type Cache interface {
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	// Overwrite replaces the value atomically, refreshing the TTL; used by
	// C8's last-write-wins semantics and C9's confirm_replace.
	Overwrite(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

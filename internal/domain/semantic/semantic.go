// Package semantic implements C4, the semantic candidate source: encoding
// free text via the embedding service and ranking POIs by cosine
// similarity via the vector index, hydrated from the POI store.
package semantic

import (
	"context"
	"sort"

	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/repository"
)

// Source is the C4 semantic candidate source.
type Source struct {
	embedder repository.Embedder
	index    repository.VectorIndex
	store    repository.POIStore
}

func NewSource(embedder repository.Embedder, index repository.VectorIndex, store repository.POIStore) *Source {
	return &Source{embedder: embedder, index: index, store: store}
}

// Find implements semantic_candidates(text, top_k, [id_filter]): returns
// POIs sorted by similarity descending, each carrying its similarity score.
func (s *Source) Find(ctx context.Context, text string, topK int, idFilter []string) ([]model.POI, error) {
	if text == "" || topK <= 0 {
		return nil, nil
	}

	vector, err := s.embedder.Embed(ctx, text, true)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.SearchTopK(ctx, vector, topK, idFilter)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(hits))
	scoreByID := make(map[string]float64, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
		scoreByID[h.ID] = h.Similarity
	}

	pois, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.POI, 0, len(pois))
	for _, p := range pois {
		p.Similarity = scoreByID[p.ID]
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out, nil
}

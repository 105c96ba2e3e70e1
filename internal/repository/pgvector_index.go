package repository

import (
	"context"
	"fmt"
	"strings"

	"routeplanner/internal/domain/repository"
	"routeplanner/internal/infrastructure/database"
)

// PgVectorIndex is the §6 vector index: a `poi_embeddings(poi_id, embedding
// vector(384))` table queried with pgvector's `<=>` cosine-distance
// operator, grounded on FACorreiaa's FindSimilarPOIs/SearchPOIsHybrid raw
// SQL pattern (no dedicated vector-DB client appears anywhere in the
// examples pack, so this stays on the teacher's own `lib/pq` connection
// rather than introducing an unrelated dependency; see DESIGN.md).
type PgVectorIndex struct {
	client *database.PostgresClient
	dim    int
}

func NewPgVectorIndex(client *database.PostgresClient, dim int) repository.VectorIndex {
	if dim <= 0 {
		dim = 384
	}
	return &PgVectorIndex{client: client, dim: dim}
}

// SearchTopK implements the §6 vector index contract: cosine similarity
// top-k, optionally restricted to idFilter. pgvector's `<=>` operator is
// cosine *distance*; similarity is reported as 1 - distance.
func (idx *PgVectorIndex) SearchTopK(ctx context.Context, vector []float32, topK int, idFilter []string) ([]repository.ScoredID, error) {
	if len(vector) == 0 || topK <= 0 {
		return nil, nil
	}

	literal := vectorLiteral(vector)
	query := `SELECT poi_id, 1 - (embedding <=> $1) AS similarity FROM poi_embeddings`
	args := []any{literal}
	if len(idFilter) > 0 {
		placeholders := make([]string, len(idFilter))
		for i, id := range idFilter {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += fmt.Sprintf(` WHERE poi_id IN (%s)`, strings.Join(placeholders, ","))
	}
	args = append(args, topK)
	query += fmt.Sprintf(` ORDER BY embedding <=> $1 LIMIT $%d`, len(args))

	rows, err := idx.client.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgvector: search top-k: %w", err)
	}
	defer rows.Close()

	var out []repository.ScoredID
	for rows.Next() {
		var hit repository.ScoredID
		if err := rows.Scan(&hit.ID, &hit.Similarity); err != nil {
			return nil, fmt.Errorf("pgvector: scan hit: %w", err)
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}

// vectorLiteral renders a float32 slice as pgvector's "[v1,v2,...]" input
// literal.
func vectorLiteral(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

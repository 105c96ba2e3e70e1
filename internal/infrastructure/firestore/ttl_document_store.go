package firestore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"routeplanner/internal/domain/repository"
)

// ttlDocument is the Firestore document shape, adapted from the teacher's
// `firestore:"expireAt"` convention: the raw cache value plus an expiry
// timestamp checked on read, since Firestore has no native per-document
// TTL write path in this client's usage.
type ttlDocument struct {
	Value    []byte    `firestore:"value"`
	ExpireAt time.Time `firestore:"expireAt"`
}

// TTLDocumentStore is an alternate, durable backend for the §6 Cache
// contract over one Firestore collection, offered as a config-selectable
// replacement for the in-memory cache on the per-user route cache (C8).
type TTLDocumentStore struct {
	client     *Client
	collection string
}

func NewTTLDocumentStore(client *Client, collection string) *TTLDocumentStore {
	if collection == "" {
		collection = "userRouteCache"
	}
	return &TTLDocumentStore{client: client, collection: collection}
}

var _ repository.Cache = (*TTLDocumentStore)(nil)

func (s *TTLDocumentStore) docID(key string) string {
	// Firestore document ids can't contain "/"; the cache key prefixes
	// ("user:", "h3:<res>:") never do, so this is a direct mapping.
	return key
}

func (s *TTLDocumentStore) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	doc := ttlDocument{Value: value, ExpireAt: time.Now().Add(ttl)}
	_, err := s.client.GetClient().Collection(s.collection).Doc(s.docID(key)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("firestore: set %q: %w", key, err)
	}
	return nil
}

func (s *TTLDocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	snap, err := s.client.GetClient().Collection(s.collection).Doc(s.docID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("firestore: get %q: %w", key, err)
	}
	var doc ttlDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, false, fmt.Errorf("firestore: decode %q: %w", key, err)
	}
	if doc.ExpireAt.Before(time.Now()) {
		_, _ = s.client.GetClient().Collection(s.collection).Doc(s.docID(key)).Delete(ctx)
		return nil, false, nil
	}
	return doc.Value, true, nil
}

func (s *TTLDocumentStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.GetClient().Collection(s.collection).Doc(s.docID(key)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("firestore: delete %q: %w", key, err)
	}
	return nil
}

// Overwrite is Set for this backend: Firestore's Doc.Set already replaces
// the document wholesale, satisfying last-write-wins/refresh-TTL (§3).
func (s *TTLDocumentStore) Overwrite(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.SetTTL(ctx, key, value, ttl)
}

// SweepExpired opportunistically evicts expired documents, grounded on
// §3's "evicted opportunistically" cell-cache lifecycle note, generalized
// to the per-user cache backend when Firestore is selected in its place.
// Callers run this on a ticker (cmd/server wires one when the firestore
// backend is selected) since Get-time eviction alone only cleans entries
// that are actually read again.
func (s *TTLDocumentStore) SweepExpired(ctx context.Context, limit int) (int, error) {
	iter := s.client.GetClient().Collection(s.collection).Where("expireAt", "<", time.Now()).Limit(limit).Documents(ctx)
	defer iter.Stop()

	n := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return n, fmt.Errorf("firestore: sweep: %w", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return n, fmt.Errorf("firestore: sweep delete: %w", err)
		}
		n++
	}
	return n, nil
}

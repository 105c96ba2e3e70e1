package database

import (
	"fmt"

	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseClient wraps the Supabase REST client, adapted from the
// teacher's SupabaseClient, used as the alternate POI-store backend
// selected by configuration (store.backend = "supabase").
type SupabaseClient struct {
	Client *supabase.Client
}

// NewSupabaseClient builds a Supabase REST client against the given
// project URL and API key.
func NewSupabaseClient(url, apiKey string) (*SupabaseClient, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase: url not set")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("supabase: api key not set")
	}

	client, err := supabase.NewClient(url, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("supabase: failed to init client: %w", err)
	}
	return &SupabaseClient{Client: client}, nil
}

// GetClient returns the underlying REST query builder client.
func (c *SupabaseClient) GetClient() *supabase.Client {
	return c.Client
}

// HealthCheck confirms the client was initialized; the REST API has no
// dedicated ping endpoint, mirroring the teacher's own lightweight check.
func (c *SupabaseClient) HealthCheck() error {
	if c.Client == nil {
		return fmt.Errorf("supabase: client not initialized")
	}
	return nil
}

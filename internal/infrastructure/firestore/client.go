// Package firestore adapts the teacher's Firestore client and TTL-document
// convention into an alternate backend for the §6 Cache contract, selected
// by configuration in place of the in-memory cache for the per-user route
// cache (C8).
package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Client wraps *firestore.Client, adapted from the teacher's
// FirestoreClient: default credentials on Cloud Run-style environments,
// falling back to a credentials file path for local development.
type Client struct {
	client *firestore.Client
}

func NewClient(ctx context.Context, projectID string) (*Client, error) {
	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var client *firestore.Client
	var err error
	if credentialsFile == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		if _, statErr := os.Stat(credentialsFile); statErr != nil {
			client, err = firestore.NewClient(ctx, projectID)
		} else {
			client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("firestore: failed to create client: %w", err)
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) GetClient() *firestore.Client {
	return c.client
}

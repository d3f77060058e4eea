package fsrepo

import (
	"context"
	"fmt"

	"laza-storefront/pkg/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewClient connects to Firestore. An empty credentialsFile falls back to
// Application Default Credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var (
		client *firestore.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	logger.Info().Str("project", projectID).Msg("Firestore connected")
	return client, nil
}

package connection

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"github.com/l3hner/hauspilot/config"
)

// FBConnection initializes the Firebase app and returns its Firestore
// client.
func FBConnection(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	if cfg.GoogleCredentials == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.GoogleCredentials))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}
	return client, nil
}

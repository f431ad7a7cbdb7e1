package dashboard

import (
	"context"

	"igdash/pkg/provider"
)

// Upstream defines the provider operations the dashboard needs
type Upstream interface {
	SearchUsers(ctx context.Context, query string) (*provider.SearchResponse, error)
	GetProfile(ctx context.Context, username string) (*provider.Profile, error)
	GetMedia(ctx context.Context, q provider.MediaQuery) (*provider.MediaResponse, error)
	OpenImage(ctx context.Context, url string) (*provider.Image, error)
}

package repository

import (
	"context"
	"errors"

	"go-skin-analyzer/internal/analyzer"
)

// ErrInvalidImageURL reports a URL the repository refuses to fetch.
var ErrInvalidImageURL = errors.New("invalid image URL")

// ImageRepository defines image data access for the service layer.
type ImageRepository interface {
	// FetchRaster retrieves and decodes an image from a URL.
	FetchRaster(ctx context.Context, imageURL string) (*analyzer.Raster, error)

	// ValidateImageURL checks whether the URL is acceptable before fetching.
	ValidateImageURL(imageURL string) error
}

package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
	"go-skin-analyzer/internal/storage"
)

// fetcherImageRepository routes fetches to the right backend: Azure blob
// URLs go to the blob fetcher when one is configured, everything else to
// the plain HTTP fetcher.
type fetcherImageRepository struct {
	httpFetcher storage.ImageFetcher
	blobFetcher storage.ImageFetcher
}

// NewImageRepository creates a repository over the given fetchers.
// blobFetcher may be nil when blob storage is not configured.
func NewImageRepository(httpFetcher, blobFetcher storage.ImageFetcher) ImageRepository {
	return &fetcherImageRepository{
		httpFetcher: httpFetcher,
		blobFetcher: blobFetcher,
	}
}

func (r *fetcherImageRepository) FetchRaster(ctx context.Context, imageURL string) (*analyzer.Raster, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}
	if r.blobFetcher != nil && isBlobURL(imageURL) {
		return r.blobFetcher.FetchRaster(ctx, imageURL)
	}
	return r.httpFetcher.FetchRaster(ctx, imageURL)
}

func (r *fetcherImageRepository) ValidateImageURL(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return ErrInvalidImageURL
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrInvalidImageURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidImageURL)
	}
	return nil
}

func isBlobURL(imageURL string) bool {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(parsed.Host, ".blob.core.windows.net")
}

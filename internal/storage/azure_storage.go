package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
)

// azureFetcher reads images from Azure Blob Storage. Blob URLs follow the
// form https://<account>.blob.core.windows.net/<container>?blob=<name>.
type azureFetcher struct {
	client *azblob.Client
}

// NewAzureFetcher creates a blob-backed ImageFetcher using shared key
// credentials.
func NewAzureFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureFetcher{client: client}, nil
}

func (s *azureFetcher) FetchRaster(ctx context.Context, blobURL string) (*analyzer.Raster, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob URL", err)
	}

	containerName := parsedURL.Path
	if len(containerName) > 0 && containerName[0] == '/' {
		containerName = containerName[1:]
	}
	blobName := parsedURL.Query().Get("blob")
	if containerName == "" || blobName == "" {
		return nil, apperrors.NewValidationError("blob URL must name a container and a blob", nil)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, classifyFetchError(fmt.Errorf("blob download failed: %w", err))
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(retryReader)
	if err != nil {
		return nil, classifyFetchError(fmt.Errorf("blob read failed: %w", err))
	}

	return DecodeRaster(data)
}

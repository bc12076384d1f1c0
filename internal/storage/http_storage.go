package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
)

// ImageFetcher retrieves a remote image and decodes it into a raster.
type ImageFetcher interface {
	FetchRaster(ctx context.Context, imageURL string) (*analyzer.Raster, error)
}

// HTTPImageFetcher fetches images over HTTP(S) with bounded retries.
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPImageFetcher creates an HTTP fetcher. maxBytes caps the response
// body; zero or negative means no cap.
func NewHTTPImageFetcher(timeout time.Duration, maxBytes int64) ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

func (h *HTTPImageFetcher) FetchRaster(ctx context.Context, imageURL string) (*analyzer.Raster, error) {
	data, err := h.fetchBytes(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return DecodeRaster(data)
}

func (h *HTTPImageFetcher) fetchBytes(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Skin-Analyzer/1.0")

	// Three attempts; only transient failures (transport errors, 5xx) retry.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, classifyFetchError(ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			defer resp.Body.Close()
			body := io.Reader(resp.Body)
			if h.maxBytes > 0 {
				body = io.LimitReader(resp.Body, h.maxBytes+1)
			}
			data, err := io.ReadAll(body)
			if err != nil {
				return nil, classifyFetchError(err)
			}
			if h.maxBytes > 0 && int64(len(data)) > h.maxBytes {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("image exceeds %d byte limit", h.maxBytes), nil)
			}
			return data, nil
		}

		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewNotFoundError("image not found", nil)
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, apperrors.NewNetworkError(
				fmt.Sprintf("upstream rejected request: status %d", resp.StatusCode), nil)
		}
		lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	return nil, classifyFetchError(fmt.Errorf("failed to fetch image after 3 attempts: %w", lastErr))
}

func classifyFetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("image fetch timed out", err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewNetworkError("image fetch failed", err)
}

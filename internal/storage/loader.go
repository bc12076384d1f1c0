package storage

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"go-skin-analyzer/internal/analyzer"
	apperrors "go-skin-analyzer/internal/errors"
)

func normalize(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
}

// maxDimension caps decoded images; larger frames are downscaled before
// analysis. The pipeline's statistics are scale-tolerant and the bound keeps
// memory proportional to the cap, not the upload.
const maxDimension = 4096

// DecodeRaster decodes encoded image bytes (JPEG, PNG, GIF, TIFF, BMP) into
// the packed RGB raster the pipeline consumes. EXIF orientation is applied
// before the pixels are packed.
func DecodeRaster(data []byte) (*analyzer.Raster, error) {
	if len(data) == 0 {
		return nil, apperrors.NewDecodeError("empty image payload", nil)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.NewDecodeError("unsupported or corrupt image data", err)
	}

	r, err := analyzer.FromImage(normalize(img))
	if err != nil {
		if errors.Is(err, analyzer.ErrMalformedDimensions) {
			return nil, apperrors.NewMalformedImageError("image has zero width or height", err)
		}
		return nil, apperrors.NewInternalError("raster conversion failed", err)
	}
	return r, nil
}

// LoadRaster reads and decodes an image file from the local filesystem.
func LoadRaster(path string) (*analyzer.Raster, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperrors.NewDecodeError("cannot open image file", err)
	}

	r, err := analyzer.FromImage(normalize(img))
	if err != nil {
		if errors.Is(err, analyzer.ErrMalformedDimensions) {
			return nil, apperrors.NewMalformedImageError("image has zero width or height", err)
		}
		return nil, apperrors.NewInternalError("raster conversion failed", err)
	}
	return r, nil
}

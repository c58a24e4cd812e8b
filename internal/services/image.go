package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/safe"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions is the extension filter offered by the open dialog.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff", ".tif", ".webp"}

// EncodableExtensions is the extension filter offered by the save dialog.
// WebP can be read but not written.
var EncodableExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// ImageService handles image loading and saving
type ImageService struct {
	tracker     safe.MemoryTracker
	logger      logger.Logger
	jpegQuality int
}

// NewImageService creates a new image service
func NewImageService(tracker safe.MemoryTracker, log logger.Logger, jpegQuality int) *ImageService {
	return &ImageService{
		tracker:     tracker,
		logger:      log,
		jpegQuality: jpegQuality,
	}
}

// LoadFile decodes the file at path into a BGRA Mat. Every failure is
// reported as a *DecodeError.
func (is *ImageService) LoadFile(path string) (*models.ImageData, error) {
	startTime := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	mat, err := conversion.ImageToMat(img, is.tracker, "original")
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("failed to convert image to Mat: %w", err)}
	}

	imageData := &models.ImageData{
		Mat:      mat,
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Format:   format,
		Path:     path,
		FileSize: int64(len(data)),
		LoadTime: time.Now(),
	}

	is.logger.Debug("ImageService", "image decoded", map[string]interface{}{
		"path":     path,
		"format":   format,
		"width":    imageData.Width,
		"height":   imageData.Height,
		"bytes":    imageData.FileSize,
		"duration": time.Since(startTime).String(),
	})

	return imageData, nil
}

// SaveFile writes mat to path in the format implied by its extension. The
// file is not touched when mat is nil.
func (is *ImageService) SaveFile(path string, mat *safe.Mat) (err error) {
	if !mat.IsValid() {
		return ErrNoImage
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	return is.Encode(f, path, mat)
}

// Encode writes mat to w, choosing the encoder from name's extension.
func (is *ImageService) Encode(w io.Writer, name string, mat *safe.Mat) error {
	if !mat.IsValid() {
		return ErrNoImage
	}

	img, err := conversion.MatToImage(mat)
	if err != nil {
		return &WriteError{Path: name, Err: err}
	}

	format := FormatFor(name)
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(is.jpegQuality)); err != nil {
		return &WriteError{Path: name, Err: err}
	}

	is.logger.Debug("ImageService", "image encoded", map[string]interface{}{
		"name":   name,
		"format": format.String(),
	})
	return nil
}

// FormatFor maps a file name to an encoder, defaulting to PNG.
func FormatFor(name string) imaging.Format {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return imaging.PNG
	}
	return format
}

// IsDecodeError reports whether err is a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

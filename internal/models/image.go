package models

import (
	"sync"
	"time"

	"image-processor/internal/opencv/safe"
)

// ImageData represents a decoded image with its metadata
type ImageData struct {
	Mat      *safe.Mat
	Width    int
	Height   int
	Format   string
	Path     string
	FileSize int64
	LoadTime time.Time
}

// ImageRepository owns the original image and its processed derivative.
// Every Mat handed to it is owned by the repository from then on.
type ImageRepository struct {
	mu            sync.RWMutex
	originalImage *ImageData
	processed     *safe.Mat
}

// NewImageRepository creates a new image repository
func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

// SetOriginalImage replaces the original image and releases the previous one
func (r *ImageRepository) SetOriginalImage(img *ImageData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.originalImage != nil && r.originalImage != img {
		r.originalImage.Mat.Close()
	}
	r.originalImage = img
}

// GetOriginalImage retrieves the original image
func (r *ImageRepository) GetOriginalImage() *ImageData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.originalImage
}

// SetProcessed replaces the processed image and releases the previous one
func (r *ImageRepository) SetProcessed(mat *safe.Mat) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.processed != nil && r.processed != mat {
		r.processed.Close()
	}
	r.processed = mat
}

// GetProcessed returns the processed image, or nil before the first load
func (r *ImageRepository) GetProcessed() *safe.Mat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.processed
}

// ClearAll removes all images including original
func (r *ImageRepository) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.originalImage != nil {
		r.originalImage.Mat.Close()
		r.originalImage = nil
	}
	if r.processed != nil {
		r.processed.Close()
		r.processed = nil
	}
}

// GetImageStats returns statistics about stored images
func (r *ImageRepository) GetImageStats() ImageStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := ImageStats{
		HasOriginal:  r.originalImage != nil,
		HasProcessed: r.processed != nil,
	}
	if r.originalImage != nil {
		stats.TotalMemoryUsage += matBytes(r.originalImage.Mat)
	}
	stats.TotalMemoryUsage += matBytes(r.processed)

	return stats
}

// ImageStats contains statistics about the image repository
type ImageStats struct {
	HasOriginal      bool
	HasProcessed     bool
	TotalMemoryUsage int64
}

func matBytes(m *safe.Mat) int64 {
	if !m.IsValid() {
		return 0
	}
	return int64(m.Rows()) * int64(m.Cols()) * int64(m.Channels())
}

// Shutdown releases all resources
func (r *ImageRepository) Shutdown() {
	r.ClearAll()
}

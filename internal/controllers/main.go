package controllers

import (
	"errors"
	"fmt"
	"image"
	"io"

	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/opencv/conversion"
	"image-processor/internal/opencv/memory"
	"image-processor/internal/services"
	"image-processor/internal/timing"
)

// View is the presentation surface the controller pushes state into.
type View interface {
	SetPreview(img image.Image)
	SetFactors(factors models.Factors)
	UpdateStatus(status string)
	SetImageInfo(width, height, channels int, format string)
	SetMemoryInfo(used, activeMats int64)
	ShowError(title string, err error)
	EnableImageOperations(enabled bool)
}

// MainController owns the image state: the original image, its processed
// derivative and the enhancement factors. Every mutation regenerates the
// preview before returning.
type MainController struct {
	imageService      *services.ImageService
	processingService *services.ProcessingService
	previewService    *services.PreviewService

	imageRepo *models.ImageRepository
	settings  *models.EnhancementSettings
	memory    *memory.Manager
	logger    logger.Logger
	timer     *timing.Tracker

	view View
}

// NewMainController creates a new main controller
func NewMainController(
	imageService *services.ImageService,
	processingService *services.ProcessingService,
	previewService *services.PreviewService,
	imageRepo *models.ImageRepository,
	settings *models.EnhancementSettings,
	memoryManager *memory.Manager,
	log logger.Logger,
) *MainController {
	return &MainController{
		imageService:      imageService,
		processingService: processingService,
		previewService:    previewService,
		imageRepo:         imageRepo,
		settings:          settings,
		memory:            memoryManager,
		logger:            log,
		timer:             timing.NewTracker(),
	}
}

// SetView associates the view with this controller and syncs it with the
// current state.
func (mc *MainController) SetView(view View) {
	mc.view = view
	if view == nil {
		return
	}
	view.SetFactors(mc.settings.Factors())
	view.EnableImageOperations(mc.HasImage())
}

// Load decodes path and makes it the original image. The processed image
// becomes a plain copy of it; factors keep their current values. On failure
// the previous state is left untouched.
func (mc *MainController) Load(path string) error {
	defer mc.timer.Start("load")()

	imageData, err := mc.imageService.LoadFile(path)
	if err != nil {
		mc.handleError("Image load failed", err)
		return err
	}

	processed, err := imageData.Mat.CloneAs("processed")
	if err != nil {
		imageData.Mat.Close()
		err = fmt.Errorf("failed to copy original: %w", err)
		mc.handleError("Image load failed", err)
		return err
	}

	mc.imageRepo.SetOriginalImage(imageData)
	mc.imageRepo.SetProcessed(processed)

	mc.logger.Info("MainController", "image loaded", map[string]interface{}{
		"path":    path,
		"width":   imageData.Width,
		"height":  imageData.Height,
		"format":  imageData.Format,
		"factors": mc.settings.Factors().String(),
	})

	if mc.view != nil {
		mc.view.SetImageInfo(imageData.Width, imageData.Height, imageData.Mat.Channels(), imageData.Format)
		mc.view.EnableImageOperations(true)
		mc.view.UpdateStatus("Image loaded")
	}
	mc.refreshPreview()
	return nil
}

// Save writes the processed image to path. Without a processed image it
// returns services.ErrNoImage and creates nothing.
func (mc *MainController) Save(path string) error {
	defer mc.timer.Start("save")()
	err := mc.imageService.SaveFile(path, mc.imageRepo.GetProcessed())
	return mc.finishSave(path, err)
}

// SaveTo encodes the processed image into an already opened writer, using
// name to pick the format.
func (mc *MainController) SaveTo(w io.Writer, name string) error {
	defer mc.timer.Start("save")()
	err := mc.imageService.Encode(w, name, mc.imageRepo.GetProcessed())
	return mc.finishSave(name, err)
}

func (mc *MainController) finishSave(name string, err error) error {
	if errors.Is(err, services.ErrNoImage) {
		mc.logger.Debug("MainController", "save ignored, no image loaded", nil)
		return err
	}
	if err != nil {
		mc.handleError("Image save failed", err)
		return err
	}

	mc.logger.Info("MainController", "image saved", map[string]interface{}{"path": name})
	if mc.view != nil {
		mc.view.UpdateStatus("Image saved")
	}
	return nil
}

// Reset restores identity factors and a fresh copy of the original. It does
// nothing until an image has been loaded.
func (mc *MainController) Reset() {
	original := mc.imageRepo.GetOriginalImage()
	if original == nil {
		return
	}

	processed, err := original.Mat.CloneAs("processed")
	if err != nil {
		mc.handleError("Reset failed", err)
		return
	}

	mc.settings.Reset()
	mc.imageRepo.SetProcessed(processed)

	mc.logger.Debug("MainController", "image reset", nil)
	if mc.view != nil {
		mc.view.SetFactors(mc.settings.Factors())
		mc.view.UpdateStatus("Reset")
	}
	mc.refreshPreview()
}

// SetEnhancement stores the factor for kind and recomputes the processed
// image from the original using all three factors. Unknown kinds are
// ignored. Without an original only the factor is stored.
func (mc *MainController) SetEnhancement(kind string, value float64) {
	if err := mc.settings.SetFactor(kind, value); err != nil {
		mc.logger.Debug("MainController", "enhancement ignored", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	original := mc.imageRepo.GetOriginalImage()
	if original == nil {
		return
	}

	stop := mc.timer.Start("enhance")
	processed, err := mc.processingService.Enhance(original.Mat, mc.settings.Factors())
	stop()
	if err != nil {
		mc.handleError("Enhancement failed", err)
		return
	}
	mc.imageRepo.SetProcessed(processed)
	mc.refreshPreview()
}

// ApplyFilter runs the named filter on top of the current processed image.
// Filters accumulate; unknown names and a missing image are ignored.
func (mc *MainController) ApplyFilter(name string) {
	processed := mc.imageRepo.GetProcessed()
	if processed == nil {
		return
	}

	stop := mc.timer.Start("filter")
	filtered, ok, err := mc.processingService.ApplyFilter(processed, name)
	stop()
	if !ok {
		mc.logger.Debug("MainController", "unknown filter ignored", map[string]interface{}{"filter": name})
		return
	}
	if err != nil {
		mc.handleError("Filter failed", err)
		return
	}

	mc.imageRepo.SetProcessed(filtered)
	if mc.view != nil {
		mc.view.UpdateStatus(fmt.Sprintf("Applied %s", name))
	}
	mc.refreshPreview()
}

// Factors returns the current enhancement factors.
func (mc *MainController) Factors() models.Factors {
	return mc.settings.Factors()
}

// HasImage reports whether an original image is loaded.
func (mc *MainController) HasImage() bool {
	return mc.imageRepo.GetOriginalImage() != nil
}

// Processed returns a decoded copy of the processed image, or nil when none
// exists.
func (mc *MainController) Processed() image.Image {
	processed := mc.imageRepo.GetProcessed()
	if processed == nil {
		return nil
	}
	img, err := conversion.MatToImage(processed)
	if err != nil {
		mc.logger.Error("MainController", err, nil)
		return nil
	}
	return img
}

// Timings returns per-operation durations recorded so far.
func (mc *MainController) Timings() []timing.Summary {
	return mc.timer.Summaries()
}

func (mc *MainController) refreshPreview() {
	processed := mc.imageRepo.GetProcessed()
	if processed == nil || mc.view == nil {
		return
	}

	stop := mc.timer.Start("preview")
	preview, err := mc.previewService.Render(processed)
	stop()
	if err != nil {
		mc.handleError("Preview failed", err)
		return
	}
	mc.view.SetPreview(preview)

	var activeMats int64
	if mc.memory != nil {
		activeMats = mc.memory.GetStats().ActiveMats
	}
	mc.view.SetMemoryInfo(mc.imageRepo.GetImageStats().TotalMemoryUsage, activeMats)
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{"operation": title})
	if mc.view != nil {
		mc.view.ShowError(title, err)
	}
}

// Shutdown releases every native image and reports leaks.
func (mc *MainController) Shutdown() {
	mc.imageRepo.Shutdown()
	if mc.memory != nil {
		if leaked := mc.memory.Report(); leaked > 0 {
			mc.logger.Warning("MainController", "native memory still in use at shutdown", map[string]interface{}{
				"active_mats": leaked,
			})
		}
	}
	for _, s := range mc.timer.Summaries() {
		mc.logger.Debug("MainController", "operation timings", map[string]interface{}{
			"operation": s.Operation,
			"count":     s.Count,
			"average":   s.Average().String(),
			"max":       s.Max.String(),
		})
	}
	mc.logger.Info("MainController", "shutdown complete", nil)
}

package services

import (
	"fmt"
	"time"

	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/opencv/safe"
	"image-processor/internal/processing/chain"
	"image-processor/internal/processing/enhance"
	"image-processor/internal/processing/filters"
)

// ProcessingService turns the original image plus the current factors into a
// processed image, and applies filters on top of it.
type ProcessingService struct {
	tracker safe.MemoryTracker
	logger  logger.Logger
	chain   *chain.ProcessingChain
}

// NewProcessingService creates a new processing service
func NewProcessingService(tracker safe.MemoryTracker, log logger.Logger) *ProcessingService {
	ps := &ProcessingService{
		tracker: tracker,
		logger:  log,
		chain:   enhance.NewChain(tracker),
	}

	log.Debug("ProcessingService", "enhancement chain ready", map[string]interface{}{
		"steps": ps.chain.GetStepNames(),
	})
	return ps
}

// Enhance always starts from original and returns a new Mat owned by the
// caller. original is never modified.
func (ps *ProcessingService) Enhance(original *safe.Mat, factors models.Factors) (*safe.Mat, error) {
	if err := safe.ValidateBGRA(original, "enhance"); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := ps.chain.Execute(original, factors.Params())
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}
	if result == original {
		if result, err = original.CloneAs("processed"); err != nil {
			return nil, err
		}
	}

	ps.logger.Debug("ProcessingService", "enhancements applied", map[string]interface{}{
		"factors":  factors.String(),
		"duration": time.Since(start).String(),
	})
	return result, nil
}

// ApplyFilter runs the named filter on processed and returns a new Mat. The
// boolean is false, with no error, when name is not a known filter.
func (ps *ProcessingService) ApplyFilter(processed *safe.Mat, name string) (*safe.Mat, bool, error) {
	filter, ok := filters.Lookup(name, ps.tracker)
	if !ok {
		return nil, false, nil
	}

	start := time.Now()
	result, err := filter.Apply(processed)
	if err != nil {
		return nil, true, err
	}

	ps.logger.Debug("ProcessingService", "filter applied", map[string]interface{}{
		"filter":   name,
		"duration": time.Since(start).String(),
	})
	return result, true, nil
}

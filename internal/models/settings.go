package models

import (
	"fmt"
	"sync"

	"image-processor/internal/processing/chain"
	"image-processor/internal/processing/enhance"
)

// IdentityFactor leaves an image unchanged.
const IdentityFactor = 1.0

// Factors is a snapshot of the three enhancement factors.
type Factors struct {
	Brightness float64
	Contrast   float64
	Sharpness  float64
}

// DefaultFactors returns the identity triple.
func DefaultFactors() Factors {
	return Factors{Brightness: IdentityFactor, Contrast: IdentityFactor, Sharpness: IdentityFactor}
}

// Get returns the factor for kind.
func (f Factors) Get(kind string) (float64, bool) {
	switch kind {
	case enhance.Brightness:
		return f.Brightness, true
	case enhance.Contrast:
		return f.Contrast, true
	case enhance.Sharpness:
		return f.Sharpness, true
	default:
		return 0, false
	}
}

// Params converts the factors to chain parameters.
func (f Factors) Params() chain.Params {
	return chain.Params{
		enhance.Brightness: f.Brightness,
		enhance.Contrast:   f.Contrast,
		enhance.Sharpness:  f.Sharpness,
	}
}

func (f Factors) String() string {
	return fmt.Sprintf("brightness=%.2f contrast=%.2f sharpness=%.2f", f.Brightness, f.Contrast, f.Sharpness)
}

// ParameterRange defines valid range for a parameter
type ParameterRange struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp limits v to the range.
func (pr ParameterRange) Clamp(v float64) float64 {
	return min(max(v, pr.Min), pr.Max)
}

// EnhancementSettings holds the current enhancement factors. The sliders
// write through SetFactor; nothing else mutates them except Reset.
type EnhancementSettings struct {
	mu      sync.RWMutex
	factors Factors
	rng     ParameterRange
}

// NewEnhancementSettings creates settings at the identity, constrained to rng.
func NewEnhancementSettings(rng ParameterRange) *EnhancementSettings {
	return &EnhancementSettings{factors: DefaultFactors(), rng: rng}
}

// Range returns the accepted factor range.
func (s *EnhancementSettings) Range() ParameterRange {
	return s.rng
}

// SetFactor stores value for kind, clamped to the range. Unknown kinds are
// rejected with a ValidationError.
func (s *EnhancementSettings) SetFactor(kind string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value = s.rng.Clamp(value)
	switch kind {
	case enhance.Brightness:
		s.factors.Brightness = value
	case enhance.Contrast:
		s.factors.Contrast = value
	case enhance.Sharpness:
		s.factors.Sharpness = value
	default:
		return NewValidationError(kind, value, "unknown enhancement")
	}
	return nil
}

// Factors returns a snapshot of the current values.
func (s *EnhancementSettings) Factors() Factors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.factors
}

// Reset restores every factor to the identity.
func (s *EnhancementSettings) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factors = DefaultFactors()
}

// ValidationError represents a parameter validation error
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

// NewValidationError creates a new validation error
func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

// Error returns the error message
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}

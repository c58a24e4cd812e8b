package config

import "image-processor/internal/logger"

// Config holds the compiled-in application settings. Nothing is read from
// disk, flags or the environment.
type Config struct {
	AppID    string
	AppName  string
	Version  string
	LogLevel logger.LogLevel

	WindowWidth  float32
	WindowHeight float32

	// Preview bounding box; the processed image is scaled down to fit.
	PreviewMaxWidth  int
	PreviewMaxHeight int

	FactorMin  float64
	FactorMax  float64
	FactorStep float64

	JPEGQuality int
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		AppID:            "com.imageprocessing.image-processor",
		AppName:          "Image Processor",
		Version:          "1.0.0",
		LogLevel:         logger.InfoLevel,
		WindowWidth:      1100,
		WindowHeight:     820,
		PreviewMaxWidth:  800,
		PreviewMaxHeight: 600,
		FactorMin:        0.0,
		FactorMax:        2.0,
		FactorStep:       0.01,
		JPEGQuality:      95,
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	d := Default()
	if c.PreviewMaxWidth < 1 {
		c.PreviewMaxWidth = d.PreviewMaxWidth
	}
	if c.PreviewMaxHeight < 1 {
		c.PreviewMaxHeight = d.PreviewMaxHeight
	}
	if c.FactorMax <= c.FactorMin {
		c.FactorMin, c.FactorMax = d.FactorMin, d.FactorMax
	}
	if c.FactorStep <= 0 || c.FactorStep > c.FactorMax-c.FactorMin {
		c.FactorStep = d.FactorStep
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.WindowWidth < 400 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight < 300 {
		c.WindowHeight = d.WindowHeight
	}
	return nil
}

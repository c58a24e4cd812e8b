package main

import (
	"fmt"
	"log"
	"runtime"

	"image-processor/internal/config"
	"image-processor/internal/controllers"
	"image-processor/internal/logger"
	"image-processor/internal/models"
	"image-processor/internal/opencv/memory"
	"image-processor/internal/services"
	"image-processor/internal/shutdown"
	"image-processor/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

var _ controllers.View = (*views.MainView)(nil)
var _ views.Actions = (*controllers.MainController)(nil)

// Application wires the models, services, controller and view together
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	cfg     *config.Config

	controller    *controllers.MainController
	view          *views.MainView
	memoryManager *memory.Manager
	shutdown      *shutdown.Manager
}

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	application := NewApplication(cfg)
	application.shutdown.Listen(func() {
		fyne.Do(application.fyneApp.Quit)
	})
	application.Run()
}

// NewApplication creates and initializes the application using dependency injection
func NewApplication(cfg *config.Config) *Application {
	app.SetMetadata(fyne.AppMetadata{
		ID:      cfg.AppID,
		Name:    cfg.AppName,
		Version: cfg.Version,
	})
	fyneApp := app.NewWithID(cfg.AppID)

	window := fyneApp.NewWindow(cfg.AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()

	appLogger := logger.NewConsoleLogger(cfg.LogLevel)
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    cfg.Version,
		"window":     fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"preview":    fmt.Sprintf("%dx%d", cfg.PreviewMaxWidth, cfg.PreviewMaxHeight),
		"go_version": runtime.Version(),
		"log_level":  cfg.LogLevel.String(),
	})

	memManager := memory.NewManager(appLogger)
	settings := models.NewEnhancementSettings(models.ParameterRange{Min: cfg.FactorMin, Max: cfg.FactorMax, Step: cfg.FactorStep})
	previewService := services.NewPreviewService(cfg.PreviewMaxWidth, cfg.PreviewMaxHeight, memManager)

	mainController := controllers.NewMainController(
		services.NewImageService(memManager, appLogger, cfg.JPEGQuality),
		services.NewProcessingService(memManager, appLogger),
		previewService,
		models.NewImageRepository(),
		settings,
		memManager,
		appLogger,
	)

	previewWidth, previewHeight := previewService.Bounds()
	mainView := views.NewMainView(window, settings.Range(), previewWidth, previewHeight)

	mainView.SetActions(mainController)
	mainController.SetView(mainView)

	application := &Application{
		fyneApp:       fyneApp,
		window:        window,
		logger:        appLogger,
		cfg:           cfg,
		controller:    mainController,
		view:          mainView,
		memoryManager: memManager,
		shutdown:      shutdown.NewManager(appLogger, shutdown.DefaultTimeout),
	}

	application.shutdown.Register("memory report", shutdownFunc(application.logMemoryTotals))
	application.shutdown.Register("controller", mainController)

	window.SetOnClosed(application.shutdown.Shutdown)
	return application
}

// Run shows the window and blocks until it is closed
func (app *Application) Run() {
	app.window.ShowAndRun()
	app.shutdown.Shutdown()
	app.logger.Info("Application", "terminated", nil)
}

func (app *Application) logMemoryTotals() {
	stats := app.memoryManager.GetStats()
	app.logger.Debug("Application", "native memory totals", map[string]interface{}{
		"allocated": stats.TotalAllocated,
		"released":  stats.TotalReleased,
		"peak":      stats.PeakBytes,
	})
}

type shutdownFunc func()

func (f shutdownFunc) Shutdown() { f() }

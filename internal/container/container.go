package container

import (
	"fmt"
	"net/http"

	"go-skin-analyzer/internal/analyzer"
	"go-skin-analyzer/internal/config"
	"go-skin-analyzer/internal/logger"
	"go-skin-analyzer/internal/observer"
	"go-skin-analyzer/internal/overlay"
	"go-skin-analyzer/internal/repository"
	"go-skin-analyzer/internal/service"
	"go-skin-analyzer/internal/storage"
	"go-skin-analyzer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	skinAnalyzer    analyzer.SkinAnalyzer
	imageRepository repository.ImageRepository
	analysisService service.SkinAnalysisService
	metrics         *observer.MetricsObserver
	handler         http.Handler
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	skinAnalyzer, err := analyzer.NewSkinAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	httpFetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize)

	var blobFetcher storage.ImageFetcher
	if cfg.AzureEnabled() {
		blobFetcher, err = storage.NewAzureFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure fetcher: %w", err)
		}
	}

	imageRepository := repository.NewImageRepository(httpFetcher, blobFetcher)

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	analysisService := service.NewSkinAnalysisService(
		imageRepository,
		skinAnalyzer,
		overlay.NewRenderer(),
		publisher,
		storage.DecodeRaster,
		service.Settings{
			DetectionThreshold: cfg.DetectionThreshold,
			AnalysisTimeout:    cfg.AnalysisTimeout,
		},
	)

	handler := transport.NewHandler(analysisService, metrics, cfg)

	return &Container{
		config:          cfg,
		skinAnalyzer:    skinAnalyzer,
		imageRepository: imageRepository,
		analysisService: analysisService,
		metrics:         metrics,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases held resources.
func (c *Container) Close() error {
	return c.skinAnalyzer.Close()
}

package snapshot

import (
	"host-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Snapshot feature.
func NewFeature(client storage.Client, bucket string, targets []Target, enabled bool, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, targets, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "snapshot"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

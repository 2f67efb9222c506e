package snapshot

import (
	"host-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for snapshot archival.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/snapshot", h.HandleArchive)
	app.Get("/snapshot", h.HandleList)
	app.Delete("/snapshot", h.HandlePrune)
}

// HandleArchive uploads a snapshot of every repository working directory.
// @Summary Archive Repository Snapshots
// @Description Uploads a tar.gz of each working directory to object storage.
// @Tags snapshot
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /snapshot [post]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Archiving repository snapshots")

	objects, err := h.service.Archive(c.Context())
	if err != nil {
		l.Error("Snapshot archival failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "success", "objects": objects})
}

// HandleList lists the stored snapshots.
// @Summary List Snapshots
// @Tags snapshot
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /snapshot [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	objects, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "success", "objects": objects})
}

// HandlePrune removes old snapshots, keeping the most recent ones per target.
// @Summary Prune Snapshots
// @Tags snapshot
// @Produce json
// @Param keep query int false "Snapshots to keep per target" default(5)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /snapshot [delete]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keep := c.QueryInt("keep", 5)
	if keep < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error", "message": "keep must be at least 1",
		})
	}

	l.Info("Pruning repository snapshots", zap.Int("keep", keep))
	removed, err := h.service.Prune(c.Context(), keep)
	if err != nil {
		l.Error("Snapshot pruning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error", "message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "success", "removed": removed})
}

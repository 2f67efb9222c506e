package inventory

import (
	"encoding/json"
	"fmt"

	"host-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests against the inventory store.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/inventory", h.HandleAddHosts)
	app.Delete("/inventory", h.HandleRemoveHosts)
	app.Get("/inventory", h.HandleGetInventory)
	app.Patch("/inventory/:host/vars", h.HandleUpdateHostVars)
}

// HandleAddHosts registers one host or a list of hosts in the inventory.
// @Summary Add Inventory Hosts
// @Description Accepts a single host object or a list. Duplicate hosts are skipped, not overwritten.
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /inventory [post]
func (h *Handler) HandleAddHosts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := parseEntries(c.Body())
	if err != nil {
		return badRequest(c, err.Error())
	}

	results := make(map[string]Outcome, len(entries))
	applied := false
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return badRequest(c, err.Error())
		}

		outcome, err := h.service.AddHost(c.Context(), entries[i])
		if err != nil {
			l.Error("Failed to add host to inventory",
				zap.String("host", entries[i].Host), zap.Error(err))
			return serverError(c, err)
		}
		results[entries[i].Host] = outcome
		applied = applied || outcome == OutcomeApplied
	}

	message := "No updates made"
	if applied {
		message = "Inventory updated"
	}
	return c.JSON(fiber.Map{"status": "success", "message": message, "results": results})
}

// HandleRemoveHosts removes a list of hosts from the inventory.
// @Summary Remove Inventory Hosts
// @Description Accepts a list of host names. Unknown hosts are skipped.
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /inventory [delete]
func (h *Handler) HandleRemoveHosts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var hosts []string
	if err := json.Unmarshal(c.Body(), &hosts); err != nil {
		return badRequest(c, "expected a list of host names")
	}

	l.Info("Removing hosts from inventory", zap.Strings("hosts", hosts))

	results := make(map[string]Outcome, len(hosts))
	applied := false
	for _, host := range hosts {
		outcome, err := h.service.RemoveHost(c.Context(), host)
		if err != nil {
			l.Error("Failed to remove host from inventory",
				zap.String("host", host), zap.Error(err))
			return serverError(c, err)
		}
		results[host] = outcome
		applied = applied || outcome == OutcomeApplied
	}

	message := "No updates made"
	if applied {
		message = "Inventory updated"
	}
	return c.JSON(fiber.Map{"status": "success", "message": message, "results": results})
}

// HandleGetInventory returns the current inventory document.
// @Summary Get Inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /inventory [get]
func (h *Handler) HandleGetInventory(c *fiber.Ctx) error {
	doc, err := h.service.Get(c.Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": doc})
}

// HandleUpdateHostVars merges variables into one host's variable mapping.
// @Summary Update Host Variables
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /inventory/{host}/vars [patch]
func (h *Handler) HandleUpdateHostVars(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var vars map[string]any
	if err := c.BodyParser(&vars); err != nil {
		return badRequest(c, "invalid request body")
	}

	host := c.Params("host")
	outcome, err := h.service.UpdateHostVars(c.Context(), host, vars)
	if err != nil {
		l.Error("Failed to update host variables",
			zap.String("host", host), zap.Error(err))
		return serverError(c, err)
	}

	message := "No updates made"
	if outcome == OutcomeApplied {
		message = "Host variables updated"
	}
	return c.JSON(fiber.Map{"status": "success", "message": message, "outcome": outcome})
}

// parseEntries accepts either a single entry object or a list of entries.
func parseEntries(body []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var single Entry
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("expected a host object or a list of host objects")
	}
	return []Entry{single}, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": message})
}

func serverError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

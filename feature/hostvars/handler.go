package hostvars

import (
	"errors"

	"host-manager/core/logger"
	"host-manager/core/merge"
	"host-manager/feature/hostvars/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests against the host record store.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the host record routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/hostvars", h.HandleUpdateHostvars)
	app.Get("/hostvars", h.HandleGetAll)
	app.Get("/hostvars/:host", h.HandleGetHost)

	app.Post("/state", h.sectionUpdate(SectionState, merge.Override, models.ValidateState, models.Full))
	app.Get("/state/:host", h.sectionGet(SectionState))

	app.Post("/storage", h.sectionUpdate(SectionStorage, merge.Override, models.ValidateStorage, models.Full))
	app.Put("/storage", h.sectionUpdate(SectionStorage, merge.InPlace, models.ValidateStorage, models.Partial))
	app.Get("/storage/:host", h.sectionGet(SectionStorage))

	app.Post("/system", h.sectionUpdate(SectionSystem, merge.Override, models.ValidateSystem, models.Full))
	app.Get("/system/:host", h.sectionGet(SectionSystem))

	app.Post("/hosts", h.HandleCreateHost)
	app.Delete("/hosts/:host", h.HandleDeleteHost)
}

// HandleUpdateHostvars deep-merges free-form updates into whole host records.
// @Summary Update Host Records
// @Description Deep-merges arbitrary per-host documents into the stored records. Body maps host name to record update.
// @Tags hostvars
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /hostvars [post]
func (h *Handler) HandleUpdateHostvars(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body map[string]map[string]any
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	for host, update := range body {
		if err := h.service.UpdateSection(c.Context(), host, SectionAny, merge.InPlace, update); err != nil {
			l.Error("Hostvars update failed", zap.String("host", host), zap.Error(err))
			return h.fail(c, err)
		}
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Hostvars updated"})
}

// HandleGetAll returns every host record.
// @Summary Get All Host Records
// @Tags hostvars
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /hostvars [get]
func (h *Handler) HandleGetAll(c *fiber.Ctx) error {
	records, err := h.service.GetAll(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": records})
}

// HandleGetHost returns one host's full record.
// @Summary Get Host Record
// @Tags hostvars
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /hostvars/{host} [get]
func (h *Handler) HandleGetHost(c *fiber.Ctx) error {
	record, err := h.service.Get(c.Context(), c.Params("host"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": record})
}

// sectionUpdate builds a handler that validates and applies per-host section
// updates. Body maps host name to the section payload.
func (h *Handler) sectionUpdate(section Section, discipline merge.Discipline, validate func(map[string]any, models.Mode) error, mode models.Mode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)

		var body map[string]map[string]any
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "invalid request body")
		}

		for host, payload := range body {
			if err := validate(payload, mode); err != nil {
				return badRequest(c, err.Error())
			}
			if err := h.service.UpdateSection(c.Context(), host, section, discipline, payload); err != nil {
				l.Error("Section update failed",
					zap.String("host", host),
					zap.String("section", string(section)),
					zap.Error(err))
				return h.fail(c, err)
			}
		}

		return c.JSON(fiber.Map{"status": "success", "message": string(section) + " updated"})
	}
}

// sectionGet builds a handler returning one section of one host's record.
func (h *Handler) sectionGet(section Section) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := h.service.GetSection(c.Context(), c.Params("host"), section)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "data": value})
	}
}

// createHostRequest is the batched creation payload: every fixed section in
// one request, one commit.
type createHostRequest struct {
	Host    string         `json:"host"`
	System  map[string]any `json:"system"`
	State   map[string]any `json:"state"`
	Storage map[string]any `json:"storage"`
}

// HandleCreateHost creates a host record with all initial sections batched
// into a single commit.
// @Summary Create Host Record
// @Tags hostvars
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /hosts [post]
func (h *Handler) HandleCreateHost(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req createHostRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Host == "" {
		return badRequest(c, "host is required")
	}
	if err := models.ValidateSystem(req.System, models.Full); err != nil {
		return badRequest(c, err.Error())
	}
	if err := models.ValidateState(req.State, models.Full); err != nil {
		return badRequest(c, err.Error())
	}
	if err := models.ValidateStorage(req.Storage, models.Full); err != nil {
		return badRequest(c, err.Error())
	}

	sections := map[Section]map[string]any{
		SectionSystem:  req.System,
		SectionState:   req.State,
		SectionStorage: req.Storage,
	}
	if err := h.service.CreateHost(c.Context(), req.Host, sections); err != nil {
		l.Error("Host creation failed", zap.String("host", req.Host), zap.Error(err))
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Host created"})
}

// HandleDeleteHost deletes a host record. Deleting an absent host succeeds.
// @Summary Delete Host Record
// @Tags hostvars
// @Produce json
// @Success 200 {object} map[string]string
// @Router /hosts/{host} [delete]
func (h *Handler) HandleDeleteHost(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	host := c.Params("host")
	if err := h.service.DeleteHost(c.Context(), host); err != nil {
		l.Error("Host deletion failed", zap.String("host", host), zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Host deleted"})
}

// fail maps store errors onto HTTP statuses.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrHostNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrHostExists):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": message})
}

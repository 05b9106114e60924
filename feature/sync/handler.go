package sync

import (
	"context"

	"record-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Get("/checkpoint", h.HandleCheckpoint)
	group.Post("/run", h.HandleRun)
}

// HandleStatus returns the state of the sync service.
// @Summary Sync Status
// @Description Reports whether a run is in progress, the last run summary and the number of mapped records.
// @Tags sync
// @Produce json
// @Success 200 {object} Status "Sync Status"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status(c.Context()))
}

// HandleCheckpoint lists completed and missing dates.
// @Summary Checkpoint
// @Description Lists the dates recorded in the checkpoint log and the dates of the lookback window still to be reconciled.
// @Tags sync
// @Produce json
// @Success 200 {object} CheckpointView "Checkpoint"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/checkpoint [get]
func (h *Handler) HandleCheckpoint(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.Checkpoint(c.Context())
	if err != nil {
		l.Error("Failed to read checkpoint", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

// HandleRun triggers a reconciliation run.
// @Summary Run Sync
// @Description Reconciles every missing date of the lookback window. A run already in progress is joined instead of started twice.
// @Tags sync
// @Produce json
// @Param async query boolean false "Return immediately and run in the background"
// @Success 200 {object} reconcile.RunSummary "Run Summary"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if c.QueryBool("async") {
		l.Info("Triggering background sync run")
		go func() {
			_, _, _ = h.service.Run(context.Background())
		}()
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
	}

	l.Info("Triggering sync run")
	summary, shared, err := h.service.Run(c.Context())
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if shared {
		c.Set("X-Sync-Shared", "true")
	}
	return c.JSON(summary)
}

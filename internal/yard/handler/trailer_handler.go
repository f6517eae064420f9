package handler

import (
	"net/http"

	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/gofiber/fiber/v2"
)

// TrailerHandler handles HTTP requests for trailers, slot assignment and
// detention.
type TrailerHandler struct {
	service ports.TrailerService
}

// NewTrailerHandler creates a new TrailerHandler.
func NewTrailerHandler(service ports.TrailerService) *TrailerHandler {
	return &TrailerHandler{
		service: service,
	}
}

// UpdateProcessStatusRequest represents the request body for a manual
// process status change.
type UpdateProcessStatusRequest struct {
	ProcessStatus domain.ProcessStatus `json:"processStatus"`
}

// AssignDoorRequest represents the request body for assigning a trailer
// to a dock door.
type AssignDoorRequest struct {
	DoorID string `json:"doorId"`
}

// AssignYardLocationRequest represents the request body for assigning a
// trailer to a yard location.
type AssignYardLocationRequest struct {
	YardLocationID string `json:"yardLocationId"`
}

// GetByID handles GET /trailers/:id.
// @Summary Get a trailer
// @Tags Trailers
// @Produce json
// @Param id path string true "Trailer ID"
// @Success 200 {object} domain.Trailer
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id} [get]
func (h *TrailerHandler) GetByID(c *fiber.Ctx) error {
	trailer, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(trailer)
}

// List handles GET /trailers.
// @Summary List trailers
// @Description Looks a trailer up by number, or lists trailers filtered by process status.
// @Tags Trailers
// @Produce json
// @Param number query string false "Trailer number"
// @Param processStatus query string false "Process status filter"
// @Success 200 {array} domain.Trailer
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers [get]
func (h *TrailerHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if number := c.Query("number"); number != "" {
		trailer, err := h.service.GetByNumber(ctx, number)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(trailer)
	}

	if status := c.Query("processStatus"); status != "" {
		trailers, err := h.service.GetByProcessStatus(ctx, domain.ProcessStatus(status))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(trailers)
	}

	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "Either number or processStatus is required",
	})
}

// GetBySite handles GET /sites/:siteId/trailers.
// @Summary List trailers at a site
// @Description Lists trailers whose door, yard location or active appointment places them at the site.
// @Tags Trailers
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 200 {array} domain.Trailer
// @Failure 500 {object} map[string]string
// @Router /sites/{siteId}/trailers [get]
func (h *TrailerHandler) GetBySite(c *fiber.Ctx) error {
	trailers, err := h.service.GetBySite(c.Context(), c.Params("siteId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(trailers)
}

// UpdateProcessStatus handles PUT /trailers/:id/process-status.
// @Summary Update a trailer's process status
// @Description Applies a manual process status change, enforcing load-status compatibility.
// @Tags Trailers
// @Accept json
// @Produce json
// @Param id path string true "Trailer ID"
// @Param status body UpdateProcessStatusRequest true "New process status"
// @Success 200 {object} domain.Trailer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/process-status [put]
func (h *TrailerHandler) UpdateProcessStatus(c *fiber.Ctx) error {
	var req UpdateProcessStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	trailer, err := h.service.UpdateProcessStatus(c.Context(), c.Params("id"), req.ProcessStatus)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(trailer)
}

// AssignDoor handles PUT /trailers/:id/door.
// @Summary Assign a trailer to a dock door
// @Description Moves the trailer to an available door, releasing any slot it held before.
// @Tags Trailers
// @Accept json
// @Produce json
// @Param id path string true "Trailer ID"
// @Param assignment body AssignDoorRequest true "Door assignment"
// @Success 200 {object} domain.Trailer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/door [put]
func (h *TrailerHandler) AssignDoor(c *fiber.Ctx) error {
	var req AssignDoorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	trailer, err := h.service.AssignToDoor(c.Context(), c.Params("id"), req.DoorID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(trailer)
}

// AssignYardLocation handles PUT /trailers/:id/yard-location.
// @Summary Assign a trailer to a yard location
// @Description Moves the trailer to an available yard location, releasing any slot it held before.
// @Tags Trailers
// @Accept json
// @Produce json
// @Param id path string true "Trailer ID"
// @Param assignment body AssignYardLocationRequest true "Yard location assignment"
// @Success 200 {object} domain.Trailer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/yard-location [put]
func (h *TrailerHandler) AssignYardLocation(c *fiber.Ctx) error {
	var req AssignYardLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	trailer, err := h.service.AssignToYardLocation(c.Context(), c.Params("id"), req.YardLocationID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(trailer)
}

// UpdateDetention handles POST /trailers/:id/detention/refresh.
// @Summary Refresh a trailer's detention status
// @Description Recomputes detention accrual for the trailer against its carrier's policy.
// @Tags Trailers
// @Produce json
// @Param id path string true "Trailer ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/detention/refresh [post]
func (h *TrailerHandler) UpdateDetention(c *fiber.Ctx) error {
	if err := h.service.UpdateDetentionStatus(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// GetDetentionCharge handles GET /trailers/:id/detention/charge.
// @Summary Calculate a trailer's detention charge
// @Description Computes the accrued detention charge under the carrier's policy.
// @Tags Trailers
// @Produce json
// @Param id path string true "Trailer ID"
// @Success 200 {object} domain.DetentionCharge
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/detention/charge [get]
func (h *TrailerHandler) GetDetentionCharge(c *fiber.Ctx) error {
	charge, err := h.service.CalculateDetentionCharge(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(charge)
}
